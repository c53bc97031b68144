package view

import (
	"context"

	"github.com/MrPunder/spasibki-front/internal/apiclient"
	"github.com/MrPunder/spasibki-front/internal/models"
)

// Backend операции REST API, которые нужны контроллерам страницы
type Backend interface {
	GetUser(ctx context.Context, userID int) (models.User, error)
	ListUsers(ctx context.Context, q apiclient.UsersQuery) ([]models.User, error)
	GetLikesInfo(ctx context.Context, userID int) (models.LikesInfo, error)
	SendLike(ctx context.Context, like models.LikeRequest) error
	GetUserLikes(ctx context.Context, userID, limit, offset int) (models.LikesPage, error)
	GetLikesFeed(ctx context.Context, limit, offset int) (models.LikesPage, error)

	GetSticker(ctx context.Context, id int) (models.Sticker, error)
	ListStickers(ctx context.Context) ([]models.Sticker, error)
	UploadStickerImage(ctx context.Context, file apiclient.Upload) (string, error)
	CreateSticker(ctx context.Context, s models.StickerCreate) error
	DeleteSticker(ctx context.Context, id int) error

	ListGames(ctx context.Context, active bool, page, limit int) (models.GamesPage, error)
	ListAllGames(ctx context.Context) ([]models.Game, error)
	CreateGame(ctx context.Context, payload map[string]any) (models.Game, error)
	UpdateGame(ctx context.Context, id int, payload map[string]any) (models.Game, error)
	DeleteGame(ctx context.Context, id int) error
	GetGameRating(ctx context.Context, gameID int) ([]models.RatingRow, error)
	GetActiveGameRating(ctx context.Context) ([]models.RatingRow, error)
	GetOverallRating(ctx context.Context, page, limit int) (models.RatingPage, error)

	ListShowItems(ctx context.Context) ([]models.ShopItem, error)
	ListItems(ctx context.Context) ([]models.ShopItem, error)
	CreateItem(ctx context.Context, payload map[string]any) (models.ShopItem, error)
	UpdateItem(ctx context.Context, id int, payload map[string]any) (models.ShopItem, error)
	DeleteItem(ctx context.Context, id int) error
	UploadItemImage(ctx context.Context, file apiclient.Upload) (string, error)
	BuyItem(ctx context.Context, buy models.BuyRequest) error

	GetUserPurchases(ctx context.Context, userID, page, limit int) (models.PurchasesPage, error)
	ListPurchases(ctx context.Context, page, limit int) (models.PurchasesPage, error)

	SyncEmployees(ctx context.Context, userID int) (models.SyncResult, error)
	UpdateEmployee(ctx context.Context, id, adminID int, payload map[string]any) (models.User, error)
}

var _ Backend = (*apiclient.Client)(nil)
