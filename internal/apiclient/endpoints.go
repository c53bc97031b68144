package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/MrPunder/spasibki-front/internal/models"
)

func itoa(v int) string { return strconv.Itoa(v) }

func pageQuery(page, limit int) url.Values {
	return url.Values{"page": {itoa(page)}, "limit": {itoa(limit)}}
}

func offsetQuery(limit, offset int) url.Values {
	return url.Values{"limit": {itoa(limit)}, "offset": {itoa(offset)}}
}

// GetUser профиль текущего пользователя
func (c *Client) GetUser(ctx context.Context, userID int) (models.User, error) {
	var u models.User
	err := c.doJSON(ctx, get("/api/user", "/api/user", url.Values{"user_id": {itoa(userID)}}), &u)
	if err == nil && u.BitrixID == 0 {
		u.BitrixID = userID
	}
	return u, err
}

// UsersQuery параметры списка сотрудников. Limit 0 означает всех
type UsersQuery struct {
	OnlyGamers bool
	Limit      int
	Offset     int
}

func (c *Client) ListUsers(ctx context.Context, q UsersQuery) ([]models.User, error) {
	query := url.Values{}
	if q.OnlyGamers {
		query.Set("only_gamers", "true")
	}
	if q.Limit > 0 {
		query.Set("limit", itoa(q.Limit))
		query.Set("offset", itoa(q.Offset))
	}
	var users []models.User
	err := c.doJSON(ctx, get("/api/users", "/api/users", query), &users)
	return users, err
}

func (c *Client) GetLikesInfo(ctx context.Context, userID int) (models.LikesInfo, error) {
	var info models.LikesInfo
	err := c.doJSON(ctx, get("/api/likes-info/{id}", "/api/likes-info/"+itoa(userID), nil), &info)
	return info, err
}

// SendLike отправляет спасибку
func (c *Client) SendLike(ctx context.Context, like models.LikeRequest) error {
	return c.doJSON(ctx, send(http.MethodPost, "/api/like", "/api/like", like), nil)
}

func (c *Client) GetUserLikes(ctx context.Context, userID, limit, offset int) (models.LikesPage, error) {
	var page models.LikesPage
	err := c.doJSON(ctx, get("/api/user/{id}/likes", "/api/user/"+itoa(userID)+"/likes", offsetQuery(limit, offset)), &page)
	return page, err
}

func (c *Client) GetLikesFeed(ctx context.Context, limit, offset int) (models.LikesPage, error) {
	var page models.LikesPage
	err := c.doJSON(ctx, get("/api/likes/feed", "/api/likes/feed", offsetQuery(limit, offset)), &page)
	return page, err
}

// GetSticker разрешает id стикера в его URL
func (c *Client) GetSticker(ctx context.Context, id int) (models.Sticker, error) {
	var s models.Sticker
	err := c.doJSON(ctx, get("/api/sticker/{id}", "/api/sticker/"+itoa(id), nil), &s)
	return s, err
}

func (c *Client) ListStickers(ctx context.Context) ([]models.Sticker, error) {
	var list []models.Sticker
	err := c.doJSON(ctx, get("/api/stickers", "/api/stickers", nil), &list)
	return list, err
}

func (c *Client) UploadStickerImage(ctx context.Context, file Upload) (string, error) {
	return c.upload(ctx, "/api/stickers/upload-image", file)
}

func (c *Client) CreateSticker(ctx context.Context, s models.StickerCreate) error {
	return c.doJSON(ctx, send(http.MethodPost, "/api/stickers", "/api/stickers", s), nil)
}

func (c *Client) DeleteSticker(ctx context.Context, id int) error {
	return c.doJSON(ctx, send(http.MethodDelete, "/api/stickers/{id}", "/api/stickers/"+itoa(id), nil), nil)
}

// ListGames список активных или завершённых игр.
// Бэкенд отдаёт либо голый массив, либо {games, total_pages}
func (c *Client) ListGames(ctx context.Context, active bool, page, limit int) (models.GamesPage, error) {
	query := pageQuery(page, limit)
	query.Set("is_active", strconv.FormatBool(active))

	data, err := c.do(ctx, get("/api/games", "/api/games", query))
	if err != nil {
		return models.GamesPage{}, err
	}
	return decodeGames(data)
}

func decodeGames(data []byte) (models.GamesPage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var games []models.Game
		if err := json.Unmarshal(trimmed, &games); err != nil {
			return models.GamesPage{}, fmt.Errorf("%w: %s", ErrMalformedResponse, err)
		}
		return models.GamesPage{Games: games, TotalPages: 1}, nil
	}

	var page models.GamesPage
	if err := json.Unmarshal(trimmed, &page); err != nil {
		return models.GamesPage{}, fmt.Errorf("%w: %s", ErrMalformedResponse, err)
	}
	return page, nil
}

// ListAllGames все игры для админки
func (c *Client) ListAllGames(ctx context.Context) ([]models.Game, error) {
	var games []models.Game
	err := c.doJSON(ctx, get("/api/games/all", "/api/games/all", nil), &games)
	return games, err
}

func (c *Client) CreateGame(ctx context.Context, payload map[string]any) (models.Game, error) {
	var g models.Game
	err := c.doJSON(ctx, send(http.MethodPost, "/api/games", "/api/games", payload), &g)
	return g, err
}

func (c *Client) UpdateGame(ctx context.Context, id int, payload map[string]any) (models.Game, error) {
	var g models.Game
	err := c.doJSON(ctx, send(http.MethodPatch, "/api/games/{id}", "/api/games/"+itoa(id), payload), &g)
	return g, err
}

func (c *Client) DeleteGame(ctx context.Context, id int) error {
	return c.doJSON(ctx, send(http.MethodDelete, "/api/games/{id}", "/api/games/"+itoa(id), nil), nil)
}

func (c *Client) GetGameRating(ctx context.Context, gameID int) ([]models.RatingRow, error) {
	var rows []models.RatingRow
	err := c.doJSON(ctx, get("/api/games/{id}/rating", "/api/games/"+itoa(gameID)+"/rating", nil), &rows)
	return rows, err
}

func (c *Client) GetActiveGameRating(ctx context.Context) ([]models.RatingRow, error) {
	var rows []models.RatingRow
	err := c.doJSON(ctx, get("/api/games/active/rating", "/api/games/active/rating", nil), &rows)
	return rows, err
}

func (c *Client) GetOverallRating(ctx context.Context, page, limit int) (models.RatingPage, error) {
	var rp models.RatingPage
	err := c.doJSON(ctx, get("/api/rating/overall", "/api/rating/overall", pageQuery(page, limit)), &rp)
	return rp, err
}

// ListShowItems витрина магазина
func (c *Client) ListShowItems(ctx context.Context) ([]models.ShopItem, error) {
	var items []models.ShopItem
	err := c.doJSON(ctx, get("/api/show-items", "/api/show-items", nil), &items)
	return items, err
}

// ListItems все товары для админки, включая скрытые
func (c *Client) ListItems(ctx context.Context) ([]models.ShopItem, error) {
	var items []models.ShopItem
	err := c.doJSON(ctx, get("/api/items", "/api/items", nil), &items)
	return items, err
}

func (c *Client) CreateItem(ctx context.Context, payload map[string]any) (models.ShopItem, error) {
	var item models.ShopItem
	err := c.doJSON(ctx, send(http.MethodPost, "/api/items", "/api/items", payload), &item)
	return item, err
}

func (c *Client) UpdateItem(ctx context.Context, id int, payload map[string]any) (models.ShopItem, error) {
	var item models.ShopItem
	err := c.doJSON(ctx, send(http.MethodPatch, "/api/items/{id}", "/api/items/"+itoa(id), payload), &item)
	return item, err
}

func (c *Client) DeleteItem(ctx context.Context, id int) error {
	return c.doJSON(ctx, send(http.MethodDelete, "/api/items/{id}", "/api/items/"+itoa(id), nil), nil)
}

func (c *Client) UploadItemImage(ctx context.Context, file Upload) (string, error) {
	return c.upload(ctx, "/api/items/upload-image", file)
}

// BuyItem покупка товара
func (c *Client) BuyItem(ctx context.Context, buy models.BuyRequest) error {
	return c.doJSON(ctx, send(http.MethodPost, "/api/buy-item", "/api/buy-item", buy), nil)
}

func (c *Client) GetUserPurchases(ctx context.Context, userID, page, limit int) (models.PurchasesPage, error) {
	var pp models.PurchasesPage
	err := c.doJSON(ctx, get("/api/user/{id}/purchases", "/api/user/"+itoa(userID)+"/purchases", pageQuery(page, limit)), &pp)
	return pp, err
}

// ListPurchases общая история покупок для админки
func (c *Client) ListPurchases(ctx context.Context, page, limit int) (models.PurchasesPage, error) {
	var pp models.PurchasesPage
	err := c.doJSON(ctx, get("/api/purchases", "/api/purchases", pageQuery(page, limit)), &pp)
	return pp, err
}

// SyncEmployees запускает синхронизацию сотрудников с внешним справочником
func (c *Client) SyncEmployees(ctx context.Context, userID int) (models.SyncResult, error) {
	r := send(http.MethodPost, "/api/all_users", "/api/all_users", nil)
	r.query = url.Values{"user_id": {itoa(userID)}}

	var res models.SyncResult
	err := c.doJSON(ctx, r, &res)
	return res, err
}

// UpdateEmployee правка сотрудника администратором
func (c *Client) UpdateEmployee(ctx context.Context, id, adminID int, payload map[string]any) (models.User, error) {
	r := send(http.MethodPatch, "/api/users/{id}", "/api/users/"+itoa(id), payload)
	r.query = url.Values{"admin_id": {itoa(adminID)}}

	var u models.User
	err := c.doJSON(ctx, r, &u)
	return u, err
}

func (c *Client) upload(ctx context.Context, path string, file Upload) (string, error) {
	r := request{method: http.MethodPost, route: http.MethodPost + " " + path, path: path, upload: &file}

	var res models.UploadResult
	if err := c.doJSON(ctx, r, &res); err != nil {
		return "", err
	}
	if res.URL == "" {
		return "", ErrNoUploadURL
	}
	return res.URL, nil
}
