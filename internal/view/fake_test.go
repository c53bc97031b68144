package view

import (
	"context"
	"io"
	"sort"
	"sync"

	"github.com/MrPunder/spasibki-front/internal/apiclient"
	"github.com/MrPunder/spasibki-front/internal/models"
)

// fakeBackend бэкенд в памяти с подсчётом вызовов
type fakeBackend struct {
	mu    sync.Mutex
	calls map[string]int

	user    models.User
	userErr error

	users    []models.User
	usersErr error

	likesInfo    models.LikesInfo
	likesInfoErr error

	sent    []models.LikeRequest
	sendErr error

	likes    []models.LikeEvent
	likesErr error
	feed     []models.LikeEvent

	stickers   map[int]models.Sticker
	stickerErr error
	catalogErr error

	active      []models.Game
	finished    []models.Game
	activeErr   error
	finishedErr error
	allGames    []models.Game
	gameRating  []models.RatingRow
	ratingErr   error
	overall     []models.RatingRow
	overallErr  error

	items   []models.ShopItem
	buyErr  error
	bought  []models.BuyRequest
	purch   []models.Purchase
	syncRes models.SyncResult
	syncErr error

	uploadURL string
	uploadErr error
	createErr error
	updateErr error

	payloads []map[string]any
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{calls: make(map[string]int), stickers: make(map[int]models.Sticker)}
}

func (f *fakeBackend) hit(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
}

func (f *fakeBackend) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeBackend) lastPayload() map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.payloads) == 0 {
		return nil
	}
	return f.payloads[len(f.payloads)-1]
}

func (f *fakeBackend) record(payload map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payloads = append(f.payloads, payload)
}

func paginate[T any](rows []T, limit, offset int) ([]T, int) {
	total := 1
	if limit > 0 && len(rows) > 0 {
		total = (len(rows) + limit - 1) / limit
	}
	if offset >= len(rows) {
		return nil, total
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end], total
}

func (f *fakeBackend) GetUser(_ context.Context, userID int) (models.User, error) {
	f.hit("GetUser")
	u := f.user
	if u.BitrixID == 0 {
		u.BitrixID = userID
	}
	return u, f.userErr
}

func (f *fakeBackend) ListUsers(_ context.Context, q apiclient.UsersQuery) ([]models.User, error) {
	f.hit("ListUsers")
	if f.usersErr != nil {
		return nil, f.usersErr
	}
	if q.Limit == 0 {
		return f.users, nil
	}
	rows, _ := paginate(f.users, q.Limit, q.Offset)
	return rows, nil
}

func (f *fakeBackend) GetLikesInfo(context.Context, int) (models.LikesInfo, error) {
	f.hit("GetLikesInfo")
	return f.likesInfo, f.likesInfoErr
}

func (f *fakeBackend) SendLike(_ context.Context, like models.LikeRequest) error {
	f.hit("SendLike")
	if f.sendErr != nil {
		return f.sendErr
	}
	f.mu.Lock()
	f.sent = append(f.sent, like)
	f.mu.Unlock()
	return nil
}

func (f *fakeBackend) GetUserLikes(_ context.Context, _ int, limit, offset int) (models.LikesPage, error) {
	f.hit("GetUserLikes")
	if f.likesErr != nil {
		return models.LikesPage{}, f.likesErr
	}
	rows, total := paginate(f.likes, limit, offset)
	return models.LikesPage{Likes: rows, TotalPages: total}, nil
}

func (f *fakeBackend) GetLikesFeed(_ context.Context, limit, offset int) (models.LikesPage, error) {
	f.hit("GetLikesFeed")
	rows, total := paginate(f.feed, limit, offset)
	return models.LikesPage{Likes: rows, TotalPages: total}, nil
}

func (f *fakeBackend) GetSticker(_ context.Context, id int) (models.Sticker, error) {
	f.hit("GetSticker")
	if f.stickerErr != nil {
		return models.Sticker{}, f.stickerErr
	}
	s, ok := f.stickers[id]
	if !ok {
		return models.Sticker{}, &apiclient.APIError{Status: 404}
	}
	return s, nil
}

func (f *fakeBackend) ListStickers(context.Context) ([]models.Sticker, error) {
	f.hit("ListStickers")
	if f.catalogErr != nil {
		return nil, f.catalogErr
	}
	ids := make([]int, 0, len(f.stickers))
	for id := range f.stickers {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	list := make([]models.Sticker, 0, len(ids))
	for _, id := range ids {
		list = append(list, f.stickers[id])
	}
	return list, nil
}

func (f *fakeBackend) UploadStickerImage(_ context.Context, file apiclient.Upload) (string, error) {
	f.hit("UploadStickerImage")
	_, _ = io.ReadAll(file.Body)
	return f.uploadURL, f.uploadErr
}

func (f *fakeBackend) CreateSticker(_ context.Context, s models.StickerCreate) error {
	f.hit("CreateSticker")
	f.record(map[string]any{"name": s.Name, "url": s.URL})
	return f.createErr
}

func (f *fakeBackend) DeleteSticker(context.Context, int) error {
	f.hit("DeleteSticker")
	return nil
}

func (f *fakeBackend) ListGames(_ context.Context, active bool, page, limit int) (models.GamesPage, error) {
	if active {
		f.hit("ListGames:active")
		if f.activeErr != nil {
			return models.GamesPage{}, f.activeErr
		}
		return models.GamesPage{Games: f.active, TotalPages: 1}, nil
	}
	f.hit("ListGames:finished")
	if f.finishedErr != nil {
		return models.GamesPage{}, f.finishedErr
	}
	rows, total := paginate(f.finished, limit, (page-1)*limit)
	return models.GamesPage{Games: rows, TotalPages: total}, nil
}

func (f *fakeBackend) ListAllGames(context.Context) ([]models.Game, error) {
	f.hit("ListAllGames")
	return f.allGames, nil
}

func (f *fakeBackend) CreateGame(_ context.Context, payload map[string]any) (models.Game, error) {
	f.hit("CreateGame")
	f.record(payload)
	return models.Game{}, f.createErr
}

func (f *fakeBackend) UpdateGame(_ context.Context, id int, payload map[string]any) (models.Game, error) {
	f.hit("UpdateGame")
	f.record(payload)
	if f.updateErr != nil {
		return models.Game{}, f.updateErr
	}
	g := models.Game{ID: id}
	if name, ok := payload["name"].(string); ok {
		g.Name = name
	}
	return g, nil
}

func (f *fakeBackend) DeleteGame(context.Context, int) error {
	f.hit("DeleteGame")
	return nil
}

func (f *fakeBackend) GetGameRating(context.Context, int) ([]models.RatingRow, error) {
	f.hit("GetGameRating")
	return f.gameRating, f.ratingErr
}

func (f *fakeBackend) GetActiveGameRating(context.Context) ([]models.RatingRow, error) {
	f.hit("GetActiveGameRating")
	return f.gameRating, f.ratingErr
}

func (f *fakeBackend) GetOverallRating(_ context.Context, page, limit int) (models.RatingPage, error) {
	f.hit("GetOverallRating")
	if f.overallErr != nil {
		return models.RatingPage{}, f.overallErr
	}
	rows, total := paginate(f.overall, limit, (page-1)*limit)
	return models.RatingPage{Rating: rows, TotalPages: total}, nil
}

func (f *fakeBackend) ListShowItems(context.Context) ([]models.ShopItem, error) {
	f.hit("ListShowItems")
	return append([]models.ShopItem(nil), f.items...), nil
}

func (f *fakeBackend) ListItems(context.Context) ([]models.ShopItem, error) {
	f.hit("ListItems")
	return append([]models.ShopItem(nil), f.items...), nil
}

func (f *fakeBackend) CreateItem(_ context.Context, payload map[string]any) (models.ShopItem, error) {
	f.hit("CreateItem")
	f.record(payload)
	return models.ShopItem{}, f.createErr
}

func (f *fakeBackend) UpdateItem(_ context.Context, id int, payload map[string]any) (models.ShopItem, error) {
	f.hit("UpdateItem")
	f.record(payload)
	if f.updateErr != nil {
		return models.ShopItem{}, f.updateErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID != id {
			continue
		}
		it := &f.items[i]
		if v, ok := payload["name"].(string); ok {
			it.Name = v
		}
		if v, ok := payload["description"].(string); ok {
			it.Description = v
		}
		if v, ok := payload["price"].(int); ok {
			it.Price = v
		}
		if v, ok := payload["stock"].(int); ok {
			it.Stock = v
		}
		if v, ok := payload["is_active"].(bool); ok {
			it.IsActive = v
		}
		return *it, nil
	}
	return models.ShopItem{ID: id}, nil
}

func (f *fakeBackend) DeleteItem(context.Context, int) error {
	f.hit("DeleteItem")
	return nil
}

func (f *fakeBackend) UploadItemImage(_ context.Context, file apiclient.Upload) (string, error) {
	f.hit("UploadItemImage")
	_, _ = io.ReadAll(file.Body)
	return f.uploadURL, f.uploadErr
}

func (f *fakeBackend) BuyItem(_ context.Context, buy models.BuyRequest) error {
	f.hit("BuyItem")
	if f.buyErr != nil {
		return f.buyErr
	}
	f.mu.Lock()
	f.bought = append(f.bought, buy)
	f.mu.Unlock()
	return nil
}

func (f *fakeBackend) GetUserPurchases(_ context.Context, _ int, page, limit int) (models.PurchasesPage, error) {
	f.hit("GetUserPurchases")
	rows, total := paginate(f.purch, limit, (page-1)*limit)
	return models.PurchasesPage{Purchases: rows, Page: page, Size: limit, TotalPages: total}, nil
}

func (f *fakeBackend) ListPurchases(_ context.Context, page, limit int) (models.PurchasesPage, error) {
	f.hit("ListPurchases")
	rows, total := paginate(f.purch, limit, (page-1)*limit)
	return models.PurchasesPage{Purchases: rows, Page: page, Size: limit, TotalPages: total}, nil
}

func (f *fakeBackend) SyncEmployees(context.Context, int) (models.SyncResult, error) {
	f.hit("SyncEmployees")
	return f.syncRes, f.syncErr
}

func (f *fakeBackend) UpdateEmployee(_ context.Context, id, _ int, payload map[string]any) (models.User, error) {
	f.hit("UpdateEmployee")
	f.record(payload)
	if f.updateErr != nil {
		return models.User{}, f.updateErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.users {
		if f.users[i].BitrixID != id {
			continue
		}
		u := f.users[i]
		if v, ok := payload["coins"].(int); ok {
			u.Coins = v
		}
		if v, ok := payload["is_gamer"].(bool); ok {
			u.IsGamer = v
		}
		if v, ok := payload["is_admin"].(bool); ok {
			u.IsAdmin = v
		}
		return u, nil
	}
	return models.User{BitrixID: id}, nil
}

var _ Backend = (*fakeBackend)(nil)

func texts(n *Notifier) []string {
	var out []string
	for _, t := range n.Active() {
		out = append(out, t.Text)
	}
	return out
}
