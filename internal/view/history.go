package view

import (
	"context"
	"sync"

	"github.com/MrPunder/spasibki-front/internal/apiclient"
	"github.com/MrPunder/spasibki-front/internal/logger"
	"github.com/MrPunder/spasibki-front/internal/models"
	"golang.org/x/sync/errgroup"
)

// LikeRow спасибка вместе с разрешённой картинкой стикера
type LikeRow struct {
	models.LikeEvent
	Direction  models.LikeDirection
	StickerURL string
}

const stickerLookups = 4

func resolveStickers(ctx context.Context, cache *StickerCache, userID int, events []models.LikeEvent) []LikeRow {
	rows := make([]LikeRow, len(events))
	var g errgroup.Group
	g.SetLimit(stickerLookups)

	for i, ev := range events {
		rows[i].LikeEvent = ev
		rows[i].Direction = direction(ev, userID)
		if ev.StickerID <= 0 {
			continue
		}
		i, ev := i, ev
		g.Go(func() error {
			rows[i].StickerURL = cache.URL(ctx, ev.StickerID)
			return nil
		})
	}
	_ = g.Wait()
	return rows
}

func direction(ev models.LikeEvent, userID int) models.LikeDirection {
	if ev.Type != "" {
		return ev.Type
	}
	if userID != 0 && ev.FromUserID == userID {
		return models.LikeSent
	}
	return models.LikeReceived
}

// LikesHistory история спасибок пользователя с фильтром по направлению
type LikesHistory struct {
	mu       sync.Mutex
	list     *pagedList[LikeRow]
	notifier *Notifier
	userID   int
	filter   models.LikeDirection
}

func NewLikesHistory(userID, limit int, api Backend, cache *StickerCache, notifier *Notifier, log logger.Logger) *LikesHistory {
	fetch := func(ctx context.Context, t Ticket) ([]LikeRow, int, error) {
		page, err := api.GetUserLikes(ctx, userID, t.Limit, t.Offset())
		if err != nil {
			return nil, 0, err
		}
		return resolveStickers(ctx, cache, userID, page.Likes), page.TotalPages, nil
	}
	return &LikesHistory{
		list:     newPagedList("история спасибок", limit, fetch, log),
		notifier: notifier,
		userID:   userID,
	}
}

func (h *LikesHistory) fail(err error) error {
	if err != nil {
		h.notifier.Fail(err, apiclient.Describe(err, "Не удалось загрузить историю"))
	}
	return err
}

// Load первая страница. Без user_id ничего не запрашивается
func (h *LikesHistory) Load(ctx context.Context) error {
	if h.userID == 0 {
		return nil
	}
	return h.fail(h.list.reload(ctx))
}

func (h *LikesHistory) Next(ctx context.Context) error {
	_, err := h.list.next(ctx)
	return h.fail(err)
}

func (h *LikesHistory) Prev(ctx context.Context) error {
	_, err := h.list.prev(ctx)
	return h.fail(err)
}

func (h *LikesHistory) More(ctx context.Context) error {
	_, err := h.list.more(ctx)
	return h.fail(err)
}

// ToggleFilter включает фильтр, повторный выбор того же направления его снимает
func (h *LikesHistory) ToggleFilter(dir models.LikeDirection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if dir != models.LikeSent && dir != models.LikeReceived {
		h.filter = ""
		return
	}
	if h.filter == dir {
		h.filter = ""
		return
	}
	h.filter = dir
}

type LikesView struct {
	PagedSnapshot[LikeRow]
	Filter models.LikeDirection
}

func (h *LikesHistory) View() LikesView {
	snap := h.list.snapshot()

	h.mu.Lock()
	filter := h.filter
	h.mu.Unlock()

	if filter != "" {
		rows := snap.Rows[:0]
		for _, r := range snap.Rows {
			if r.Direction == filter {
				rows = append(rows, r)
			}
		}
		snap.Rows = rows
	}
	return LikesView{PagedSnapshot: snap, Filter: filter}
}

// LiveFeed общая лента спасибок
type LiveFeed struct {
	list     *pagedList[LikeRow]
	notifier *Notifier
}

func NewLiveFeed(userID, limit int, api Backend, cache *StickerCache, notifier *Notifier, log logger.Logger) *LiveFeed {
	fetch := func(ctx context.Context, t Ticket) ([]LikeRow, int, error) {
		page, err := api.GetLikesFeed(ctx, t.Limit, t.Offset())
		if err != nil {
			return nil, 0, err
		}
		return resolveStickers(ctx, cache, userID, page.Likes), page.TotalPages, nil
	}
	return &LiveFeed{list: newPagedList("лента", limit, fetch, log), notifier: notifier}
}

func (f *LiveFeed) fail(err error) error {
	if err != nil {
		f.notifier.Fail(err, apiclient.Describe(err, "Не удалось загрузить ленту"))
	}
	return err
}

func (f *LiveFeed) Load(ctx context.Context) error {
	return f.fail(f.list.reload(ctx))
}

func (f *LiveFeed) Next(ctx context.Context) error {
	_, err := f.list.next(ctx)
	return f.fail(err)
}

func (f *LiveFeed) Prev(ctx context.Context) error {
	_, err := f.list.prev(ctx)
	return f.fail(err)
}

func (f *LiveFeed) View() PagedSnapshot[LikeRow] {
	return f.list.snapshot()
}

// PurchasesHistory покупки пользователя на его странице
type PurchasesHistory struct {
	list     *pagedList[models.Purchase]
	notifier *Notifier
	userID   int
}

func NewPurchasesHistory(userID, limit int, api Backend, notifier *Notifier, log logger.Logger) *PurchasesHistory {
	fetch := func(ctx context.Context, t Ticket) ([]models.Purchase, int, error) {
		page, err := api.GetUserPurchases(ctx, userID, t.Page, t.Limit)
		if err != nil {
			return nil, 0, err
		}
		return page.Purchases, page.TotalPages, nil
	}
	return &PurchasesHistory{
		list:     newPagedList("история покупок", limit, fetch, log),
		notifier: notifier,
		userID:   userID,
	}
}

func (p *PurchasesHistory) fail(err error) error {
	if err != nil {
		p.notifier.Fail(err, apiclient.Describe(err, "Не удалось загрузить покупки"))
	}
	return err
}

func (p *PurchasesHistory) Load(ctx context.Context) error {
	if p.userID == 0 {
		return nil
	}
	return p.fail(p.list.reload(ctx))
}

// Refresh перечитывает текущую страницу
func (p *PurchasesHistory) Refresh(ctx context.Context) error {
	if p.userID == 0 {
		return nil
	}
	return p.fail(p.list.refresh(ctx))
}

func (p *PurchasesHistory) Next(ctx context.Context) error {
	_, err := p.list.next(ctx)
	return p.fail(err)
}

func (p *PurchasesHistory) Prev(ctx context.Context) error {
	_, err := p.list.prev(ctx)
	return p.fail(err)
}

func (p *PurchasesHistory) View() PagedSnapshot[models.Purchase] {
	return p.list.snapshot()
}
