package view

import (
	"context"
	"sync"
	"time"

	"github.com/MrPunder/spasibki-front/internal/config"
	"github.com/MrPunder/spasibki-front/internal/logger"
	"golang.org/x/sync/errgroup"
)

// Session состояние страницы одного пользователя.
// user_id берётся из адреса и ничем не подтверждается: кто знает чужой id,
// тот видит его страницу. Проверка личности остаётся за бэкендом
type Session struct {
	UserID int

	Notifier  *Notifier
	Tabs      *Tabs
	Profile   *Profile
	Stickers  *StickerCache
	Catalog   *StickerCatalog
	Selector  *StickerSelector
	Thanks    *Thanks
	Likes     *LikesHistory
	Feed      *LiveFeed
	Purchases *PurchasesHistory
	Games     *Games
	Shop      *Shop
	Settings  *Settings

	log      logger.Logger
	boot     sync.Once
	mu       sync.Mutex
	lastSeen time.Time
}

// NewSession собирает контроллеры и связывает их между собой.
// Обработчики вкладок регистрируются здесь один раз
func NewSession(userID int, initial TabID, api Backend, ui config.UIConfig, log logger.Logger) *Session {
	s := &Session{UserID: userID, log: log, lastSeen: time.Now()}

	s.Notifier = NewNotifier(ui.ToastTTL, log)
	s.Tabs = NewTabs(initial)
	s.Profile = NewProfile(userID, api, s.Notifier, s.Tabs, log)
	s.Stickers = NewStickerCache(api, log)
	s.Catalog = NewStickerCatalog(api, log)
	s.Selector = NewStickerSelector(s.Catalog)
	s.Thanks = NewThanks(userID, api, s.Selector, s.Notifier, log)
	s.Likes = NewLikesHistory(userID, ui.LikesLimit, api, s.Stickers, s.Notifier, log)
	s.Feed = NewLiveFeed(userID, ui.FeedLimit, api, s.Stickers, s.Notifier, log)
	s.Purchases = NewPurchasesHistory(userID, ui.PurchasesLimit, api, s.Notifier, log)
	s.Games = NewGames(userID, ui.GamesLimit, ui.RatingLimit, api, s.Notifier, log)
	s.Shop = NewShop(userID, api, s.Profile, s.Notifier, log)
	s.Settings = NewSettings(userID, ui.EmployeesLimit, ui.AdminPurchasesLimit, api, s.Catalog, s.Notifier, log)

	s.Tabs.OnFirstActivate(TabLiveFeed, func(ctx context.Context) {
		_ = s.Feed.Load(ctx)
	})
	s.Tabs.OnFirstActivate(TabGame, s.reloadGames)
	s.Tabs.OnFirstActivate(TabShop, func(ctx context.Context) {
		_ = s.Shop.Load(ctx)
	})
	s.Tabs.OnFirstActivate(TabSettings, func(ctx context.Context) {
		if !s.Profile.IsAdmin() {
			return
		}
		_ = s.Settings.Select(ctx, s.Settings.Section())
	})

	s.Thanks.onSent = s.afterThanks
	s.Shop.onPurchased = func(ctx context.Context) {
		_ = s.Purchases.Refresh(ctx)
	}
	s.Settings.onGamesChanged = s.reloadGames
	s.Settings.onItemsChanged = func(ctx context.Context) {
		if s.Shop.View().Loaded {
			_ = s.Shop.Load(ctx)
		}
	}
	s.Settings.onEmployeeChanged = func(ctx context.Context) {
		_ = s.Profile.Load(ctx)
	}

	return s
}

// Bootstrap первичная загрузка страницы, выполняется один раз
func (s *Session) Bootstrap(ctx context.Context) {
	s.boot.Do(func() {
		// от профиля зависит набор вкладок
		if err := s.Profile.Load(ctx); err != nil {
			s.log.Debugf("сессия %d: профиль не загружен: %v", s.UserID, err)
		}

		var g errgroup.Group
		g.Go(func() error { return s.Likes.Load(ctx) })
		g.Go(func() error { return s.Purchases.Load(ctx) })
		g.Go(func() error {
			_, err := s.Catalog.Load(ctx)
			return err
		})
		if err := g.Wait(); err != nil {
			s.log.Debugf("сессия %d: первичная загрузка с ошибками: %v", s.UserID, err)
		}

		s.Tabs.Mount(ctx)
	})
}

func (s *Session) reloadGames(ctx context.Context) {
	var g errgroup.Group
	g.Go(func() error { return s.Games.Load(ctx) })
	g.Go(func() error { return s.Games.LoadRating(ctx) })
	_ = g.Wait()
}

// afterThanks обновляет всё, что зависит от отправленной спасибки
func (s *Session) afterThanks(ctx context.Context) {
	_ = s.Likes.Load(ctx)
	_ = s.Games.RefreshLikesInfo(ctx)
	_ = s.Feed.Load(ctx)
	_ = s.Games.RefreshRating(ctx)
	_ = s.Purchases.Refresh(ctx)
	_ = s.Profile.Load(ctx)
}

func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
}

func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}
