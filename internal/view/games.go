package view

import (
	"context"
	"errors"
	"sync"

	"github.com/MrPunder/spasibki-front/internal/apiclient"
	"github.com/MrPunder/spasibki-front/internal/logger"
	"github.com/MrPunder/spasibki-front/internal/models"
	"golang.org/x/sync/errgroup"
)

// GameModal карточка игры с её рейтингом
type GameModal struct {
	Game         models.Game
	Active       bool
	Rating       []models.RatingRow
	RatingLoaded bool
	RatingError  string
}

// Games вкладка игр: активная игра, завершённые, лимиты пользователя и общий рейтинг
type Games struct {
	mu       sync.Mutex
	api      Backend
	notifier *Notifier
	log      logger.Logger
	userID   int

	pager    Pager
	active   *models.Game
	finished []models.Game
	loaded   bool

	likesInfo    *models.LikesInfo
	likesInfoGen uint64

	modal    *GameModal
	modalGen uint64

	rating *pagedList[models.RatingRow]
}

func NewGames(userID, gamesLimit, ratingLimit int, api Backend, notifier *Notifier, log logger.Logger) *Games {
	fetch := func(ctx context.Context, t Ticket) ([]models.RatingRow, int, error) {
		rp, err := api.GetOverallRating(ctx, t.Page, t.Limit)
		if err != nil {
			return nil, 0, err
		}
		return rp.Rating, rp.TotalPages, nil
	}
	return &Games{
		api:      api,
		notifier: notifier,
		log:      log,
		userID:   userID,
		pager:    NewPager(gamesLimit),
		rating:   newPagedList("общий рейтинг", ratingLimit, fetch, log),
	}
}

// Load загружает первую страницу игр
func (g *Games) Load(ctx context.Context) error {
	return g.loadPage(ctx, 1)
}

func (g *Games) loadPage(ctx context.Context, page int) error {
	g.mu.Lock()
	t := g.pager.Begin(page)
	g.mu.Unlock()

	var active, finished models.GamesPage
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		// активная игра одна, страница всегда первая
		active, err = g.api.ListGames(egCtx, true, 1, t.Limit)
		if err != nil {
			return &loadError{text: apiclient.Describe(err, "Не удалось загрузить активную игру"), err: err}
		}
		return nil
	})
	eg.Go(func() error {
		var err error
		finished, err = g.api.ListGames(egCtx, false, t.Page, t.Limit)
		if err != nil {
			return &loadError{text: apiclient.Describe(err, "Не удалось загрузить завершённые игры"), err: err}
		}
		return nil
	})
	err := eg.Wait()

	g.mu.Lock()
	if err != nil {
		if !g.pager.Commit(t, 0, 1) {
			g.mu.Unlock()
			return nil
		}
		g.active, g.finished, g.likesInfo = nil, nil, nil
		g.loaded = true
		g.mu.Unlock()

		g.notifier.Fail(err, describeLoad(err, "Ошибка загрузки игр"))
		return err
	}
	if !g.pager.Commit(t, len(finished.Games), finished.TotalPages) {
		g.mu.Unlock()
		g.log.Debugf("игры: устаревший ответ страницы %d отброшен", t.Page)
		return nil
	}

	g.active = nil
	if len(active.Games) > 0 {
		first := active.Games[0]
		g.active = &first
	}
	g.finished = finished.Games
	if len(g.finished) > t.Limit {
		g.finished = g.finished[:t.Limit]
	}
	g.loaded = true
	hasActive := g.active != nil
	if !hasActive {
		g.likesInfo = nil
	}
	g.mu.Unlock()

	if hasActive {
		return g.RefreshLikesInfo(ctx)
	}
	return nil
}

// loadError ошибка загрузки с текстом для пользователя
type loadError struct {
	text string
	err  error
}

func (e *loadError) Error() string { return e.text + ": " + e.err.Error() }
func (e *loadError) Unwrap() error { return e.err }

func describeLoad(err error, generic string) string {
	var le *loadError
	if errors.As(err, &le) {
		return le.text
	}
	return generic
}

func (g *Games) Next(ctx context.Context) error {
	g.mu.Lock()
	ok, page := g.pager.CanNext(), g.pager.Page()+1
	g.mu.Unlock()
	if !ok {
		return nil
	}
	return g.loadPage(ctx, page)
}

func (g *Games) Prev(ctx context.Context) error {
	g.mu.Lock()
	ok, page := g.pager.CanPrev(), g.pager.Page()-1
	g.mu.Unlock()
	if !ok {
		return nil
	}
	return g.loadPage(ctx, page)
}

// RefreshLikesInfo обновляет счётчики спасибок в активной игре
func (g *Games) RefreshLikesInfo(ctx context.Context) error {
	if g.userID == 0 {
		return nil
	}

	g.mu.Lock()
	g.likesInfoGen++
	gen := g.likesInfoGen
	g.mu.Unlock()

	info, err := g.api.GetLikesInfo(ctx, g.userID)

	g.mu.Lock()
	if gen != g.likesInfoGen {
		g.mu.Unlock()
		return nil
	}
	if err != nil {
		g.likesInfo = nil
		g.mu.Unlock()
		g.notifier.Fail(err, apiclient.Describe(err, "Не удалось получить информацию о Спасибках"))
		return err
	}
	g.likesInfo = &info
	g.mu.Unlock()
	return nil
}

// OpenGame открывает карточку игры из списка и загружает её рейтинг
func (g *Games) OpenGame(ctx context.Context, id int) error {
	g.mu.Lock()
	var game *models.Game
	active := false
	if g.active != nil && g.active.ID == id {
		game, active = g.active, true
	}
	for i := range g.finished {
		if game == nil && g.finished[i].ID == id {
			game = &g.finished[i]
		}
	}
	if game == nil {
		g.mu.Unlock()
		return ErrNotFound
	}
	g.modal = &GameModal{Game: *game, Active: active}
	g.modalGen++
	gen := g.modalGen
	g.mu.Unlock()

	var (
		rows []models.RatingRow
		err  error
	)
	if active {
		rows, err = g.api.GetActiveGameRating(ctx)
	} else {
		rows, err = g.api.GetGameRating(ctx, id)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if gen != g.modalGen || g.modal == nil {
		return nil
	}
	g.modal.RatingLoaded = true
	if err != nil {
		g.log.Errorf("рейтинг игры %d: %v", id, err)
		g.modal.RatingError = apiclient.Detail(err)
		if g.modal.RatingError == "" {
			g.modal.RatingError = "Ошибка загрузки рейтинга"
		}
		return err
	}
	g.modal.Rating = rows
	return nil
}

// OpenActive открывает карточку активной игры
func (g *Games) OpenActive(ctx context.Context) error {
	g.mu.Lock()
	active := g.active
	g.mu.Unlock()
	if active == nil {
		return ErrNotFound
	}
	return g.OpenGame(ctx, active.ID)
}

func (g *Games) CloseModal() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.modal = nil
	g.modalGen++
}

func (g *Games) failRating(err error) error {
	if err != nil {
		g.notifier.Fail(err, apiclient.Describe(err, "Не удалось загрузить общий рейтинг"))
	}
	return err
}

// LoadRating первая страница общего рейтинга
func (g *Games) LoadRating(ctx context.Context) error {
	return g.failRating(g.rating.reload(ctx))
}

// RefreshRating перечитывает текущую страницу общего рейтинга
func (g *Games) RefreshRating(ctx context.Context) error {
	return g.failRating(g.rating.refresh(ctx))
}

func (g *Games) RatingNext(ctx context.Context) error {
	_, err := g.rating.next(ctx)
	return g.failRating(err)
}

func (g *Games) RatingPrev(ctx context.Context) error {
	_, err := g.rating.prev(ctx)
	return g.failRating(err)
}

type GamesView struct {
	Loaded    bool
	Active    *models.Game
	Finished  []models.Game
	Pager     PagerState
	LikesInfo *models.LikesInfo
	Modal     *GameModal
	Rating    PagedSnapshot[models.RatingRow]
}

func (g *Games) View() GamesView {
	g.mu.Lock()
	v := GamesView{
		Loaded:    g.loaded,
		Active:    g.active,
		Finished:  append([]models.Game(nil), g.finished...),
		Pager:     g.pager.State(),
		LikesInfo: g.likesInfo,
	}
	if g.modal != nil {
		m := *g.modal
		m.Rating = append([]models.RatingRow(nil), g.modal.Rating...)
		v.Modal = &m
	}
	g.mu.Unlock()

	v.Rating = g.rating.snapshot()
	return v
}
