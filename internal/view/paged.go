package view

import (
	"context"
	"sync"

	"github.com/MrPunder/spasibki-front/internal/logger"
)

type pageFetch[T any] func(ctx context.Context, t Ticket) (rows []T, totalPages int, err error)

// pagedList страничный список с отбрасыванием устаревших ответов
type pagedList[T any] struct {
	mu     sync.Mutex
	name   string
	pager  Pager
	rows   []T
	loaded bool
	failed bool
	fetch  pageFetch[T]
	log    logger.Logger
}

func newPagedList[T any](name string, limit int, fetch pageFetch[T], log logger.Logger) *pagedList[T] {
	return &pagedList[T]{name: name, pager: NewPager(limit), fetch: fetch, log: log}
}

// load запрашивает страницу page. appendRows дописывает ответ к уже загруженным строкам
func (l *pagedList[T]) load(ctx context.Context, page int, appendRows bool) error {
	l.mu.Lock()
	t := l.pager.Begin(page)
	l.mu.Unlock()

	rows, total, err := l.fetch(ctx, t)
	if len(rows) > t.Limit {
		rows = rows[:t.Limit]
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err != nil {
		if !l.pager.Commit(t, 0, 1) {
			l.log.Debugf("%s: устаревшая ошибка страницы %d отброшена", l.name, t.Page)
			return nil
		}
		if !appendRows {
			l.rows = nil
		}
		l.loaded, l.failed = true, true
		return err
	}

	if !l.pager.Commit(t, len(rows), total) {
		l.log.Debugf("%s: устаревший ответ страницы %d отброшен", l.name, t.Page)
		return nil
	}
	if appendRows {
		l.rows = append(l.rows, rows...)
	} else {
		l.rows = rows
	}
	l.loaded, l.failed = true, false
	return nil
}

func (l *pagedList[T]) page() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pager.Page()
}

func (l *pagedList[T]) reload(ctx context.Context) error {
	return l.load(ctx, 1, false)
}

func (l *pagedList[T]) refresh(ctx context.Context) error {
	return l.load(ctx, l.page(), false)
}

// next переходит на следующую страницу. false, если её нет
func (l *pagedList[T]) next(ctx context.Context) (bool, error) {
	l.mu.Lock()
	ok, page := l.pager.CanNext(), l.pager.Page()+1
	l.mu.Unlock()
	if !ok {
		return false, nil
	}
	return true, l.load(ctx, page, false)
}

func (l *pagedList[T]) prev(ctx context.Context) (bool, error) {
	l.mu.Lock()
	ok, page := l.pager.CanPrev(), l.pager.Page()-1
	l.mu.Unlock()
	if !ok {
		return false, nil
	}
	return true, l.load(ctx, page, false)
}

// more догружает следующую страницу в конец списка
func (l *pagedList[T]) more(ctx context.Context) (bool, error) {
	l.mu.Lock()
	ok, page := l.pager.CanNext(), l.pager.Page()+1
	l.mu.Unlock()
	if !ok {
		return false, nil
	}
	return true, l.load(ctx, page, true)
}

func (l *pagedList[T]) isLoaded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loaded
}

type PagedSnapshot[T any] struct {
	Rows   []T
	Pager  PagerState
	Loaded bool
	Failed bool
}

func (l *pagedList[T]) snapshot() PagedSnapshot[T] {
	l.mu.Lock()
	defer l.mu.Unlock()

	rows := make([]T, len(l.rows))
	copy(rows, l.rows)
	return PagedSnapshot[T]{Rows: rows, Pager: l.pager.State(), Loaded: l.loaded, Failed: l.failed}
}
