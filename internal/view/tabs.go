package view

import (
	"context"
	"sync"
)

type TabID string

const (
	TabMyPage   TabID = "my-page"
	TabLiveFeed TabID = "live-feed"
	TabGame     TabID = "game"
	TabShop     TabID = "shop"
	TabSettings TabID = "settings"
)

type Tab struct {
	ID    TabID
	Title string
}

var defaultTabs = []Tab{
	{ID: TabMyPage, Title: "Моя страница"},
	{ID: TabLiveFeed, Title: "Лента"},
	{ID: TabGame, Title: "Игра"},
	{ID: TabShop, Title: "Магазин"},
	{ID: TabSettings, Title: "Настройки"},
}

// Tabs переключатель вкладок. Хук вкладки срабатывает один раз, при первой активации
type Tabs struct {
	mu      sync.Mutex
	tabs    []Tab
	active  TabID
	hooks   map[TabID]func(ctx context.Context)
	visited map[TabID]bool
}

func NewTabs(initial TabID) *Tabs {
	t := &Tabs{
		tabs:    append([]Tab(nil), defaultTabs...),
		active:  TabMyPage,
		hooks:   make(map[TabID]func(ctx context.Context)),
		visited: make(map[TabID]bool),
	}
	if t.has(initial) {
		t.active = initial
	}
	return t
}

func (t *Tabs) has(id TabID) bool {
	for _, tab := range t.tabs {
		if tab.ID == id {
			return true
		}
	}
	return false
}

func (t *Tabs) Has(id TabID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.has(id)
}

// OnFirstActivate регистрирует ленивую загрузку вкладки
func (t *Tabs) OnFirstActivate(id TabID, hook func(ctx context.Context)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.hooks[id] = hook
}

// Activate делает вкладку активной. Неизвестная или удалённая вкладка игнорируется
func (t *Tabs) Activate(ctx context.Context, id TabID) bool {
	t.mu.Lock()
	if !t.has(id) {
		t.mu.Unlock()
		return false
	}
	t.active = id
	hook := t.takeHook(id)
	t.mu.Unlock()

	if hook != nil {
		hook(ctx)
	}
	return true
}

// Mount запускает хук вкладки, активной при открытии страницы
func (t *Tabs) Mount(ctx context.Context) {
	t.mu.Lock()
	hook := t.takeHook(t.active)
	t.mu.Unlock()

	if hook != nil {
		hook(ctx)
	}
}

func (t *Tabs) takeHook(id TabID) func(ctx context.Context) {
	if t.visited[id] {
		return nil
	}
	t.visited[id] = true
	return t.hooks[id]
}

// Remove убирает вкладку. Если она была активной, активной становится моя страница
func (t *Tabs) Remove(id TabID) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i, tab := range t.tabs {
		if tab.ID == id {
			t.tabs = append(t.tabs[:i], t.tabs[i+1:]...)
			break
		}
	}
	if t.active == id {
		t.active = TabMyPage
	}
}

func (t *Tabs) Active() TabID {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

func (t *Tabs) List() []Tab {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Tab(nil), t.tabs...)
}
