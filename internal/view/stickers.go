package view

import (
	"context"
	"strconv"
	"sync"

	"github.com/MrPunder/spasibki-front/internal/logger"
	"github.com/MrPunder/spasibki-front/internal/models"
	"golang.org/x/sync/singleflight"
)

// StickerCache id стикера -> URL. Кэшируются только успешные ответы
type StickerCache struct {
	mu    sync.Mutex
	api   Backend
	log   logger.Logger
	urls  map[int]string
	group singleflight.Group
}

func NewStickerCache(api Backend, log logger.Logger) *StickerCache {
	return &StickerCache{api: api, log: log, urls: make(map[int]string)}
}

// URL возвращает адрес картинки или пустую строку, если стикер не загрузился
func (c *StickerCache) URL(ctx context.Context, id int) string {
	if id <= 0 {
		return ""
	}

	c.mu.Lock()
	u, ok := c.urls[id]
	c.mu.Unlock()
	if ok {
		return u
	}

	v, err, _ := c.group.Do(strconv.Itoa(id), func() (any, error) {
		c.mu.Lock()
		u, ok := c.urls[id]
		c.mu.Unlock()
		if ok {
			return u, nil
		}

		s, err := c.api.GetSticker(ctx, id)
		if err != nil {
			return "", err
		}
		c.mu.Lock()
		c.urls[id] = s.URL
		c.mu.Unlock()
		return s.URL, nil
	})
	if err != nil {
		c.log.Errorf("Ошибка загрузки стикера %d: %v", id, err)
		return ""
	}
	return v.(string)
}

// StickerCatalog каталог стикеров для выбора. Непустой ответ запоминается
type StickerCatalog struct {
	mu     sync.Mutex
	api    Backend
	log    logger.Logger
	list   []models.Sticker
	loaded bool
	group  singleflight.Group
}

func NewStickerCatalog(api Backend, log logger.Logger) *StickerCatalog {
	return &StickerCatalog{api: api, log: log}
}

func (c *StickerCatalog) Load(ctx context.Context) ([]models.Sticker, error) {
	c.mu.Lock()
	if c.loaded && len(c.list) > 0 {
		list := append([]models.Sticker(nil), c.list...)
		c.mu.Unlock()
		return list, nil
	}
	c.mu.Unlock()

	v, err, _ := c.group.Do("catalog", func() (any, error) {
		list, err := c.api.ListStickers(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.list, c.loaded = list, true
		c.mu.Unlock()
		return list, nil
	})
	if err != nil {
		c.log.Errorf("Ошибка загрузки стикеров: %v", err)
		return nil, err
	}
	return append([]models.Sticker(nil), v.([]models.Sticker)...), nil
}

// Invalidate сбрасывает каталог после правки стикеров в настройках
func (c *StickerCatalog) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.list, c.loaded = nil, false
}

func (c *StickerCatalog) List() []models.Sticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.Sticker(nil), c.list...)
}

func (c *StickerCatalog) Find(id int) (models.Sticker, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range c.list {
		if s.ID == id {
			return s, true
		}
	}
	return models.Sticker{}, false
}

const (
	labelChooseSticker = "Выберите стикер"
	labelNoSticker     = "Стикер не выбран"
	labelStickerChosen = "Стикер выбран"
)

// StickerSelector выбор одного стикера в форме спасибки
type StickerSelector struct {
	mu       sync.Mutex
	catalog  *StickerCatalog
	open     bool
	selected int
	label    string
}

func NewStickerSelector(catalog *StickerCatalog) *StickerSelector {
	return &StickerSelector{catalog: catalog, label: labelChooseSticker}
}

// Toggle показывает или прячет сетку. Ошибка каталога только логируется
func (s *StickerSelector) Toggle(ctx context.Context) {
	s.mu.Lock()
	s.open = !s.open
	open := s.open
	s.mu.Unlock()

	if open {
		_, _ = s.catalog.Load(ctx)
	}
}

// Select выбирает стикер и закрывает сетку. Повторный выбор снимает его
func (s *StickerSelector) Select(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != 0 && s.selected == id {
		s.selected = 0
		s.label = labelNoSticker
		return nil
	}

	st, ok := s.catalog.Find(id)
	if !ok {
		return ErrNotFound
	}
	s.selected = st.ID
	s.label = st.Name
	if s.label == "" {
		s.label = labelStickerChosen
	}
	s.open = false
	return nil
}

func (s *StickerSelector) Selected() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

func (s *StickerSelector) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = 0
	s.open = false
	s.label = labelChooseSticker
}

type SelectorView struct {
	Open     bool
	Selected int
	Label    string
	Stickers []models.Sticker
}

func (s *StickerSelector) View() SelectorView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SelectorView{Open: s.open, Selected: s.selected, Label: s.label, Stickers: s.catalog.List()}
}
