package view

import (
	"context"
	"fmt"
	"sync"

	"github.com/MrPunder/spasibki-front/internal/apiclient"
	"github.com/MrPunder/spasibki-front/internal/logger"
	"github.com/MrPunder/spasibki-front/internal/models"
)

// Shop витрина магазина
type Shop struct {
	mu       sync.Mutex
	api      Backend
	notifier *Notifier
	profile  *Profile
	log      logger.Logger
	userID   int

	items   []models.ShopItem
	busy    map[int]bool
	loaded  bool
	failed  bool
	gen     uint64
	preview *models.ShopItem

	onPurchased func(ctx context.Context)
}

func NewShop(userID int, api Backend, profile *Profile, notifier *Notifier, log logger.Logger) *Shop {
	return &Shop{
		api:      api,
		notifier: notifier,
		profile:  profile,
		log:      log,
		userID:   userID,
		busy:     make(map[int]bool),
	}
}

func (s *Shop) Load(ctx context.Context) error {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	items, err := s.api.ListShowItems(ctx)

	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return nil
	}
	s.loaded = true
	if err != nil {
		s.failed = true
		s.items = nil
		s.mu.Unlock()
		s.notifier.Fail(err, apiclient.Describe(err, "Не удалось загрузить товары"))
		return err
	}
	s.failed = false
	s.items = items
	s.mu.Unlock()
	return nil
}

func (s *Shop) find(id int) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

// Buy покупает товар по цене из витрины. После успеха остаток и баланс
// уменьшаются на месте, история покупок перечитывается
func (s *Shop) Buy(ctx context.Context, itemID int) error {
	if s.userID == 0 {
		s.notifier.Push("Нет user_id в URL")
		return ErrNoIdentity
	}

	s.mu.Lock()
	idx := s.find(itemID)
	if itemID == 0 || idx < 0 || s.items[idx].Price == 0 {
		s.mu.Unlock()
		s.notifier.Push("Некорректные данные товара")
		return ErrBadItem
	}
	if s.busy[itemID] {
		s.mu.Unlock()
		return ErrBusy
	}
	price := s.items[idx].Price
	s.busy[itemID] = true
	onPurchased := s.onPurchased
	s.mu.Unlock()

	err := s.api.BuyItem(ctx, models.BuyRequest{BuyerID: s.userID, ItemID: itemID, AmountSpent: price})

	s.mu.Lock()
	delete(s.busy, itemID)
	if err != nil {
		s.mu.Unlock()
		text := apiclient.Detail(err)
		if text == "" {
			text = "Ошибка покупки"
		}
		s.notifier.Fail(err, "Ошибка: "+text)
		return fmt.Errorf("покупка товара %d: %w", itemID, err)
	}
	if idx = s.find(itemID); idx >= 0 && s.items[idx].Stock > 0 {
		s.items[idx].Stock--
	}
	s.mu.Unlock()

	s.profile.AdjustBalance(-price)
	s.notifier.Push("Товар успешно куплен!")
	if onPurchased != nil {
		onPurchased(ctx)
	}
	return nil
}

// OpenImage показывает фото товара крупно
func (s *Shop) OpenImage(itemID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.find(itemID)
	if idx < 0 || s.items[idx].PhotoURL == "" {
		return ErrNotFound
	}
	item := s.items[idx]
	s.preview = &item
	return nil
}

func (s *Shop) CloseImage() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.preview = nil
}

type ShopCard struct {
	Item        models.ShopItem
	Busy        bool
	SoldOut     bool
	ButtonLabel string
}

type ShopView struct {
	Loaded  bool
	Failed  bool
	Cards   []ShopCard
	Preview *models.ShopItem
}

func (s *Shop) View() ShopView {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := ShopView{Loaded: s.loaded, Failed: s.failed, Preview: s.preview}
	for _, item := range s.items {
		card := ShopCard{Item: item, ButtonLabel: "Купить"}
		switch {
		case s.busy[item.ID]:
			card.Busy = true
			card.ButtonLabel = "Покупка..."
		case item.Stock <= 0:
			card.SoldOut = true
			card.ButtonLabel = "Нет в наличии"
		}
		v.Cards = append(v.Cards, card)
	}
	return v
}
