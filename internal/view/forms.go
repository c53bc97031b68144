package view

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/MrPunder/spasibki-front/internal/models"
)

// ThanksForm поля формы спасибки
type ThanksForm struct {
	ToID      int
	Message   string
	StickerID int
}

func ParseThanksForm(v url.Values) ThanksForm {
	to, _ := strconv.Atoi(v.Get("to_id"))
	sticker, _ := strconv.Atoi(v.Get("sticker_id"))
	return ThanksForm{ToID: to, Message: v.Get("message"), StickerID: sticker}
}

// optionalInt пустое поле даёт nil
func optionalInt(v url.Values, key, title string) (*int, error) {
	raw := strings.TrimSpace(v.Get(key))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: поле «%s» должно быть числом", ErrBadForm, title)
	}
	return &n, nil
}

func checkbox(v url.Values, key string) bool {
	switch v.Get(key) {
	case "on", "true", "1":
		return true
	}
	return false
}

func intEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// GameForm форма создания и правки игры
type GameForm struct {
	Name           string
	Description    string
	Start          string
	End            string
	LimitValue     *int
	LimitToOneUser *int
	LimitParameter models.LimitParameter
	IsActive       bool
}

func ParseGameForm(v url.Values) (GameForm, error) {
	f := GameForm{
		Name:           strings.TrimSpace(v.Get("name")),
		Description:    strings.TrimSpace(v.Get("description")),
		Start:          strings.TrimSpace(v.Get("game_start")),
		End:            strings.TrimSpace(v.Get("game_end")),
		LimitParameter: models.LimitParameter(v.Get("setting_limitParameter")),
		IsActive:       checkbox(v, "game_is_active"),
	}
	if f.LimitParameter != "" && !f.LimitParameter.Valid() {
		return f, fmt.Errorf("%w: неизвестный период %q", ErrBadForm, f.LimitParameter)
	}

	var err error
	if f.LimitValue, err = optionalInt(v, "setting_limitValue", "Лимит Спасибок"); err != nil {
		return f, err
	}
	if f.LimitToOneUser, err = optionalInt(v, "setting_limitToOneUser", "Лимит одному человеку"); err != nil {
		return f, err
	}
	return f, nil
}

// CreatePayload пустые поля не отправляются, флаг активности всегда
func (f GameForm) CreatePayload() map[string]any {
	p := map[string]any{"game_is_active": f.IsActive}
	if f.Name != "" {
		p["name"] = f.Name
	}
	if f.Description != "" {
		p["description"] = f.Description
	}
	if f.Start != "" {
		p["game_start"] = f.Start
	}
	if f.End != "" {
		p["game_end"] = f.End
	}
	if f.LimitValue != nil {
		p["setting_limitValue"] = *f.LimitValue
	}
	if f.LimitToOneUser != nil {
		p["setting_limitToOneUser"] = *f.LimitToOneUser
	}
	if f.LimitParameter != "" {
		p["setting_limitParameter"] = string(f.LimitParameter)
	}
	return p
}

// EditPayload только заполненные поля, отличающиеся от orig
func (f GameForm) EditPayload(orig models.Game) map[string]any {
	p := map[string]any{"game_is_active": f.IsActive}
	if f.Name != "" && f.Name != orig.Name {
		p["name"] = f.Name
	}
	if f.Description != "" && f.Description != orig.Description {
		p["description"] = f.Description
	}
	if f.Start != "" && f.Start != InputDate(orig.Start) {
		p["game_start"] = f.Start
	}
	if f.End != "" && f.End != InputDate(orig.End) {
		p["game_end"] = f.End
	}
	if f.LimitValue != nil && !intEqual(f.LimitValue, orig.LimitValue) {
		p["setting_limitValue"] = *f.LimitValue
	}
	if f.LimitToOneUser != nil && !intEqual(f.LimitToOneUser, orig.LimitToOneUser) {
		p["setting_limitToOneUser"] = *f.LimitToOneUser
	}
	if f.LimitParameter != "" && f.LimitParameter != orig.LimitParameter {
		p["setting_limitParameter"] = string(f.LimitParameter)
	}
	return p
}

// ItemForm форма товара
type ItemForm struct {
	Name        string
	Description string
	Price       *int
	Stock       *int
	PhotoURL    string
	IsActive    bool
}

func ParseItemForm(v url.Values) (ItemForm, error) {
	f := ItemForm{
		Name:        strings.TrimSpace(v.Get("name")),
		Description: strings.TrimSpace(v.Get("description")),
		PhotoURL:    strings.TrimSpace(v.Get("photo_url")),
		IsActive:    checkbox(v, "is_active"),
	}

	var err error
	if f.Price, err = optionalInt(v, "price", "Цена"); err != nil {
		return f, err
	}
	if f.Stock, err = optionalInt(v, "stock", "Остаток"); err != nil {
		return f, err
	}
	return f, nil
}

func (f ItemForm) CreatePayload() map[string]any {
	p := map[string]any{"is_active": f.IsActive}
	if f.Name != "" {
		p["name"] = f.Name
	}
	if f.Description != "" {
		p["description"] = f.Description
	}
	if f.Price != nil {
		p["price"] = *f.Price
	}
	if f.Stock != nil {
		p["stock"] = *f.Stock
	}
	if f.PhotoURL != "" {
		p["photo_url"] = f.PhotoURL
	}
	return p
}

// EditPayload изменённые поля. Описание можно очистить, поэтому оно уходит при любом отличии
func (f ItemForm) EditPayload(orig models.ShopItem) map[string]any {
	p := map[string]any{"is_active": f.IsActive}
	if f.Name != "" && f.Name != orig.Name {
		p["name"] = f.Name
	}
	if f.Description != orig.Description {
		p["description"] = f.Description
	}
	if f.Price != nil && *f.Price != orig.Price {
		p["price"] = *f.Price
	}
	if f.Stock != nil && *f.Stock != orig.Stock {
		p["stock"] = *f.Stock
	}
	if f.PhotoURL != "" && f.PhotoURL != orig.PhotoURL {
		p["photo_url"] = f.PhotoURL
	}
	return p
}

// EmployeeForm правка сотрудника
type EmployeeForm struct {
	Name     string
	Lastname string
	Coins    *int
	IsGamer  bool
	IsAdmin  bool
}

func ParseEmployeeForm(v url.Values) (EmployeeForm, error) {
	f := EmployeeForm{
		Name:     strings.TrimSpace(v.Get("name")),
		Lastname: strings.TrimSpace(v.Get("lastname")),
		IsGamer:  checkbox(v, "is_gamer"),
		IsAdmin:  checkbox(v, "is_admin"),
	}
	var err error
	f.Coins, err = optionalInt(v, "coins", "Баланс")
	return f, err
}

func (f EmployeeForm) EditPayload(orig models.User) map[string]any {
	p := map[string]any{"is_gamer": f.IsGamer, "is_admin": f.IsAdmin}
	if f.Name != "" && f.Name != orig.Name {
		p["name"] = f.Name
	}
	if f.Lastname != "" && f.Lastname != orig.Lastname {
		p["lastname"] = f.Lastname
	}
	if f.Coins != nil && *f.Coins != orig.Coins {
		p["coins"] = *f.Coins
	}
	return p
}
