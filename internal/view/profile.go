package view

import (
	"context"
	"sync"

	"github.com/MrPunder/spasibki-front/internal/apiclient"
	"github.com/MrPunder/spasibki-front/internal/logger"
	"github.com/MrPunder/spasibki-front/internal/models"
)

// Profile шапка пользователя. Единственный источник баланса на странице
type Profile struct {
	mu       sync.Mutex
	api      Backend
	notifier *Notifier
	tabs     *Tabs
	log      logger.Logger
	userID   int
	user     models.User
	loaded   bool
	gen      uint64
}

func NewProfile(userID int, api Backend, notifier *Notifier, tabs *Tabs, log logger.Logger) *Profile {
	return &Profile{api: api, notifier: notifier, tabs: tabs, log: log, userID: userID}
}

func (p *Profile) UserID() int { return p.userID }

// Load загружает профиль. Не администратору вкладка настроек недоступна
func (p *Profile) Load(ctx context.Context) error {
	if p.userID == 0 {
		p.notifier.Push("Нет user_id в URL")
		return ErrNoIdentity
	}

	p.mu.Lock()
	p.gen++
	gen := p.gen
	p.mu.Unlock()

	u, err := p.api.GetUser(ctx, p.userID)

	p.mu.Lock()
	if gen != p.gen {
		p.mu.Unlock()
		return nil
	}
	if err != nil {
		p.mu.Unlock()
		p.notifier.Fail(err, apiclient.Describe(err, "Не удалось загрузить пользователя"))
		return err
	}
	p.user = u
	p.loaded = true
	p.mu.Unlock()

	if !u.IsAdmin {
		p.tabs.Remove(TabSettings)
	}
	return nil
}

// AdjustBalance меняет баланс на delta, не опуская его ниже нуля
func (p *Profile) AdjustBalance(delta int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.user.Coins += delta
	if p.user.Coins < 0 {
		p.user.Coins = 0
	}
}

// IsAdmin true только после успешной загрузки профиля администратора
func (p *Profile) IsAdmin() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loaded && p.user.IsAdmin
}

func (p *Profile) Coins() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.user.Coins
}

type ProfileView struct {
	Loaded   bool
	FullName string
	PhotoURL string
	Coins    int
	Likes    int
	IsAdmin  bool
}

func (p *Profile) View() ProfileView {
	p.mu.Lock()
	defer p.mu.Unlock()

	return ProfileView{
		Loaded:   p.loaded,
		FullName: p.user.FullName(),
		PhotoURL: p.user.PhotoURL,
		Coins:    p.user.Coins,
		Likes:    p.user.Likes,
		IsAdmin:  p.user.IsAdmin,
	}
}
