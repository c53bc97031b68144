package view

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/MrPunder/spasibki-front/internal/apiclient"
	"github.com/MrPunder/spasibki-front/internal/logger"
	"github.com/MrPunder/spasibki-front/internal/models"
)

const (
	labelRecipientsLoading = "Загрузка…"
	labelChooseRecipient   = "Выберите сотрудника…"
	labelRecipientsFailed  = "Ошибка загрузки"
)

// Recipient сотрудник в списке получателей. Себе отправить нельзя
type Recipient struct {
	ID       int
	Name     string
	PhotoURL string
	Disabled bool
}

// Thanks модальное окно отправки спасибки
type Thanks struct {
	mu         sync.Mutex
	api        Backend
	notifier   *Notifier
	selector   *StickerSelector
	log        logger.Logger
	userID     int
	open       bool
	listOpen   bool
	recipients []Recipient
	selected   int
	trigger    string
	gen        uint64
	onSent     func(ctx context.Context)
}

func NewThanks(userID int, api Backend, selector *StickerSelector, notifier *Notifier, log logger.Logger) *Thanks {
	return &Thanks{
		api:      api,
		notifier: notifier,
		selector: selector,
		log:      log,
		userID:   userID,
		trigger:  labelRecipientsLoading,
	}
}

// Open показывает окно и загружает участников игр
func (t *Thanks) Open(ctx context.Context) error {
	t.mu.Lock()
	t.open = true
	t.listOpen = false
	t.recipients = nil
	t.trigger = labelRecipientsLoading
	t.gen++
	gen := t.gen
	t.mu.Unlock()

	users, err := t.api.ListUsers(ctx, apiclient.UsersQuery{OnlyGamers: true})

	t.mu.Lock()
	defer t.mu.Unlock()
	if gen != t.gen {
		return nil
	}
	if err != nil {
		t.trigger = labelRecipientsFailed
		t.notifier.Fail(err, apiclient.Describe(err, "Не удалось загрузить сотрудников"))
		return err
	}

	t.recipients = make([]Recipient, 0, len(users))
	for _, u := range users {
		t.recipients = append(t.recipients, Recipient{
			ID:       u.BitrixID,
			Name:     u.FullName(),
			PhotoURL: u.PhotoURL,
			Disabled: t.userID != 0 && u.BitrixID == t.userID,
		})
	}
	if t.selected == 0 {
		t.trigger = labelChooseRecipient
	}
	return nil
}

// ToggleList раскрывает выпадающий список получателей
func (t *Thanks) ToggleList() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listOpen = !t.listOpen
}

// Choose выбирает получателя. Заблокированные и неизвестные игнорируются
func (t *Thanks) Choose(id int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, r := range t.recipients {
		if r.ID != id {
			continue
		}
		if r.Disabled {
			return false
		}
		t.selected = id
		t.trigger = r.Name
		t.listOpen = false
		return true
	}
	return false
}

// Submit отправляет спасибку выбранному получателю
func (t *Thanks) Submit(ctx context.Context, form ThanksForm) error {
	t.mu.Lock()
	toID := t.selected
	if form.ToID != 0 {
		toID = form.ToID
	}
	onSent := t.onSent
	t.mu.Unlock()

	if toID == 0 || toID == t.userID {
		t.notifier.Push("Выберите получателя")
		return ErrNoRecipient
	}
	if t.userID == 0 {
		t.notifier.Push("Нет user_id в URL")
		return ErrNoIdentity
	}

	stickerID := form.StickerID
	if stickerID == 0 {
		stickerID = t.selector.Selected()
	}

	like := models.LikeRequest{
		FromID:  t.userID,
		ToID:    toID,
		Message: strings.TrimSpace(form.Message),
	}
	if stickerID > 0 {
		like.StickerID = stickerID
	}

	if err := t.api.SendLike(ctx, like); err != nil {
		t.notifier.Fail(err, apiclient.Describe(err, "Ошибка отправки"))
		return fmt.Errorf("отправка спасибки: %w", err)
	}

	t.notifier.Push("Спасибка отправлена!")
	if onSent != nil {
		onSent(ctx)
	}
	t.Close()
	return nil
}

// Close закрывает окно и сбрасывает форму
func (t *Thanks) Close() {
	t.mu.Lock()
	t.open = false
	t.listOpen = false
	t.selected = 0
	t.trigger = labelRecipientsLoading
	t.gen++
	t.mu.Unlock()

	t.selector.Reset()
}

type ThanksView struct {
	Open       bool
	ListOpen   bool
	Trigger    string
	Selected   int
	Recipients []Recipient
	Stickers   SelectorView
}

func (t *Thanks) View() ThanksView {
	t.mu.Lock()
	v := ThanksView{
		Open:       t.open,
		ListOpen:   t.listOpen,
		Trigger:    t.trigger,
		Selected:   t.selected,
		Recipients: append([]Recipient(nil), t.recipients...),
	}
	t.mu.Unlock()

	v.Stickers = t.selector.View()
	return v
}
