package view

import (
	"sync"
	"time"

	"github.com/MrPunder/spasibki-front/internal/logger"
	"github.com/google/uuid"
)

// Toast короткое уведомление, которое само исчезает
type Toast struct {
	ID      string
	Text    string
	Expires time.Time
}

// Notifier копит уведомления страницы
type Notifier struct {
	mu     sync.Mutex
	ttl    time.Duration
	now    func() time.Time
	log    logger.Logger
	toasts []Toast
}

func NewNotifier(ttl time.Duration, log logger.Logger) *Notifier {
	return &Notifier{ttl: ttl, now: time.Now, log: log}
}

func (n *Notifier) Push(text string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.log.Infof("уведомление: %s", text)
	n.toasts = append(n.toasts, Toast{
		ID:      uuid.NewString(),
		Text:    text,
		Expires: n.now().Add(n.ttl),
	})
}

// Fail пишет исходную ошибку в лог и показывает пользователю text
func (n *Notifier) Fail(err error, text string) {
	n.log.Errorf("%s: %v", text, err)
	n.Push(text)
}

// Active возвращает непросроченные уведомления, просроченные выбрасываются
func (n *Notifier) Active() []Toast {
	n.mu.Lock()
	defer n.mu.Unlock()

	now := n.now()
	live := n.toasts[:0]
	for _, t := range n.toasts {
		if now.Before(t.Expires) {
			live = append(live, t)
		}
	}
	n.toasts = live

	out := make([]Toast, len(live))
	copy(out, live)
	return out
}

func (n *Notifier) Dismiss(id string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for i, t := range n.toasts {
		if t.ID == id {
			n.toasts = append(n.toasts[:i], n.toasts[i+1:]...)
			return
		}
	}
}
