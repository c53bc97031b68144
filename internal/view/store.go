package view

import (
	"sync"
	"time"
)

// Factory создаёт сессию для пользователя
type Factory func(userID int, initial TabID) *Session

// Store хранит по одной сессии на user_id
type Store struct {
	mu       sync.Mutex
	sessions map[int]*Session
	factory  Factory
	onChange func(n int)
}

func NewStore(factory Factory, onChange func(n int)) *Store {
	return &Store{sessions: make(map[int]*Session), factory: factory, onChange: onChange}
}

// Get возвращает сессию пользователя, created сообщает о новой.
// Без user_id сессия не сохраняется
func (s *Store) Get(userID int, initial TabID) (sess *Session, created bool) {
	if userID == 0 {
		return s.factory(0, initial), true
	}

	s.mu.Lock()
	sess, ok := s.sessions[userID]
	if !ok {
		sess = s.factory(userID, initial)
		s.sessions[userID] = sess
	}
	n := len(s.sessions)
	s.mu.Unlock()

	sess.Touch()
	if !ok {
		s.changed(n)
	}
	return sess, !ok
}

// Reset забывает сессию, следующая загрузка страницы начнёт с нуля
func (s *Store) Reset(userID int) {
	s.mu.Lock()
	delete(s.sessions, userID)
	n := len(s.sessions)
	s.mu.Unlock()
	s.changed(n)
}

// EvictIdle удаляет сессии, к которым не обращались дольше maxIdle
func (s *Store) EvictIdle(now time.Time, maxIdle time.Duration) int {
	s.mu.Lock()
	evicted := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.LastSeen()) > maxIdle {
			delete(s.sessions, id)
			evicted++
		}
	}
	n := len(s.sessions)
	s.mu.Unlock()

	if evicted > 0 {
		s.changed(n)
	}
	return evicted
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Store) changed(n int) {
	if s.onChange != nil {
		s.onChange(n)
	}
}
