package jobs

import (
	"fmt"
	"time"

	"github.com/MrPunder/spasibki-front/internal/logger"
	"github.com/robfig/cron/v3"
)

// Evictor удаляет сессии, простоявшие дольше maxIdle, и возвращает их число
type Evictor interface {
	EvictIdle(now time.Time, maxIdle time.Duration) int
}

// Scheduler фоновые задачи фронтового сервера
type Scheduler struct {
	cron    *cron.Cron
	store   Evictor
	maxIdle time.Duration
	log     logger.Logger
	now     func() time.Time
}

func NewScheduler(store Evictor, maxIdle time.Duration, log logger.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		store:   store,
		maxIdle: maxIdle,
		log:     log,
		now:     time.Now,
	}
}

// Start регистрирует очистку сессий по расписанию ("@every 5m" или cron-строка)
func (s *Scheduler) Start(schedule string) error {
	if _, err := s.cron.AddFunc(schedule, s.evict); err != nil {
		return fmt.Errorf("некорректное расписание очистки сессий %q: %w", schedule, err)
	}
	s.cron.Start()
	s.log.Infof("[CRON] Очистка сессий по расписанию %s, простой %s", schedule, s.maxIdle)
	return nil
}

func (s *Scheduler) evict() {
	if n := s.store.EvictIdle(s.now(), s.maxIdle); n > 0 {
		s.log.Infof("[CRON] Удалено простаивающих сессий: %d", n)
	}
}

// Stop ждёт завершения запущенной задачи
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("[CRON] Планировщик остановлен")
}
