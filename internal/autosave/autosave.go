// Package autosave периодически снимает значения полей формы и сохраняет их как черновик.
package autosave

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/squaredbusinessman/hotelkit/internal/model"
)

const DefaultInterval = 30 * time.Second

// Form источник текущих значений именованных полей
type Form interface {
	FieldValues() map[string]string
}

// FormFunc позволяет передать обычную функцию как Form
type FormFunc func() map[string]string

func (f FormFunc) FieldValues() map[string]string {
	return f()
}

type DraftSaver interface {
	Save(ctx context.Context, formID string, record model.Draft)
}

// Saver владеет не более чем одним активным таймером
type Saver struct {
	store    DraftSaver
	interval time.Duration
	log      *zap.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func New(store DraftSaver, interval time.Duration, log *zap.Logger) *Saver {
	if store == nil {
		panic("nil draft saver")
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Saver{
		store:    store,
		interval: interval,
		log:      log,
	}
}

// Start запускает сохранение по таймеру; предыдущий таймер, если был, сначала останавливается.
// Цикл завершается по Stop или по отмене ctx.
func (s *Saver) Start(ctx context.Context, form Form, formID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()

	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done

	go s.loop(loopCtx, form, formID, done)

	s.log.Debug("autosave started", zap.String("form_id", formID), zap.Duration("interval", s.interval))
}

// Stop идемпотентен. После возврата новых сохранений не будет.
func (s *Saver) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()
}

func (s *Saver) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done == nil {
		return false
	}
	select {
	case <-s.done:
		return false
	default:
		return true
	}
}

func (s *Saver) stopLocked() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done

	s.cancel = nil
	s.done = nil
}

func (s *Saver) loop(ctx context.Context, form Form, formID string, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// повторная проверка: тик и отмена могли прийти одновременно
			if ctx.Err() != nil {
				return
			}
			// начатое сохранение доводим до конца даже при остановке
			s.store.Save(context.WithoutCancel(ctx), formID, snapshot(form))
		}
	}
}

// snapshot каждый раз новая map, чтобы форма не делила состояние с сохранённым черновиком
func snapshot(form Form) model.Draft {
	values := form.FieldValues()
	record := make(model.Draft, len(values))
	for name, value := range values {
		record[name] = value
	}
	return record
}
