// Package notify короткоживущие уведомления (flash-сообщения) и копирование в буфер обмена.
package notify

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/squaredbusinessman/hotelkit/internal/events"
)

type Kind string

const (
	KindInfo    Kind = "info"
	KindSuccess Kind = "success"
	KindWarning Kind = "warning"
	KindError   Kind = "error"
)

const DefaultLifetime = 5 * time.Second

const (
	MessageCopied     = "Copied to clipboard!"
	MessageCopyFailed = "Failed to copy to clipboard"
)

var ErrNoClipboard = errors.New("clipboard unavailable")

type Notification struct {
	ID        uuid.UUID `json:"id"`
	Kind      Kind      `json:"kind"`
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Notifier struct {
	bus      *events.Bus
	lifetime time.Duration
	now      func() time.Time

	mu     sync.Mutex
	active []Notification
}

// NewNotifier bus может быть nil, тогда события не публикуются
func NewNotifier(bus *events.Bus) *Notifier {
	return &Notifier{
		bus:      bus,
		lifetime: DefaultLifetime,
		now:      time.Now,
	}
}

func (n *Notifier) Show(message string, kind Kind) Notification {
	if kind == "" {
		kind = KindInfo
	}
	note := Notification{
		ID:        uuid.New(),
		Kind:      kind,
		Message:   message,
		ExpiresAt: n.now().Add(n.lifetime),
	}

	n.mu.Lock()
	n.active = append(n.active, note)
	n.mu.Unlock()

	if n.bus != nil {
		n.bus.Publish(events.Event{Type: events.TypeNotification, Payload: note})
	}
	return note
}

// Active видимые сейчас уведомления, истёкшие выбрасываются
func (n *Notifier) Active() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	now := n.now()
	kept := n.active[:0]
	for _, note := range n.active {
		if now.Before(note.ExpiresAt) {
			kept = append(kept, note)
		}
	}
	n.active = kept

	return append([]Notification(nil), kept...)
}

type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

// Copy результат сообщается только уведомлением, ошибка наружу не уходит
func Copy(ctx context.Context, cb Clipboard, n *Notifier, log *zap.Logger, text string) {
	if log == nil {
		log = zap.NewNop()
	}

	err := ErrNoClipboard
	if cb != nil {
		err = cb.WriteText(ctx, text)
	}

	if err != nil {
		log.Error("failed to copy", zap.Error(err))
		n.Show(MessageCopyFailed, KindError)
		return
	}
	n.Show(MessageCopied, KindSuccess)
}
