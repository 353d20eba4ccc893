package repository

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrQuotaExceeded = errors.New("storage quota exceeded")
	ErrUnavailable   = errors.New("storage unavailable")
)

// Storage локальное key/value хранилище, аналог localStorage в браузере.
// Реализации должны быть безопасны для вызова из нескольких горутин.
type Storage interface {
	SetItem(ctx context.Context, key string, value string) error
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)
	RemoveItem(ctx context.Context, key string) error
}

// MemoryStorage живёт только в памяти процесса.
// quota ограничивает суммарный размер ключей и значений в байтах, 0 без ограничения.
type MemoryStorage struct {
	mu    sync.RWMutex
	items map[string]string
	size  int
	quota int
}

func NewMemoryStorage(quota int) *MemoryStorage {
	return &MemoryStorage{
		items: make(map[string]string),
		quota: quota,
	}
}

func (s *MemoryStorage) SetItem(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	size := s.size + len(key) + len(value)
	if old, ok := s.items[key]; ok {
		size -= len(key) + len(old)
	}
	if s.quota > 0 && size > s.quota {
		return ErrQuotaExceeded
	}

	s.items[key] = value
	s.size = size
	return nil
}

func (s *MemoryStorage) GetItem(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.items[key]
	return v, ok, nil
}

func (s *MemoryStorage) RemoveItem(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.items[key]; ok {
		s.size -= len(key) + len(old)
		delete(s.items, key)
	}
	return nil
}

// Len число сохранённых ключей
func (s *MemoryStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
