// Package draft сохраняет незаконченные формы в локальное хранилище.
//
// Store никогда не возвращает ошибки: сбой хранилища логируется, запись молча теряется,
// а испорченные данные читаются как отсутствующие. Вызывающий код на это рассчитывает.
package draft

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/squaredbusinessman/hotelkit/internal/model"
	"github.com/squaredbusinessman/hotelkit/internal/repository"
)

type Store struct {
	storage repository.Storage
	log     *zap.Logger
}

func NewStore(storage repository.Storage, log *zap.Logger) *Store {
	if storage == nil {
		panic("nil draft storage")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		storage: storage,
		log:     log,
	}
}

// Save перезаписывает черновик формы. nil сохраняется как пустой черновик.
func (s *Store) Save(ctx context.Context, formID string, record model.Draft) {
	if record == nil {
		record = model.Draft{}
	}

	raw, err := json.Marshal(record)
	if err != nil {
		s.log.Error("error saving form data", zap.String("form_id", formID), zap.Error(err))
		return
	}

	if err = s.storage.SetItem(ctx, formID, string(raw)); err != nil {
		s.log.Error("error saving form data", zap.String("form_id", formID), zap.Error(err))
	}
}

// Load ok=false, если черновика нет или его не удалось разобрать
func (s *Store) Load(ctx context.Context, formID string) (model.Draft, bool) {
	raw, ok, err := s.storage.GetItem(ctx, formID)
	if err != nil {
		s.log.Error("error loading form data", zap.String("form_id", formID), zap.Error(err))
		return nil, false
	}
	if !ok || raw == "" {
		return nil, false
	}

	var record model.Draft
	if err = json.Unmarshal([]byte(raw), &record); err != nil {
		s.log.Error("error loading form data", zap.String("form_id", formID), zap.Error(err))
		return nil, false
	}
	// "null" разбирается без ошибки, но черновика в нём нет
	if record == nil {
		return nil, false
	}
	return record, true
}

func (s *Store) Clear(ctx context.Context, formID string) {
	if err := s.storage.RemoveItem(ctx, formID); err != nil {
		s.log.Error("error clearing form data", zap.String("form_id", formID), zap.Error(err))
	}
}
