package autosave

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/squaredbusinessman/hotelkit/internal/model"
)

type savedDraft struct {
	formID string
	record model.Draft
}

type recordingSaver struct {
	mu    sync.Mutex
	saves []savedDraft
}

func (r *recordingSaver) Save(_ context.Context, formID string, record model.Draft) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves = append(r.saves, savedDraft{formID: formID, record: record})
}

func (r *recordingSaver) all() []savedDraft {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]savedDraft(nil), r.saves...)
}

const tick = 5 * time.Millisecond

func TestSaver_SavesOnEveryTick(t *testing.T) {
	t.Parallel()

	saver := &recordingSaver{}
	s := New(saver, tick, nil)

	form := FormFunc(func() map[string]string {
		return map[string]string{"guest_name": "Asha", "check_in": "2026-11-01"}
	})

	s.Start(context.Background(), form, "booking")
	require.True(t, s.Running())

	require.Eventually(t, func() bool { return len(saver.all()) >= 3 }, time.Second, tick)
	s.Stop()
	require.False(t, s.Running())

	for _, saved := range saver.all() {
		require.Equal(t, "booking", saved.formID)
		require.Equal(t, model.Draft{"guest_name": "Asha", "check_in": "2026-11-01"}, saved.record)
	}
}

func TestSaver_NoSavesAfterStop(t *testing.T) {
	t.Parallel()

	saver := &recordingSaver{}
	s := New(saver, tick, nil)

	s.Start(context.Background(), FormFunc(func() map[string]string { return nil }), "booking")
	require.Eventually(t, func() bool { return len(saver.all()) >= 1 }, time.Second, tick)

	s.Stop()
	count := len(saver.all())

	time.Sleep(10 * tick)
	require.Len(t, saver.all(), count)
}

func TestSaver_StopIsIdempotent(t *testing.T) {
	t.Parallel()

	s := New(&recordingSaver{}, tick, nil)

	s.Stop()
	s.Start(context.Background(), FormFunc(func() map[string]string { return nil }), "booking")
	s.Stop()
	s.Stop()

	require.False(t, s.Running())
}

func TestSaver_RestartReplacesPreviousTimer(t *testing.T) {
	t.Parallel()

	saver := &recordingSaver{}
	s := New(saver, tick, nil)
	form := FormFunc(func() map[string]string { return map[string]string{"a": "1"} })

	s.Start(context.Background(), form, "first")
	require.Eventually(t, func() bool { return len(saver.all()) >= 1 }, time.Second, tick)

	s.Start(context.Background(), form, "second")
	switchedAt := len(saver.all())

	require.Eventually(t, func() bool { return len(saver.all()) >= switchedAt+3 }, time.Second, tick)
	s.Stop()

	for _, saved := range saver.all()[switchedAt:] {
		require.Equal(t, "second", saved.formID)
	}
}

func TestSaver_ParentContextCancelStopsLoop(t *testing.T) {
	t.Parallel()

	saver := &recordingSaver{}
	s := New(saver, tick, nil)

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx, FormFunc(func() map[string]string { return nil }), "booking")
	cancel()

	require.Eventually(t, func() bool { return !s.Running() }, time.Second, tick)
	s.Stop()
}

func TestSaver_SnapshotIsFreshCopy(t *testing.T) {
	t.Parallel()

	saver := &recordingSaver{}
	s := New(saver, tick, nil)

	var mu sync.Mutex
	fields := map[string]string{"guest_name": "Asha"}
	form := FormFunc(func() map[string]string {
		mu.Lock()
		defer mu.Unlock()
		return fields
	})

	s.Start(context.Background(), form, "booking")
	require.Eventually(t, func() bool { return len(saver.all()) >= 1 }, time.Second, tick)
	s.Stop()

	mu.Lock()
	fields["guest_name"] = "Ravi"
	mu.Unlock()

	require.Equal(t, "Asha", saver.all()[0].record["guest_name"])
}

func TestNew_DefaultInterval(t *testing.T) {
	t.Parallel()

	s := New(&recordingSaver{}, 0, nil)
	require.Equal(t, DefaultInterval, s.interval)
}
