package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/squaredbusinessman/hotelkit/internal/config"
	"github.com/squaredbusinessman/hotelkit/internal/model"
	"github.com/squaredbusinessman/hotelkit/internal/repository"
	"github.com/squaredbusinessman/hotelkit/internal/service"
)

func testConfig() config.Config {
	return config.Config{
		LogLevel:         "info",
		Locale:           "en-IN",
		Currency:         "INR",
		DraftQuotaBytes:  0,
		AutoSaveInterval: 5 * time.Millisecond,
	}
}

func runMemory(t *testing.T, a *App, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	a.out = buf
	err := a.dispatch(context.Background(), args)
	return buf.String(), err
}

func TestDispatch_Formatting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		args   []string
		expect string
	}{
		{name: "currency", args: []string{"currency", "3500"}, expect: "₹3,500\n"},
		{name: "date", args: []string{"date", "2026-11-01"}, expect: "1 November 2026\n"},
		{name: "bad date", args: []string{"date", "someday"}, expect: "Invalid Date\n"},
		{name: "card", args: []string{"card", "4111111111111111"}, expect: "4111 1111 1111 1111\n"},
		{name: "expiry", args: []string{"expiry", "1225"}, expect: "12/25\n"},
		{name: "email", args: []string{"email", "a@b.c"}, expect: "true\n"},
		{name: "phone", args: []string{"phone", "12345"}, expect: "false\n"},
		{name: "password", args: []string{"password", "Abc123!"}, expect: "4\n"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a := newApp(testConfig(), nil, repository.NewMemoryStorage(0), nil)
			out, err := runMemory(t, a, tt.args...)
			require.NoError(t, err)
			require.Equal(t, tt.expect, out)
		})
	}
}

func TestDispatch_Quote(t *testing.T) {
	t.Parallel()

	a := newApp(testConfig(), nil, repository.NewMemoryStorage(0), nil)

	out, err := runMemory(t, a, "quote", "2026-11-01", "2026-11-04", "3500")
	require.NoError(t, err)
	require.JSONEq(t, `{"nights":3,"total":10500,"valid":true,"total_text":"₹10,500"}`, out)

	out, err = runMemory(t, a, "quote", "2026-11-04", "2026-11-01", "3500")
	require.NoError(t, err)
	require.JSONEq(t, `{"nights":0,"total":0,"valid":false,"total_text":"₹0"}`, out)

	_, err = runMemory(t, a, "quote", "2026-11-01", "2026-11-04", "cheap")
	require.ErrorIs(t, err, ErrUsage)
}

func TestDispatch_UsageErrors(t *testing.T) {
	t.Parallel()

	a := newApp(testConfig(), nil, repository.NewMemoryStorage(0), nil)

	for _, args := range [][]string{
		{"unknown"},
		{"card"},
		{"currency", "lots"},
		{"draft", "save"},
		{"draft", "rename", "booking"},
		{"draft", "save", "booking", "no-equals-sign"},
		{"checkout"},
		{"autosave", "booking"},
	} {
		_, err := runMemory(t, a, args...)
		require.ErrorIs(t, err, ErrUsage, "args=%v", args)
	}
}

func TestDispatch_DraftLifecycle(t *testing.T) {
	t.Parallel()

	a := newApp(testConfig(), nil, repository.NewMemoryStorage(0), nil)

	out, err := runMemory(t, a, "draft", "load", "booking")
	require.NoError(t, err)
	require.Equal(t, "absent\n", out)

	_, err = runMemory(t, a, "draft", "save", "booking", "guest_name=Asha Rao", "notes=a=b")
	require.NoError(t, err)

	out, err = runMemory(t, a, "draft", "load", "booking")
	require.NoError(t, err)
	require.JSONEq(t, `{"guest_name":"Asha Rao","notes":"a=b"}`, out)

	_, err = runMemory(t, a, "draft", "clear", "booking")
	require.NoError(t, err)

	out, err = runMemory(t, a, "draft", "load", "booking")
	require.NoError(t, err)
	require.Equal(t, "absent\n", out)
}

func TestRun_SQLiteDraftsSurviveBetweenRuns(t *testing.T) {
	cfg := testConfig()
	cfg.DraftStorePath = filepath.Join(t.TempDir(), "drafts.db")
	ctx := context.Background()

	require.NoError(t, Run(ctx, cfg, nil, []string{"draft", "save", "booking", "email=asha@example.in"}, &bytes.Buffer{}))

	out := &bytes.Buffer{}
	require.NoError(t, Run(ctx, cfg, nil, []string{"draft", "load", "booking"}, out))
	require.JSONEq(t, `{"email":"asha@example.in"}`, out.String())
}

func TestRun_NoCommand(t *testing.T) {
	t.Parallel()

	err := Run(context.Background(), testConfig(), nil, nil, &bytes.Buffer{})
	require.ErrorIs(t, err, ErrUsage)
}

func TestDispatch_Autosave(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	formPath := filepath.Join(dir, "form.json")
	require.NoError(t, os.WriteFile(formPath, []byte(`{"guest_name":"Asha","check_in":"2026-11-01"}`), 0o600))

	a := newApp(testConfig(), nil, repository.NewMemoryStorage(0), &bytes.Buffer{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.dispatch(ctx, []string{"autosave", "booking", formPath}) }()

	require.Eventually(t, func() bool {
		_, ok := a.drafts.Load(context.Background(), "booking")
		return ok
	}, time.Second, 5*time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	got, ok := a.drafts.Load(context.Background(), "booking")
	require.True(t, ok)
	require.Equal(t, model.Draft{"guest_name": "Asha", "check_in": "2026-11-01"}, got)
}

func TestFileForm_KeepsLastValuesOnBadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "form.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"a":"1"}`), 0o600))

	a := newApp(testConfig(), nil, repository.NewMemoryStorage(0), nil)
	form := &fileForm{path: path, log: a.log}

	require.Equal(t, map[string]string{"a": "1"}, form.FieldValues())

	require.NoError(t, os.WriteFile(path, []byte(`{broken`), 0o600))
	require.Equal(t, map[string]string{"a": "1"}, form.FieldValues())
}

func TestDispatch_Checkout(t *testing.T) {
	t.Parallel()

	a := newApp(testConfig(), nil, repository.NewMemoryStorage(0), nil)
	a.drafts.Save(context.Background(), "booking-101", model.Draft{"guest_name": "Asha"})

	req := checkoutRequest{
		Booking: model.BookingRequest{
			FormID:        "booking-101",
			GuestName:     "Asha Rao",
			Email:         "asha@example.in",
			Phone:         "9876543210",
			CheckIn:       "2026-11-01",
			CheckOut:      "2026-11-03",
			PricePerNight: 4200,
		},
		Payment: model.PaymentDetails{
			CardNumber: "5555 5555 5555 4444",
			Expiry:     "0730",
			CardHolder: "ASHA RAO",
		},
	}
	raw, err := json.Marshal(req)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "checkout.json")
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	out, err := runMemory(t, a, "checkout", path)
	require.NoError(t, err)

	var got model.Checkout
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, 2, got.Nights)
	require.Equal(t, "₹8,400", got.TotalText)
	require.Equal(t, "**** **** **** 4444", got.CardMasked)
	require.Equal(t, "07/30", got.Expiry)

	_, ok := a.drafts.Load(context.Background(), "booking-101")
	require.False(t, ok)

	req.Payment.CardNumber = "5555 5555 5555 4445"
	raw, err = json.Marshal(req)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	_, err = runMemory(t, a, "checkout", path)
	require.ErrorIs(t, err, service.ErrInvalidCardNumber)
}

func TestDispatch_Copy(t *testing.T) {
	t.Parallel()

	a := newApp(testConfig(), nil, repository.NewMemoryStorage(0), nil)

	out, err := runMemory(t, a, "copy", "HLX-2026-0042")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Equal(t, []string{"HLX-2026-0042", "[success] Copied to clipboard!"}, lines)
	require.Len(t, a.notifier.Active(), 1)
}
