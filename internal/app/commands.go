package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/squaredbusinessman/hotelkit/internal/booking"
	"github.com/squaredbusinessman/hotelkit/internal/events"
	"github.com/squaredbusinessman/hotelkit/internal/format"
	"github.com/squaredbusinessman/hotelkit/internal/model"
	"github.com/squaredbusinessman/hotelkit/internal/notify"
	"github.com/squaredbusinessman/hotelkit/internal/validate"
)

func (a *App) dispatch(ctx context.Context, args []string) error {
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "currency":
		return a.currency(rest)
	case "date":
		return a.oneArg(rest, "date <value>", a.formatter.FormatDate)
	case "card":
		return a.oneArg(rest, "card <number>", format.FormatCardNumber)
	case "expiry":
		return a.oneArg(rest, "expiry <MMYY>", format.FormatExpiryDate)
	case "email":
		return a.oneArg(rest, "email <address>", func(s string) string {
			return strconv.FormatBool(validate.ValidateEmail(s))
		})
	case "phone":
		return a.oneArg(rest, "phone <number>", func(s string) string {
			return strconv.FormatBool(validate.ValidatePhone(s))
		})
	case "password":
		return a.oneArg(rest, "password <value>", func(s string) string {
			return strconv.Itoa(validate.CheckPasswordStrength(s))
		})
	case "min-date":
		return a.println(booking.MinimumDate(time.Now()))
	case "quote":
		return a.quote(rest)
	case "draft":
		return a.draft(ctx, rest)
	case "autosave":
		return a.autosave(ctx, rest)
	case "checkout":
		return a.checkoutFile(ctx, rest)
	case "copy":
		return a.copy(ctx, rest)
	default:
		return fmt.Errorf("%w: unknown command %q", ErrUsage, cmd)
	}
}

func (a *App) println(s string) error {
	_, err := fmt.Fprintln(a.out, s)
	return err
}

func (a *App) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func (a *App) oneArg(args []string, usage string, fn func(string) string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: %s", ErrUsage, usage)
	}
	return a.println(fn(args[0]))
}

func (a *App) currency(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: currency <amount>", ErrUsage)
	}
	amount, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("%w: amount must be a number", ErrUsage)
	}
	return a.println(a.formatter.FormatCurrency(amount))
}

type quoteView struct {
	booking.Quote
	TotalText string `json:"total_text"`
}

func (a *App) quote(args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("%w: quote <check-in> <check-out> <price-per-night>", ErrUsage)
	}
	rate, err := strconv.ParseFloat(args[2], 64)
	if err != nil || rate < 0 {
		return fmt.Errorf("%w: price per night must be a non-negative number", ErrUsage)
	}

	q := booking.CalculatePriceFromStrings(args[0], args[1], rate)
	return a.printJSON(quoteView{Quote: q, TotalText: a.formatter.FormatCurrency(q.Total)})
}

func (a *App) draft(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("%w: draft save|load|clear <form-id> [field=value...]", ErrUsage)
	}
	op, formID := args[0], args[1]

	switch op {
	case "save":
		record := model.Draft{}
		for _, pair := range args[2:] {
			name, value, ok := strings.Cut(pair, "=")
			if !ok {
				return fmt.Errorf("%w: field %q must look like name=value", ErrUsage, pair)
			}
			record[name] = value
		}
		a.drafts.Save(ctx, formID, record)
		return nil
	case "load":
		record, ok := a.drafts.Load(ctx, formID)
		if !ok {
			return a.println("absent")
		}
		return a.printJSON(record)
	case "clear":
		a.drafts.Clear(ctx, formID)
		return nil
	default:
		return fmt.Errorf("%w: unknown draft operation %q", ErrUsage, op)
	}
}

// fileForm форма, значения которой лежат в JSON-файле.
// Если файл не читается, отдаём последние удачно прочитанные значения.
type fileForm struct {
	path string
	log  *zap.Logger

	mu   sync.Mutex
	last map[string]string
}

func (f *fileForm) FieldValues() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()

	raw, err := os.ReadFile(f.path)
	if err != nil {
		f.log.Warn("read form file", zap.String("path", f.path), zap.Error(err))
		return f.last
	}

	var values map[string]string
	if err = json.Unmarshal(raw, &values); err != nil {
		f.log.Warn("parse form file", zap.String("path", f.path), zap.Error(err))
		return f.last
	}

	f.last = values
	return values
}

// autosave работает до отмены ctx (Ctrl-C)
func (a *App) autosave(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: autosave <form-id> <form.json>", ErrUsage)
	}
	formID, path := args[0], args[1]

	form := &fileForm{path: path, log: a.log}
	a.saver.Start(ctx, form, formID)
	a.log.Info("autosave running", zap.String("form_id", formID), zap.Duration("interval", a.cfg.AutoSaveInterval))

	<-ctx.Done()
	a.saver.Stop()
	a.log.Info("autosave stopped", zap.String("form_id", formID))
	return nil
}

type checkoutRequest struct {
	Booking model.BookingRequest `json:"booking"`
	Payment model.PaymentDetails `json:"payment"`
}

func (a *App) checkoutFile(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: checkout <request.json>", ErrUsage)
	}

	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read checkout request: %w", err)
	}

	var req checkoutRequest
	if err = json.Unmarshal(raw, &req); err != nil {
		return fmt.Errorf("parse checkout request: %w", err)
	}

	result, err := a.checkout.Prepare(ctx, req.Booking, req.Payment)
	if err != nil {
		return fmt.Errorf("prepare checkout: %w", err)
	}
	return a.printJSON(result)
}

// writerClipboard "буфер обмена" терминала: текст просто печатается
type writerClipboard struct {
	w io.Writer
}

func (c writerClipboard) WriteText(_ context.Context, text string) error {
	_, err := fmt.Fprintln(c.w, text)
	return err
}

func (a *App) copy(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: copy <text>", ErrUsage)
	}

	sub := a.bus.Subscribe(events.TypeNotification, func(e events.Event) {
		if note, ok := e.Payload.(notify.Notification); ok {
			_, _ = fmt.Fprintf(a.out, "[%s] %s\n", note.Kind, note.Message)
		}
	})
	defer sub.Unsubscribe()

	notify.Copy(ctx, writerClipboard{w: a.out}, a.notifier, a.log, args[0])
	return nil
}
