package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/squaredbusinessman/hotelkit/internal/autosave"
	"github.com/squaredbusinessman/hotelkit/internal/config"
	"github.com/squaredbusinessman/hotelkit/internal/draft"
	"github.com/squaredbusinessman/hotelkit/internal/events"
	"github.com/squaredbusinessman/hotelkit/internal/format"
	"github.com/squaredbusinessman/hotelkit/internal/notify"
	"github.com/squaredbusinessman/hotelkit/internal/repository"
	"github.com/squaredbusinessman/hotelkit/internal/service"
	"github.com/squaredbusinessman/hotelkit/migrations"
)

var ErrUsage = errors.New("usage")

// App собранные компоненты для одной команды CLI
type App struct {
	cfg       config.Config
	log       *zap.Logger
	out       io.Writer
	formatter *format.Formatter
	drafts    *draft.Store
	saver     *autosave.Saver
	bus       *events.Bus
	notifier  *notify.Notifier
	checkout  service.CheckoutService
}

func Run(ctx context.Context, cfg config.Config, log *zap.Logger, args []string, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: hotelkit [flags] <command> [args]", ErrUsage)
	}

	storage, closeStorage, err := openStorage(cfg)
	if err != nil {
		return err
	}
	defer closeStorage()

	a := newApp(cfg, log, storage, out)
	return a.dispatch(ctx, args)
}

func newApp(cfg config.Config, log *zap.Logger, storage repository.Storage, out io.Writer) *App {
	if log == nil {
		log = zap.NewNop()
	}

	formatter := format.NewFormatter(cfg.Locale, cfg.Currency)
	drafts := draft.NewStore(storage, log.Named("draft"))
	bus := events.NewBus()

	return &App{
		cfg:       cfg,
		log:       log,
		out:       out,
		formatter: formatter,
		drafts:    drafts,
		saver:     autosave.New(drafts, cfg.AutoSaveInterval, log.Named("autosave")),
		bus:       bus,
		notifier:  notify.NewNotifier(bus),
		checkout:  service.NewCheckoutService(drafts, formatter),
	}
}

// openStorage файл SQLite, если задан путь, иначе память процесса
func openStorage(cfg config.Config) (repository.Storage, func(), error) {
	if cfg.DraftStorePath == "" {
		return repository.NewMemoryStorage(cfg.DraftQuotaBytes), func() {}, nil
	}

	db, err := repository.OpenSQLite(cfg.DraftStorePath)
	if err != nil {
		return nil, nil, err
	}

	// проверяем запуск схемы миграций
	if err = migrations.Up(db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migrations up: %w", err)
	}

	return repository.NewSQLiteStorage(db), func() { _ = db.Close() }, nil
}
