package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var Log *zap.Logger = zap.NewNop()

// Initialize собирает production-логгер нужного уровня.
// Если file не пустой, пишем в файл с ротацией через lumberjack, иначе в stderr.
func Initialize(level string, file string) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return err
	}

	if file == "" {
		cfg := zap.NewProductionConfig()
		cfg.Level = lvl

		zapLog, err := cfg.Build()
		if err != nil {
			return err
		}

		Log = zapLog
		return nil
	}

	rotated := &lumberjack.Logger{
		Filename:  file,
		MaxSize:   1,
		LocalTime: true,
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(rotated),
		lvl,
	)

	Log = zap.New(core, zap.ErrorOutput(zapcore.Lock(os.Stderr)))
	return nil
}
