package logutil

import (
	"os"

	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// InitLogger builds the global zap logger from cfg and installs it. Without
// cfg.File.Filename log lines go to stderr, leaving stdout to the exercise
// output.
func InitLogger(cfg *log.Config) error {
	return initLogger(cfg, zapcore.Lock(os.Stderr))
}

func initLogger(cfg *log.Config, console zapcore.WriteSyncer) error {
	lg, props, err := log.InitLogger(cfg, zap.AddStacktrace(zapcore.FatalLevel))
	if err != nil {
		return errors.Annotate(err, "initialize logger")
	}
	if len(cfg.File.Filename) == 0 {
		core := zapcore.NewCore(log.NewTextEncoder(encoderConfig(cfg)), console, props.Level)
		lg = lg.WithOptions(
			zap.WrapCore(func(zapcore.Core) zapcore.Core { return core }),
			zap.ErrorOutput(console),
		)
		props = &log.ZapProperties{Core: core, Syncer: console, Level: props.Level}
	}
	log.ReplaceGlobals(lg, props)
	return nil
}

func encoderConfig(cfg *log.Config) zapcore.EncoderConfig {
	cc := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "name",
		CallerKey:      "caller",
		MessageKey:     "message",
		StacktraceKey:  "stack",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     log.DefaultTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   log.ShortCallerEncoder,
	}
	if cfg.DisableTimestamp {
		cc.TimeKey = ""
	}
	return cc
}

// LogPanic logs the panic reason and stack, then exits the process.
func LogPanic() {
	if e := recover(); e != nil {
		log.Fatal("panic", zap.Reflect("recover", e), zap.Stack("stack"))
	}
}
