package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log = zap.NewNop()

// Init inicializa el logger global del servidor (JSON estructurado).
// level acepta los nombres de zap: debug, info, warn, error.
func Init(level string) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "json"            // Logs estructurados en JSON
	cfg.EncoderConfig.TimeKey = "ts" // timestamp
	cfg.EncoderConfig.MessageKey = "msg"
	cfg.EncoderConfig.LevelKey = "level"
	cfg.EncoderConfig.CallerKey = "caller"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if lvl, err := zapcore.ParseLevel(level); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	built, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	log = built
}

// InitConsole configura un logger legible para la CLI (stderr).
// Sin verbose solo se muestran warnings y errores.
func InitConsole(verbose bool) {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}

	built, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	log = built
}

// Sugar retorna un logger más “friendly” para usar con printf-like
func Sugar() *zap.SugaredLogger {
	return log.Sugar()
}

// Logger retorna el logger estructurado
func Logger() *zap.Logger {
	return log
}
