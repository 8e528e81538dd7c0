package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New 建立JSON格式的logger，所有service共用這個設定
func New(serviceName string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	return zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Logger()
}
