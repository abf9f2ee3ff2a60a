package testutil

import (
	"io"

	"github.com/dtroode/archia-server/internal/logger"
)

func MakeNoopLogger() *logger.Logger {
	return logger.NewWithFormat(0, "text", io.Discard)
}
