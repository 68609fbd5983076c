package otp

import (
	"context"

	"go.uber.org/zap"
)

// LogSender writes codes to the log instead of an SMS gateway. Development
// only.
type LogSender struct {
	logger *zap.Logger
}

func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) SendCode(ctx context.Context, phone, code string) error {
	s.logger.Info("OTP code (dev sender)",
		zap.String("phone", phone),
		zap.String("code", code),
	)
	return nil
}
