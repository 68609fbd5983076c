package otp

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"time"

	"go.uber.org/zap"
)

var (
	ErrValidation      = errors.New("invalid request")
	ErrCooldown        = errors.New("please wait before requesting another code")
	ErrCodeExpired     = errors.New("code expired or not requested")
	ErrCodeMismatch    = errors.New("incorrect code")
	ErrTooManyAttempts = errors.New("too many attempts, request a new code")
)

var phonePattern = regexp.MustCompile(`^\+?\d{10,15}$`)

// Store is the TTL key-value surface backing codes, cooldowns and attempt
// counters. Backed by redis in production.
type Store interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error) // ErrCodeExpired when missing
	Del(ctx context.Context, keys ...string) error
	SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// CodeSender delivers the code out of band (SMS gateway in production, a
// log line in development).
type CodeSender interface {
	SendCode(ctx context.Context, phone, code string) error
}

type Service struct {
	store       Store
	sender      CodeSender
	ttl         time.Duration
	cooldown    time.Duration
	maxAttempts int
	logger      *zap.Logger
}

func NewService(store Store, sender CodeSender, ttl, cooldown time.Duration, maxAttempts int, logger *zap.Logger) *Service {
	return &Service{
		store:       store,
		sender:      sender,
		ttl:         ttl,
		cooldown:    cooldown,
		maxAttempts: maxAttempts,
		logger:      logger,
	}
}

func codeKey(phone string) string     { return "otp:code:" + phone }
func cooldownKey(phone string) string { return "otp:cooldown:" + phone }
func attemptsKey(phone string) string { return "otp:attempts:" + phone }

// Send issues a fresh 6-digit code for the phone number. A cooldown key
// throttles repeat requests; resend goes through the same path.
func (s *Service) Send(ctx context.Context, phone string) error {
	if !phonePattern.MatchString(phone) {
		return fmt.Errorf("%w: a valid phone number is required", ErrValidation)
	}

	ok, err := s.store.SetNX(ctx, cooldownKey(phone), "1", s.cooldown)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCooldown
	}

	code, err := generateCode()
	if err != nil {
		return err
	}

	if err := s.store.Set(ctx, codeKey(phone), code, s.ttl); err != nil {
		return err
	}
	// A fresh code starts with a clean attempt counter.
	if err := s.store.Del(ctx, attemptsKey(phone)); err != nil {
		return err
	}

	if err := s.sender.SendCode(ctx, phone, code); err != nil {
		return err
	}

	s.logger.Info("OTP issued", zap.String("phone", phone))
	return nil
}

// Verify checks the submitted code. The stored code is consumed on success
// and after too many wrong attempts.
func (s *Service) Verify(ctx context.Context, phone, code string) error {
	if !phonePattern.MatchString(phone) || code == "" {
		return fmt.Errorf("%w: phone number and code are required", ErrValidation)
	}

	stored, err := s.store.Get(ctx, codeKey(phone))
	if err != nil {
		return err
	}

	attempts, err := s.store.Incr(ctx, attemptsKey(phone), s.ttl)
	if err != nil {
		return err
	}
	if attempts > int64(s.maxAttempts) {
		_ = s.store.Del(ctx, codeKey(phone), attemptsKey(phone))
		return ErrTooManyAttempts
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return ErrCodeMismatch
	}

	if err := s.store.Del(ctx, codeKey(phone), attemptsKey(phone)); err != nil {
		return err
	}

	s.logger.Info("OTP verified", zap.String("phone", phone))
	return nil
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
