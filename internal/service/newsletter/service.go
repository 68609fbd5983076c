package newsletter

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"ecotrade/internal/model"
	"ecotrade/internal/repository"

	"go.uber.org/zap"
)

var ErrValidation = errors.New("invalid request")

var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

type Store interface {
	Create(ctx context.Context, email string) (*model.NewsletterSubscriber, error)
	FindByEmail(ctx context.Context, email string) (*model.NewsletterSubscriber, error)
}

type WelcomeSender interface {
	SendNewsletterWelcome(ctx context.Context, email string) error
}

type Service struct {
	store  Store
	sender WelcomeSender
	logger *zap.Logger
}

func NewService(store Store, sender WelcomeSender, logger *zap.Logger) *Service {
	return &Service{store: store, sender: sender, logger: logger}
}

// Subscribe adds an email to the newsletter list and sends the welcome
// email. Subscribing an existing address is idempotent. A welcome-email
// failure does not fail the subscription; the row is already committed.
func (s *Service) Subscribe(ctx context.Context, email string) (*model.NewsletterSubscriber, bool, error) {
	if !emailPattern.MatchString(email) {
		return nil, false, fmt.Errorf("%w: a valid email is required", ErrValidation)
	}

	sub, err := s.store.Create(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			existing, findErr := s.store.FindByEmail(ctx, email)
			if findErr != nil {
				return nil, false, findErr
			}
			return existing, true, nil
		}
		return nil, false, err
	}

	if err := s.sender.SendNewsletterWelcome(ctx, email); err != nil {
		s.logger.Warn("Welcome email failed",
			zap.String("email", email),
			zap.Error(err),
		)
	}

	return sub, false, nil
}
