package servicereq

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"ecotrade/internal/model"
	"ecotrade/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrValidation        = errors.New("invalid request")
	ErrNotFound          = errors.New("service request not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)

var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

type Store interface {
	Create(ctx context.Context, req *model.ServiceRequest) error
	FindByID(ctx context.Context, id string) (*model.ServiceRequest, error)
	List(ctx context.Context, status string) ([]model.ServiceRequest, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

type ConfirmationSender interface {
	SendServiceRequestReceived(ctx context.Context, email, requestType, requestID string) error
}

// Service handles sell/repair/recycle intake forms.
type Service struct {
	store  Store
	sender ConfirmationSender
	logger *zap.Logger
}

func NewService(store Store, sender ConfirmationSender, logger *zap.Logger) *Service {
	return &Service{store: store, sender: sender, logger: logger}
}

func (s *Service) Create(ctx context.Context, reqType, name, email, phone, description string) (*model.ServiceRequest, error) {
	if !model.ValidServiceType(reqType) {
		return nil, fmt.Errorf("%w: type must be sell, repair or recycle", ErrValidation)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if !emailPattern.MatchString(email) {
		return nil, fmt.Errorf("%w: a valid email is required", ErrValidation)
	}

	req := &model.ServiceRequest{
		ID:          uuid.NewString(),
		Type:        reqType,
		Name:        name,
		Email:       email,
		Phone:       phone,
		Description: description,
		Status:      model.ServiceStatusPending,
	}

	if err := s.store.Create(ctx, req); err != nil {
		return nil, err
	}

	// Confirmation is best effort; the request itself is already saved.
	if err := s.sender.SendServiceRequestReceived(ctx, email, reqType, req.ID); err != nil {
		s.logger.Warn("Service request confirmation email failed",
			zap.String("request_id", req.ID),
			zap.Error(err),
		)
	}

	return req, nil
}

func (s *Service) Get(ctx context.Context, id string) (*model.ServiceRequest, error) {
	req, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return req, nil
}

func (s *Service) List(ctx context.Context, status string) ([]model.ServiceRequest, error) {
	return s.store.List(ctx, status)
}

// UpdateStatus applies pending -> reviewed -> completed|rejected; terminal
// states never move again.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) (*model.ServiceRequest, error) {
	req, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !model.ValidStatusTransition(req.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, req.Status, status)
	}

	if err := s.store.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	req.Status = status
	return req, nil
}
