package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/ashurbayy/lifechip/internal/models"
	"github.com/ashurbayy/lifechip/internal/store"
)

// ContactService records contact-form submissions. Messages are never echoed
// back to the sender; Messages exists for operators and tests.
type ContactService struct {
	store  store.Store
	logger *zap.Logger
}

func NewContactService(st store.Store, logger *zap.Logger) *ContactService {
	return &ContactService{
		store:  st,
		logger: logger,
	}
}

func (s *ContactService) Submit(ctx context.Context, name, email, subject, body string) (*models.ContactMessage, error) {
	message := &models.ContactMessage{
		Name:    name,
		Email:   email,
		Subject: subject,
		Message: body,
	}
	if err := s.store.CreateContactMessage(ctx, message); err != nil {
		return nil, err
	}
	s.logger.Info("contact message received",
		zap.Int("id", message.ID),
		zap.String("subject", subject),
	)
	return message, nil
}

// Messages lists every stored submission in insertion order.
func (s *ContactService) Messages(ctx context.Context) ([]models.ContactMessage, error) {
	return s.store.ListContactMessages(ctx)
}
