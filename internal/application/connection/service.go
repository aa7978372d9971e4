// Package connection links donors to the NGOs they follow.
package connection

import (
	"context"
	"fmt"

	"github.com/donorlink/backend/internal/domain/account"
	"github.com/donorlink/backend/internal/domain/notification"
	"github.com/donorlink/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service handles donor to NGO connections
type Service struct {
	users    account.UserRepository
	notifier notification.Notifier
	logger   *zap.Logger
}

// NewService creates a new connection service
func NewService(users account.UserRepository, notifier notification.Notifier, logger *zap.Logger) *Service {
	if notifier == nil {
		notifier = notification.NopNotifier{}
	}
	return &Service{users: users, notifier: notifier, logger: logger}
}

// Connect links donor and NGO on both sides and returns the donor's
// connected NGO ids. Connecting twice is a no-op.
func (s *Service) Connect(ctx context.Context, donorID, ngoID uuid.UUID) ([]uuid.UUID, error) {
	donor, err := s.donor(ctx, donorID)
	if err != nil {
		return nil, err
	}
	already := donor.IsConnectedTo(ngoID)

	if err := s.users.AddConnection(ctx, donorID, ngoID); err != nil {
		return nil, err
	}

	updated, err := s.donor(ctx, donorID)
	if err != nil {
		return nil, err
	}

	if !already {
		s.logger.Info("Donor connected to NGO",
			zap.String("donor_id", donorID.String()),
			zap.String("ngo_id", ngoID.String()))
		s.notifier.NotifyNGO(ctx, ngoID, notification.Payload{
			Title:       "New connection",
			Message:     fmt.Sprintf("%s connected with you", updated.DisplayName()),
			Type:        notification.TypeConnection,
			RelatedID:   &donorID,
			RelatedType: "donor",
			Meta:        map[string]any{"donor_name": updated.DisplayName()},
		})
	}
	return updated.ConnectedNGOs, nil
}

// Disconnect unlinks donor and NGO on both sides and returns the donor's
// remaining connected NGO ids
func (s *Service) Disconnect(ctx context.Context, donorID, ngoID uuid.UUID) ([]uuid.UUID, error) {
	if _, err := s.donor(ctx, donorID); err != nil {
		return nil, err
	}
	if err := s.users.RemoveConnection(ctx, donorID, ngoID); err != nil {
		return nil, err
	}

	updated, err := s.donor(ctx, donorID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Donor disconnected from NGO",
		zap.String("donor_id", donorID.String()),
		zap.String("ngo_id", ngoID.String()))
	return updated.ConnectedNGOs, nil
}

// ListForUser returns the counterpart accounts of userID: NGOs for a
// donor, donors for an NGO
func (s *Service) ListForUser(ctx context.Context, userID uuid.UUID) ([]*account.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.NewNotFoundError("User not found")
		}
		return nil, err
	}
	ids := user.Connections()
	if len(ids) == 0 {
		return []*account.User{}, nil
	}
	return s.users.FindAll(ctx, account.UserFilter{}.WithIDs(ids))
}

func (s *Service) donor(ctx context.Context, id uuid.UUID) (*account.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.NewNotFoundError("Donor not found")
		}
		return nil, err
	}
	if !u.IsDonor() {
		return nil, shared.NewForbiddenError("Only donors can manage connections")
	}
	return u, nil
}
