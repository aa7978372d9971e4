// Package requirement manages NGO requirements and their priority-ordered
// public listings.
package requirement

import (
	"context"
	"fmt"
	"strings"

	"github.com/donorlink/backend/internal/domain/account"
	"github.com/donorlink/backend/internal/domain/notification"
	"github.com/donorlink/backend/internal/domain/requirement"
	"github.com/donorlink/backend/internal/domain/shared"
	"github.com/donorlink/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service handles requirement operations
type Service struct {
	requirements requirement.Repository
	users        account.UserRepository
	notifier     notification.Notifier
	logger       *zap.Logger
}

// NewService creates a new requirement service
func NewService(
	requirements requirement.Repository,
	users account.UserRepository,
	notifier notification.Notifier,
	logger *zap.Logger,
) *Service {
	if notifier == nil {
		notifier = notification.NopNotifier{}
	}
	return &Service{
		requirements: requirements,
		users:        users,
		notifier:     notifier,
		logger:       logger,
	}
}

// Create posts a requirement for the acting NGO and tells its connected donors
func (s *Service) Create(ctx context.Context, actor uuid.UUID, fields requirement.Fields) (*requirement.Requirement, error) {
	ngo, err := s.users.FindByID(ctx, actor)
	if err != nil && !shared.IsNotFound(err) {
		return nil, err
	}
	if ngo == nil || !ngo.IsNGO() {
		return nil, shared.NewForbiddenError("Only NGOs can create requirements")
	}

	r, err := requirement.NewRequirement(ngo.ID, fields)
	if err != nil {
		return nil, err
	}
	if err := s.requirements.Create(ctx, r); err != nil {
		s.logger.Error("Failed to create requirement", zap.Error(err))
		return nil, err
	}
	r.NGOName = ngo.DisplayName()

	s.logger.Info("Requirement created",
		zap.String("requirement_id", r.ID.String()),
		zap.String("ngo_id", r.NGOID.String()),
		zap.String("priority", string(r.Priority)))
	telemetry.Metrics().RequirementCreated(ctx, string(r.Priority))

	s.notifier.NotifyConnectedDonors(ctx, r.NGOID, payloadFor(r, "New requirement posted",
		fmt.Sprintf("%s posted a new %s priority requirement: %s", r.NGOName, r.Priority, r.Title)))
	return r, nil
}

// Get returns one requirement
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*requirement.Requirement, error) {
	r, err := s.requirements.FindByID(ctx, id)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.NewNotFoundError("Requirement not found")
		}
		return nil, err
	}
	return r, nil
}

// List returns the requirements matching filter, most urgent first
func (s *Service) List(ctx context.Context, filter requirement.Filter) ([]*requirement.Requirement, error) {
	items, err := s.requirements.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	requirement.SortByPriority(items)
	return items, nil
}

// ListByNGO returns every requirement an NGO posted regardless of status
func (s *Service) ListByNGO(ctx context.Context, ngoID uuid.UUID) ([]*requirement.Requirement, error) {
	return s.List(ctx, requirement.Filter{NGOID: &ngoID})
}

// ListByCategory returns the active requirements in a category
func (s *Service) ListByCategory(ctx context.Context, category string) ([]*requirement.Requirement, error) {
	active := requirement.StatusActive
	return s.List(ctx, requirement.Filter{Category: strings.TrimSpace(category), Status: &active})
}

// Update patches a requirement owned by actor
func (s *Service) Update(ctx context.Context, id, actor uuid.UUID, fields requirement.Fields) (*requirement.Requirement, error) {
	r, err := s.owned(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	if err := r.Apply(fields); err != nil {
		return nil, err
	}
	if err := s.requirements.Update(ctx, r); err != nil {
		s.logger.Error("Failed to update requirement", zap.String("requirement_id", id.String()), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Requirement updated", zap.String("requirement_id", id.String()))

	s.notifier.NotifyConnectedDonors(ctx, r.NGOID, payloadFor(r, "Requirement updated",
		fmt.Sprintf("%s updated a requirement: %s", r.NGOName, r.Title)))
	return r, nil
}

// Delete removes a requirement owned by actor
func (s *Service) Delete(ctx context.Context, id, actor uuid.UUID) error {
	if _, err := s.owned(ctx, id, actor); err != nil {
		return err
	}
	if err := s.requirements.Delete(ctx, id); err != nil {
		if shared.IsNotFound(err) {
			return shared.NewNotFoundError("Requirement not found")
		}
		s.logger.Error("Failed to delete requirement", zap.String("requirement_id", id.String()), zap.Error(err))
		return err
	}
	s.logger.Info("Requirement deleted", zap.String("requirement_id", id.String()))
	return nil
}

func (s *Service) owned(ctx context.Context, id, actor uuid.UUID) (*requirement.Requirement, error) {
	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !r.IsOwnedBy(actor) {
		return nil, shared.NewForbiddenError("Not authorized to modify this requirement")
	}
	return r, nil
}

// payloadFor builds the same payload for every connected donor
func payloadFor(r *requirement.Requirement, title, message string) notification.Builder {
	id := r.ID
	meta := map[string]any{
		"ngo_name": r.NGOName,
		"priority": string(r.Priority),
		"category": r.Category,
		"status":   string(r.Status),
	}
	return func(uuid.UUID) *notification.Payload {
		return &notification.Payload{
			Title:       title,
			Message:     message,
			Type:        notification.TypeRequirement,
			RelatedID:   &id,
			RelatedType: "requirement",
			Meta:        meta,
		}
	}
}
