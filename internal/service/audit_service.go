package service

import (
	"context"
	"time"

	"github.com/Jaysins/inventory-mgt-backend/internal/apperr"
	"github.com/Jaysins/inventory-mgt-backend/internal/dto"
	"github.com/Jaysins/inventory-mgt-backend/internal/model"
	"github.com/Jaysins/inventory-mgt-backend/internal/repository"

	"github.com/google/uuid"
)

// AuditService is the read side of the audit trail. Writes happen through
// the async worker, never through this service.
type AuditService interface {
	List(ctx context.Context, filter dto.AuditListFilter) (*dto.AuditListResponse, error)
}

type auditService struct {
	repo repository.AuditRepository
}

func NewAuditService(repo repository.AuditRepository) AuditService {
	return &auditService{repo: repo}
}

func (s *auditService) List(ctx context.Context, filter dto.AuditListFilter) (*dto.AuditListResponse, error) {
	repoFilter := repository.AuditFilter{
		EntityType: filter.EntityType,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}
	if filter.EntityID != "" {
		id, err := uuid.Parse(filter.EntityID)
		if err != nil {
			return nil, apperr.New(apperr.KindInvalidArgument, "invalid entity_id")
		}
		repoFilter.EntityID = &id
	}
	if repoFilter.Page < 1 {
		repoFilter.Page = 1
	}
	if repoFilter.Limit < 1 {
		repoFilter.Limit = 100
	}

	events, total, err := s.repo.List(ctx, repoFilter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AuditEventResponse, len(events))
	for i := range events {
		items[i] = *auditToResponse(&events[i])
	}
	return &dto.AuditListResponse{
		Data:  items,
		Total: total,
		Page:  repoFilter.Page,
		Limit: repoFilter.Limit,
	}, nil
}

func auditToResponse(e *model.AuditEvent) *dto.AuditEventResponse {
	resp := &dto.AuditEventResponse{
		ID:         e.ID.String(),
		EntityType: e.EntityType,
		Action:     e.Action,
		Quantity:   e.Quantity,
		Detail:     e.Detail,
		CreatedAt:  e.CreatedAt.UTC().Format(time.RFC3339),
	}
	if e.EntityID != nil {
		id := e.EntityID.String()
		resp.EntityID = &id
	}
	return resp
}
