package pendingcompany

import (
	"context"
	"database/sql"
	"time"

	"github.com/viorizz/swom/internal/company"
	"github.com/viorizz/swom/internal/events"
	"github.com/viorizz/swom/internal/messaging/kafka"
	"github.com/viorizz/swom/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

//go:generate mockgen -source=pending_company_service.go -destination=mock/pending_company_service_mock.go -package=mock
type Service interface {
	ListByTenant(ctx context.Context, tenantID string) ([]PendingCompanyResponse, error)
	ListByProject(ctx context.Context, tenantID string, projectID string) ([]PendingCompanyResponse, error)
	Complete(ctx context.Context, tenantID string, pendingID string, req CompletePendingCompanyRequest) (CompletePendingCompanyResponse, error)
	Remove(ctx context.Context, tenantID string, pendingID string) error
}

type service struct {
	db          *sql.DB
	repo        Repository
	companyRepo company.Repository
	outbox      kafka.OutboxRepository
	rdb         *redis.Client
	logger      *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	companyRepo company.Repository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	return NewServiceWithOutbox(db, repo, companyRepo, nil, rdb, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	companyRepo company.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("pendingcompany.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("pendingcompany.service")
	}
	return &service{
		db:          db,
		repo:        repo,
		companyRepo: companyRepo,
		outbox:      outboxRepo,
		rdb:         rdb,
		logger:      l,
	}
}

func (s *service) ListByTenant(ctx context.Context, tenantID string) ([]PendingCompanyResponse, error) {
	pendings, err := s.repo.FindAllByTenant(ctx, tenantID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(pendings), nil
}

func (s *service) ListByProject(ctx context.Context, tenantID string, projectID string) ([]PendingCompanyResponse, error) {
	pendings, err := s.repo.FindAllByProject(ctx, tenantID, projectID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(pendings), nil
}

// Complete converts one placeholder into a real Company: create the company
// from the pending row's name/type plus the submitted contact fields, patch
// the owning project's matching role foreign key, delete the pending row.
// All three writes share one transaction so readers never observe a company
// that exists without the project pointing at it or the placeholder removed.
// A project deleted in the interim is not an error: the company is still
// created and the patch is skipped (the reconciliation sweep reports the
// orphan).
func (s *service) Complete(
	ctx context.Context,
	tenantID string,
	pendingID string,
	req CompletePendingCompanyRequest,
) (CompletePendingCompanyResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("complete pending company requested",
		zap.String("request_id", rid),
		zap.String("tenant_id", tenantID),
		zap.String("pending_id", pendingID),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return CompletePendingCompanyResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	cqtx := s.companyRepo.WithTx(tx)

	pending, err := qtx.FindByIDAndTenant(ctx, tenantID, pendingID)
	if err != nil {
		return CompletePendingCompanyResponse{}, mapRepositoryError(err)
	}

	comp := &company.Company{
		ID:       uuid.New(),
		Name:     pending.Name,
		Type:     pending.Type,
		Address:  req.Address,
		Phone:    req.Phone,
		Email:    req.Email,
		TenantID: pending.TenantID,
	}

	if err := cqtx.Create(ctx, comp); err != nil {
		s.logger.Error("complete pending company create failed",
			zap.String("request_id", rid),
			zap.Error(err),
		)
		return CompletePendingCompanyResponse{}, mapRepositoryError(err)
	}

	linked, err := qtx.LinkProjectRoleCompany(ctx, tenantID, pending.ProjectID, pending.Type, comp.ID)
	if err != nil {
		return CompletePendingCompanyResponse{}, mapRepositoryError(err)
	}
	if !linked {
		s.logger.Warn("owning project gone, company left unlinked",
			zap.String("request_id", rid),
			zap.String("project_id", pending.ProjectID.String()),
			zap.String("company_id", comp.ID.String()),
		)
	}

	if err := qtx.Delete(ctx, tenantID, pendingID); err != nil {
		return CompletePendingCompanyResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event := events.CompanyResolvedEvent{
			EventType:  "company_resolved",
			RequestID:  rid,
			CompanyID:  comp.ID.String(),
			ProjectID:  pending.ProjectID.String(),
			Role:       string(pending.Type),
			TenantID:   tenantID,
			OccurredAt: time.Now().UTC(),
		}
		outboxEvent, err := kafka.NewEvent(ctx, "company", comp.ID.String(), event.EventType, events.CompanyResolvedTopic, event)
		if err != nil {
			return CompletePendingCompanyResponse{}, err
		}

		if err := s.outbox.WithTx(tx).Create(ctx, outboxEvent); err != nil {
			return CompletePendingCompanyResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return CompletePendingCompanyResponse{}, err
	}

	// The company was created outside company.Service, so its tree cache
	// is stale now.
	if s.rdb != nil {
		cacheKey := company.GetTreeKey(tenantID)
		if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
			s.logger.Error("failed to invalidate companies tree cache",
				zap.Error(err),
				zap.String("key", cacheKey),
			)
		}
	}

	s.logger.Info("pending company completed",
		zap.String("request_id", rid),
		zap.String("pending_id", pendingID),
		zap.String("company_id", comp.ID.String()),
		zap.Bool("project_linked", linked),
	)

	return CompletePendingCompanyResponse{CompanyID: comp.ID.String()}, nil
}

// Remove discards the placeholder without creating a company. The project's
// role foreign key stays whatever it was. A skip in the resolution wizard is
// different: it never reaches the backend and leaves the row in place.
func (s *service) Remove(ctx context.Context, tenantID string, pendingID string) error {
	if _, err := s.repo.FindByIDAndTenant(ctx, tenantID, pendingID); err != nil {
		return mapRepositoryError(err)
	}

	if err := s.repo.Delete(ctx, tenantID, pendingID); err != nil {
		return mapRepositoryError(err)
	}

	s.logger.Info("pending company removed",
		zap.String("tenant_id", tenantID),
		zap.String("pending_id", pendingID),
	)

	return nil
}

func mapToResponse(pending PendingCompany) PendingCompanyResponse {
	return PendingCompanyResponse{
		ID:        pending.ID.String(),
		ProjectID: pending.ProjectID.String(),
		Name:      pending.Name,
		Type:      string(pending.Type),
		CreatedAt: pending.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func mapToListResponse(pendings []PendingCompany) []PendingCompanyResponse {
	res := make([]PendingCompanyResponse, len(pendings))
	for i, pending := range pendings {
		res[i] = mapToResponse(pending)
	}
	return res
}
