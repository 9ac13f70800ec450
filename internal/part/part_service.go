package part

import (
	"context"
	"errors"

	"github.com/viorizz/swom/internal/project"
	projecterrors "github.com/viorizz/swom/internal/project/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=part_service.go -destination=mock/part_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, tenantID string, req CreatePartRequest) (PartResponse, error)
	ListByProject(ctx context.Context, tenantID, projectID string) ([]PartResponse, error)
	Delete(ctx context.Context, tenantID, id string) error
}

type service struct {
	repo        Repository
	projectRepo project.Repository
	logger      *zap.Logger
}

func NewService(
	repo Repository,
	projectRepo project.Repository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("part.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("part.service")
	}
	return &service{
		repo:        repo,
		projectRepo: projectRepo,
		logger:      l,
	}
}

func (s *service) Create(
	ctx context.Context,
	tenantID string,
	req CreatePartRequest,
) (PartResponse, error) {
	proj, err := s.projectRepo.FindByIDAndTenant(ctx, tenantID, req.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PartResponse{}, projecterrors.ErrProjectNotFound
		}
		s.logger.Error("project lookup failed",
			zap.String("project_id", req.ProjectID),
			zap.Error(err),
		)
		return PartResponse{}, err
	}

	part := &Part{
		ID:        uuid.New(),
		Name:      req.Name,
		ProjectID: proj.ID,
		TenantID:  tenantID,
	}

	if err := s.repo.Create(ctx, part); err != nil {
		s.logger.Error("create part persist failed", zap.Error(err))
		return PartResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*part), nil
}

func (s *service) ListByProject(
	ctx context.Context,
	tenantID, projectID string,
) ([]PartResponse, error) {
	parts, err := s.repo.FindAllByProject(ctx, tenantID, projectID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	res := make([]PartResponse, len(parts))
	for i, part := range parts {
		res[i] = mapToResponse(part)
	}
	return res, nil
}

func (s *service) Delete(
	ctx context.Context,
	tenantID, id string,
) error {
	if _, err := s.repo.FindByIDAndTenant(ctx, tenantID, id); err != nil {
		return mapRepositoryError(err)
	}

	return mapRepositoryError(s.repo.Delete(ctx, tenantID, id))
}

func mapToResponse(part Part) PartResponse {
	return PartResponse{
		ID:        part.ID.String(),
		Name:      part.Name,
		ProjectID: part.ProjectID.String(),
	}
}
