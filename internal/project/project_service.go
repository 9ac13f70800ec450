package project

import (
	"context"
	"database/sql"
	"time"

	"github.com/viorizz/swom/internal/company"
	"github.com/viorizz/swom/internal/events"
	"github.com/viorizz/swom/internal/messaging/kafka"
	"github.com/viorizz/swom/internal/pendingcompany"
	projecterrors "github.com/viorizz/swom/internal/project/errors"
	"github.com/viorizz/swom/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=project_service.go -destination=mock/project_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, tenantID string, req CreateProjectRequest) (ProjectResponse, error)
	CreateWithCompanies(ctx context.Context, tenantID string, req CreateProjectWithCompaniesRequest) (CreateWithCompaniesResponse, error)
	GetAll(ctx context.Context, tenantID string) ([]ProjectResponse, error)
	GetByID(ctx context.Context, tenantID, id string) (ProjectResponse, error)
	GetWithCompanies(ctx context.Context, tenantID, id string) (ProjectWithCompaniesResponse, error)
	Update(ctx context.Context, tenantID, id string, req UpdateProjectRequest) (ProjectResponse, error)
	Delete(ctx context.Context, tenantID, id string) error
}

type service struct {
	db          *sql.DB
	repo        Repository
	pendingRepo pendingcompany.Repository
	companyRepo company.Repository
	outbox      kafka.OutboxRepository
	logger      *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	pendingRepo pendingcompany.Repository,
	companyRepo company.Repository,
	logger ...*zap.Logger,
) Service {
	return NewServiceWithOutbox(db, repo, pendingRepo, companyRepo, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	pendingRepo pendingcompany.Repository,
	companyRepo company.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("project.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("project.service")
	}
	return &service{
		db:          db,
		repo:        repo,
		pendingRepo: pendingRepo,
		companyRepo: companyRepo,
		outbox:      outboxRepo,
		logger:      l,
	}
}

func (s *service) Create(
	ctx context.Context,
	tenantID string,
	req CreateProjectRequest,
) (ProjectResponse, error) {
	proj := &Project{
		ID:          uuid.New(),
		Name:        req.Name,
		Number:      req.Number,
		Description: req.Description,
		Status:      StatusPlanning,
		TenantID:    tenantID,
	}

	if req.Status != nil {
		status := Status(*req.Status)
		if !status.Valid() {
			return ProjectResponse{}, projecterrors.ErrInvalidStatus
		}
		proj.Status = status
	}

	var err error
	if proj.StartDate, err = parseDate(req.StartDate); err != nil {
		return ProjectResponse{}, projecterrors.ErrInvalidDate
	}
	if proj.EndDate, err = parseDate(req.EndDate); err != nil {
		return ProjectResponse{}, projecterrors.ErrInvalidDate
	}

	directIDs := []struct {
		role company.Type
		id   *string
	}{
		{company.TypeMasonry, req.MasonryCompanyID},
		{company.TypeArchitect, req.ArchitectCompanyID},
		{company.TypeEngineer, req.EngineerCompanyID},
		{company.TypeClient, req.ClientCompanyID},
	}
	for _, d := range directIDs {
		id, err := parseUUIDPtr(d.id)
		if err != nil {
			return ProjectResponse{}, projecterrors.ErrInvalidProjectID
		}
		proj.SetRoleCompanyID(d.role, id)
	}

	if err := s.repo.Create(ctx, proj); err != nil {
		s.logger.Error("create project persist failed", zap.Error(err))
		return ProjectResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create project success", zap.String("project_id", proj.ID.String()))

	return mapToResponse(*proj), nil
}

// CreateWithCompanies is the two-phase creation: roles with an existing
// company id become foreign keys immediately, roles with a free-text name
// become PendingCompany placeholders and the foreign key stays unset. The
// project row goes in first so the placeholders can reference it; all writes
// share one transaction. The returned pending list is the caller's cue to
// launch the resolution workflow.
func (s *service) CreateWithCompanies(
	ctx context.Context,
	tenantID string,
	req CreateProjectWithCompaniesRequest,
) (CreateWithCompaniesResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create project with companies requested",
		zap.String("request_id", rid),
		zap.String("tenant_id", tenantID),
		zap.String("number", req.Number),
	)

	proj := &Project{
		ID:          uuid.New(),
		Name:        req.Name,
		Number:      req.Number,
		Description: req.Description,
		Status:      StatusPlanning,
		TenantID:    tenantID,
	}

	var err error
	if proj.StartDate, err = parseDate(req.StartDate); err != nil {
		return CreateWithCompaniesResponse{}, projecterrors.ErrInvalidDate
	}
	if proj.EndDate, err = parseDate(req.EndDate); err != nil {
		return CreateWithCompaniesResponse{}, projecterrors.ErrInvalidDate
	}

	// Partition the role assignments before touching the store.
	var newCompanies []PendingCompanySummary
	for _, entry := range req.Companies.ByRole() {
		if entry.Assignment == nil {
			continue
		}

		assignment := entry.Assignment
		hasID := assignment.ExistingID != nil && *assignment.ExistingID != ""
		hasName := assignment.NewName != nil && *assignment.NewName != ""

		switch {
		case hasID && hasName:
			return CreateWithCompaniesResponse{}, projecterrors.ErrAmbiguousRoleAssignment
		case hasID:
			id, err := uuid.Parse(*assignment.ExistingID)
			if err != nil {
				return CreateWithCompaniesResponse{}, projecterrors.ErrInvalidProjectID
			}
			proj.SetRoleCompanyID(entry.Role, &id)
		case hasName:
			newCompanies = append(newCompanies, PendingCompanySummary{
				Name: *assignment.NewName,
				Type: string(entry.Role),
			})
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return CreateWithCompaniesResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	pqtx := s.pendingRepo.WithTx(tx)

	if err := qtx.Create(ctx, proj); err != nil {
		s.logger.Error("create project persist failed", zap.String("request_id", rid), zap.Error(err))
		return CreateWithCompaniesResponse{}, mapRepositoryError(err)
	}

	for _, pending := range newCompanies {
		row := &pendingcompany.PendingCompany{
			ID:        uuid.New(),
			ProjectID: proj.ID,
			Name:      pending.Name,
			Type:      company.Type(pending.Type),
			TenantID:  tenantID,
			CreatedAt: time.Now().UTC(),
		}
		if err := pqtx.Create(ctx, row); err != nil {
			s.logger.Error("create pending company persist failed",
				zap.String("request_id", rid),
				zap.String("role", pending.Type),
				zap.Error(err),
			)
			return CreateWithCompaniesResponse{}, mapRepositoryError(err)
		}
	}

	if s.outbox != nil {
		event := events.ProjectCreatedEvent{
			EventType:  "project_created",
			RequestID:  rid,
			ProjectID:  proj.ID.String(),
			TenantID:   tenantID,
			OccurredAt: time.Now().UTC(),
		}
		for _, pending := range newCompanies {
			event.PendingRoles = append(event.PendingRoles, events.PendingRole{
				Name: pending.Name,
				Type: pending.Type,
			})
		}

		outboxEvent, err := kafka.NewEvent(ctx, "project", proj.ID.String(), event.EventType, events.ProjectCreatedTopic, event)
		if err != nil {
			return CreateWithCompaniesResponse{}, err
		}

		if err := s.outbox.WithTx(tx).Create(ctx, outboxEvent); err != nil {
			return CreateWithCompaniesResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return CreateWithCompaniesResponse{}, err
	}

	s.logger.Info("create project with companies success",
		zap.String("request_id", rid),
		zap.String("project_id", proj.ID.String()),
		zap.Int("pending_companies", len(newCompanies)),
	)

	return CreateWithCompaniesResponse{
		ProjectID:        proj.ID.String(),
		PendingCompanies: newCompanies,
	}, nil
}

func (s *service) GetAll(
	ctx context.Context,
	tenantID string,
) ([]ProjectResponse, error) {
	projs, err := s.repo.FindAllByTenant(ctx, tenantID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(projs), nil
}

func (s *service) GetByID(
	ctx context.Context,
	tenantID, id string,
) (ProjectResponse, error) {
	proj, err := s.repo.FindByIDAndTenant(ctx, tenantID, id)
	if err != nil {
		return ProjectResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*proj), nil
}

// GetWithCompanies resolves each assigned role to its company record. An
// unset role, or a reference whose company was deleted, resolves to null
// rather than failing the whole projection.
func (s *service) GetWithCompanies(
	ctx context.Context,
	tenantID, id string,
) (ProjectWithCompaniesResponse, error) {
	proj, err := s.repo.FindByIDAndTenant(ctx, tenantID, id)
	if err != nil {
		return ProjectWithCompaniesResponse{}, mapRepositoryError(err)
	}

	resp := ProjectWithCompaniesResponse{
		ProjectResponse: mapToResponse(*proj),
	}

	for _, role := range company.Types() {
		companyID := proj.RoleCompanyID(role)
		if companyID == nil {
			continue
		}

		comp, err := s.companyRepo.FindByIDAndTenant(ctx, tenantID, companyID.String())
		if err != nil {
			// Dangling reference: the company was deleted independently.
			s.logger.Warn("company reference did not resolve",
				zap.String("project_id", proj.ID.String()),
				zap.String("role", string(role)),
				zap.String("company_id", companyID.String()),
			)
			continue
		}

		compResp := company.CompanyResponse{
			ID:      comp.ID.String(),
			Name:    comp.Name,
			Type:    string(comp.Type),
			Address: comp.Address,
			Phone:   comp.Phone,
			Email:   comp.Email,
		}
		switch role {
		case company.TypeMasonry:
			resp.Companies.Masonry = &compResp
		case company.TypeArchitect:
			resp.Companies.Architect = &compResp
		case company.TypeEngineer:
			resp.Companies.Engineer = &compResp
		case company.TypeClient:
			resp.Companies.Client = &compResp
		}
	}

	return resp, nil
}

func (s *service) Update(
	ctx context.Context,
	tenantID, id string,
	req UpdateProjectRequest,
) (ProjectResponse, error) {
	proj, err := s.repo.FindByIDAndTenant(ctx, tenantID, id)
	if err != nil {
		return ProjectResponse{}, mapRepositoryError(err)
	}

	if req.Name != nil {
		proj.Name = *req.Name
	}
	if req.Number != nil {
		proj.Number = *req.Number
	}
	if req.Description != nil {
		proj.Description = req.Description
	}
	if req.Status != nil {
		status := Status(*req.Status)
		if !status.Valid() {
			return ProjectResponse{}, projecterrors.ErrInvalidStatus
		}
		proj.Status = status
	}
	if req.StartDate != nil {
		if proj.StartDate, err = parseDate(req.StartDate); err != nil {
			return ProjectResponse{}, projecterrors.ErrInvalidDate
		}
	}
	if req.EndDate != nil {
		if proj.EndDate, err = parseDate(req.EndDate); err != nil {
			return ProjectResponse{}, projecterrors.ErrInvalidDate
		}
	}

	directIDs := []struct {
		role company.Type
		id   *string
	}{
		{company.TypeMasonry, req.MasonryCompanyID},
		{company.TypeArchitect, req.ArchitectCompanyID},
		{company.TypeEngineer, req.EngineerCompanyID},
		{company.TypeClient, req.ClientCompanyID},
	}
	for _, d := range directIDs {
		if d.id == nil {
			continue
		}
		parsed, err := parseUUIDPtr(d.id)
		if err != nil {
			return ProjectResponse{}, projecterrors.ErrInvalidProjectID
		}
		proj.SetRoleCompanyID(d.role, parsed)
	}

	if err := s.repo.Update(ctx, proj); err != nil {
		return ProjectResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*proj), nil
}

// Delete removes the project only. Orders, parts, and pending companies that
// reference it are left in place for the reconciliation sweep to report; no
// cascade is enforced.
func (s *service) Delete(
	ctx context.Context,
	tenantID, id string,
) error {
	if _, err := s.repo.FindByIDAndTenant(ctx, tenantID, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := s.repo.Delete(ctx, tenantID, id); err != nil {
		return mapRepositoryError(err)
	}

	s.logger.Info("project deleted",
		zap.String("tenant_id", tenantID),
		zap.String("project_id", id),
	)

	return nil
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}

func parseUUIDPtr(s *string) (*uuid.UUID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func uuidString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func mapToResponse(proj Project) ProjectResponse {
	return ProjectResponse{
		ID:                 proj.ID.String(),
		Name:               proj.Name,
		Number:             proj.Number,
		Description:        proj.Description,
		MasonryCompanyID:   uuidString(proj.MasonryCompanyID),
		ArchitectCompanyID: uuidString(proj.ArchitectCompanyID),
		EngineerCompanyID:  uuidString(proj.EngineerCompanyID),
		ClientCompanyID:    uuidString(proj.ClientCompanyID),
		StartDate:          formatDate(proj.StartDate),
		EndDate:            formatDate(proj.EndDate),
		Status:             string(proj.Status),
	}
}

func mapToListResponse(projs []Project) []ProjectResponse {
	res := make([]ProjectResponse, len(projs))
	for i, proj := range projs {
		res[i] = mapToResponse(proj)
	}
	return res
}
