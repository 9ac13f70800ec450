package pendingcompany

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/viorizz/swom/internal/company"
	"github.com/viorizz/swom/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=pending_company_repo.go -destination=mock/pending_company_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, pending *PendingCompany) error
	FindByIDAndTenant(ctx context.Context, tenantID string, id string) (*PendingCompany, error)
	FindAllByProject(ctx context.Context, tenantID string, projectID string) ([]PendingCompany, error)
	FindAllByTenant(ctx context.Context, tenantID string) ([]PendingCompany, error)
	Delete(ctx context.Context, tenantID string, id string) error
	LinkProjectRoleCompany(ctx context.Context, tenantID string, projectID uuid.UUID, role company.Type, companyID uuid.UUID) (bool, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) Create(ctx context.Context, pending *PendingCompany) error {
	return r.gorm(ctx).Create(pending).Error
}

func (r *repository) FindByIDAndTenant(ctx context.Context, tenantID string, id string) (*PendingCompany, error) {
	var pending PendingCompany
	err := r.gorm(ctx).
		Scopes(tenant.Scope(tenantID)).
		First(&pending, "id = ?", id).Error
	return &pending, err
}

func (r *repository) FindAllByProject(ctx context.Context, tenantID string, projectID string) ([]PendingCompany, error) {
	var pendings []PendingCompany
	err := r.gorm(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&pendings).Error
	return pendings, err
}

func (r *repository) FindAllByTenant(ctx context.Context, tenantID string) ([]PendingCompany, error) {
	var pendings []PendingCompany
	err := r.gorm(ctx).
		Scopes(tenant.Scope(tenantID)).
		Order("created_at ASC").
		Find(&pendings).Error
	return pendings, err
}

func (r *repository) Delete(ctx context.Context, tenantID string, id string) error {
	res := r.gorm(ctx).
		Scopes(tenant.Scope(tenantID)).
		Delete(&PendingCompany{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// A concurrent resolution already consumed the row.
		return gorm.ErrRecordNotFound
	}
	return nil
}

// LinkProjectRoleCompany patches the single role foreign key on the owning
// project. Returns false when the project no longer exists; the caller
// decides whether that is an error (for the resolution workflow it is not).
func (r *repository) LinkProjectRoleCompany(
	ctx context.Context,
	tenantID string,
	projectID uuid.UUID,
	role company.Type,
	companyID uuid.UUID,
) (bool, error) {
	column, ok := roleColumn(role)
	if !ok {
		return false, fmt.Errorf("unknown company role: %s", role)
	}

	res := r.gorm(ctx).Exec(
		// column comes from the closed switch above, never from input
		fmt.Sprintf("UPDATE projects SET %s = ?, updated_at = now() WHERE id = ? AND tenant_id = ?", column),
		companyID, projectID, tenantID,
	)
	if res.Error != nil {
		return false, res.Error
	}

	return res.RowsAffected > 0, nil
}

func roleColumn(role company.Type) (string, bool) {
	switch role {
	case company.TypeMasonry:
		return "masonry_company_id", true
	case company.TypeArchitect:
		return "architect_company_id", true
	case company.TypeEngineer:
		return "engineer_company_id", true
	case company.TypeClient:
		return "client_company_id", true
	}
	return "", false
}

func (r *repository) gorm(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db = db.Session(&gorm.Session{NewDB: true, SkipDefaultTransaction: true})
		db.Statement.ConnPool = r.tx
	}
	return db
}
