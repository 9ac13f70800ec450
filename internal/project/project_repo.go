package project

import (
	"context"
	"database/sql"

	"github.com/viorizz/swom/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=project_repo.go -destination=mock/project_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, proj *Project) error
	FindAllByTenant(ctx context.Context, tenantID string) ([]Project, error)
	FindByIDAndTenant(ctx context.Context, tenantID string, id string) (*Project, error)
	Update(ctx context.Context, proj *Project) error
	Delete(ctx context.Context, tenantID string, id string) error
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

func (r *repository) Create(ctx context.Context, proj *Project) error {
	return r.gorm(ctx).Create(proj).Error
}

func (r *repository) FindAllByTenant(ctx context.Context, tenantID string) ([]Project, error) {
	var projs []Project
	err := r.gorm(ctx).
		Scopes(tenant.Scope(tenantID)).
		Order("created_at ASC").
		Find(&projs).Error
	return projs, err
}

func (r *repository) FindByIDAndTenant(ctx context.Context, tenantID string, id string) (*Project, error) {
	var proj Project
	err := r.gorm(ctx).
		Scopes(tenant.Scope(tenantID)).
		First(&proj, "id = ?", id).Error
	return &proj, err
}

func (r *repository) Update(ctx context.Context, proj *Project) error {
	return r.gorm(ctx).Save(proj).Error
}

func (r *repository) Delete(ctx context.Context, tenantID string, id string) error {
	return r.gorm(ctx).
		Scopes(tenant.Scope(tenantID)).
		Delete(&Project{}, "id = ?", id).Error
}

func (r *repository) gorm(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db = db.Session(&gorm.Session{NewDB: true, SkipDefaultTransaction: true})
		db.Statement.ConnPool = r.tx
	}
	return db
}
