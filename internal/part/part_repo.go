package part

import (
	"context"
	"database/sql"

	"github.com/viorizz/swom/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=part_repo.go -destination=mock/part_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, part *Part) error
	FindByIDAndTenant(ctx context.Context, tenantID string, id string) (*Part, error)
	FindAllByProject(ctx context.Context, tenantID string, projectID string) ([]Part, error)
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

func (r *repository) Create(ctx context.Context, part *Part) error {
	return r.gorm(ctx).Create(part).Error
}

func (r *repository) FindByIDAndTenant(ctx context.Context, tenantID string, id string) (*Part, error) {
	var part Part
	err := r.gorm(ctx).
		Scopes(tenant.Scope(tenantID)).
		First(&part, "id = ?", id).Error
	return &part, err
}

func (r *repository) FindAllByProject(ctx context.Context, tenantID string, projectID string) ([]Part, error) {
	var parts []Part
	err := r.gorm(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&parts).Error
	return parts, err
}

func (r *repository) Delete(ctx context.Context, tenantID string, id string) error {
	return r.gorm(ctx).
		Scopes(tenant.Scope(tenantID)).
		Delete(&Part{}, "id = ?", id).Error
}

func (r *repository) gorm(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db = db.Session(&gorm.Session{NewDB: true, SkipDefaultTransaction: true})
		db.Statement.ConnPool = r.tx
	}
	return db
}
