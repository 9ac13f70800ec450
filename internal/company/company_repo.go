package company

import (
	"context"
	"database/sql"

	"github.com/viorizz/swom/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=company_repo.go -destination=mock/company_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, comp *Company) error
	FindAllByTenant(ctx context.Context, tenantID string) ([]Company, error)
	FindByTenantAndType(ctx context.Context, tenantID string, companyType Type) ([]Company, error)
	FindByIDAndTenant(ctx context.Context, tenantID string, id string) (*Company, error)
	Update(ctx context.Context, comp *Company) error
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

func (r *repository) Create(ctx context.Context, comp *Company) error {
	return r.gorm(ctx).Create(comp).Error
}

func (r *repository) FindAllByTenant(ctx context.Context, tenantID string) ([]Company, error) {
	var comps []Company
	err := r.gorm(ctx).
		Scopes(tenant.Scope(tenantID)).
		Order("created_at ASC").
		Find(&comps).Error
	return comps, err
}

func (r *repository) FindByTenantAndType(ctx context.Context, tenantID string, companyType Type) ([]Company, error) {
	var comps []Company
	err := r.gorm(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("type = ?", companyType).
		Order("created_at ASC").
		Find(&comps).Error
	return comps, err
}

func (r *repository) FindByIDAndTenant(ctx context.Context, tenantID string, id string) (*Company, error) {
	var comp Company
	err := r.gorm(ctx).
		Scopes(tenant.Scope(tenantID)).
		First(&comp, "id = ?", id).Error
	return &comp, err
}

func (r *repository) Update(ctx context.Context, comp *Company) error {
	return r.gorm(ctx).Save(comp).Error
}

func (r *repository) Delete(ctx context.Context, tenantID string, id string) error {
	return r.gorm(ctx).
		Scopes(tenant.Scope(tenantID)).
		Delete(&Company{}, "id = ?", id).Error
}

// gorm routes queries through the bound sql.Tx when one is set.
func (r *repository) gorm(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db = db.Session(&gorm.Session{NewDB: true, SkipDefaultTransaction: true})
		db.Statement.ConnPool = r.tx
	}
	return db
}
