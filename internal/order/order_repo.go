package order

import (
	"context"
	"database/sql"

	"github.com/viorizz/swom/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=order_repo.go -destination=mock/order_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, order *Order) error
	FindAllByTenant(ctx context.Context, tenantID string) ([]Order, error)
	FindAllByProject(ctx context.Context, tenantID string, projectID string) ([]Order, error)
	FindByIDAndTenant(ctx context.Context, tenantID string, id string) (*Order, error)
	Update(ctx context.Context, order *Order) error
	Delete(ctx context.Context, tenantID string, id string) error
	CreateItem(ctx context.Context, item *OrderItem) error
	FindItemsByOrder(ctx context.Context, tenantID string, orderID string) ([]OrderItem, error)
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

func (r *repository) Create(ctx context.Context, order *Order) error {
	return r.gorm(ctx).Create(order).Error
}

func (r *repository) FindAllByTenant(ctx context.Context, tenantID string) ([]Order, error) {
	var orders []Order
	err := r.gorm(ctx).
		Scopes(tenant.Scope(tenantID)).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *repository) FindAllByProject(ctx context.Context, tenantID string, projectID string) ([]Order, error) {
	var orders []Order
	err := r.gorm(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *repository) FindByIDAndTenant(ctx context.Context, tenantID string, id string) (*Order, error) {
	var order Order
	err := r.gorm(ctx).
		Scopes(tenant.Scope(tenantID)).
		First(&order, "id = ?", id).Error
	return &order, err
}

func (r *repository) Update(ctx context.Context, order *Order) error {
	return r.gorm(ctx).Save(order).Error
}

func (r *repository) Delete(ctx context.Context, tenantID string, id string) error {
	return r.gorm(ctx).
		Scopes(tenant.Scope(tenantID)).
		Delete(&Order{}, "id = ?", id).Error
}

func (r *repository) CreateItem(ctx context.Context, item *OrderItem) error {
	return r.gorm(ctx).Create(item).Error
}

func (r *repository) FindItemsByOrder(ctx context.Context, tenantID string, orderID string) ([]OrderItem, error) {
	var items []OrderItem
	err := r.gorm(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("order_id = ?", orderID).
		Order("position ASC").
		Find(&items).Error
	return items, err
}

func (r *repository) gorm(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db = db.Session(&gorm.Session{NewDB: true, SkipDefaultTransaction: true})
		db.Statement.ConnPool = r.tx
	}
	return db
}
