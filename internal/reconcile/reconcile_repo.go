package reconcile

import (
	"context"

	"gorm.io/gorm"
)

// DanglingProjectRole is a project role foreign key whose company row no
// longer exists.
type DanglingProjectRole struct {
	ProjectID string
	TenantID  string
	Role      string
	CompanyID string
}

// OrphanedPending is a pending company whose owning project was deleted
// before resolution.
type OrphanedPending struct {
	PendingID string
	TenantID  string
	ProjectID string
}

// OrphanedOrder is an order whose project was deleted after creation.
type OrphanedOrder struct {
	OrderID   string
	TenantID  string
	ProjectID string
}

//go:generate mockgen -source=reconcile_repo.go -destination=mock/reconcile_repo_mock.go -package=mock
type Repository interface {
	FindDanglingProjectRoles(ctx context.Context) ([]DanglingProjectRole, error)
	FindOrphanedPendings(ctx context.Context) ([]OrphanedPending, error)
	FindOrphanedOrders(ctx context.Context) ([]OrphanedOrder, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindDanglingProjectRoles(ctx context.Context) ([]DanglingProjectRole, error) {
	var rows []DanglingProjectRole
	err := r.db.WithContext(ctx).Raw(`
		SELECT p.id AS project_id, p.tenant_id, roles.role, roles.company_id
		FROM projects p
		CROSS JOIN LATERAL (VALUES
			('masonry', p.masonry_company_id),
			('architect', p.architect_company_id),
			('engineer', p.engineer_company_id),
			('client', p.client_company_id)
		) AS roles(role, company_id)
		WHERE roles.company_id IS NOT NULL
		  AND NOT EXISTS (
			SELECT 1 FROM companies c WHERE c.id = roles.company_id
		  )
	`).Scan(&rows).Error
	return rows, err
}

func (r *repository) FindOrphanedPendings(ctx context.Context) ([]OrphanedPending, error) {
	var rows []OrphanedPending
	err := r.db.WithContext(ctx).Raw(`
		SELECT pc.id AS pending_id, pc.tenant_id, pc.project_id
		FROM pending_companies pc
		WHERE NOT EXISTS (
			SELECT 1 FROM projects p WHERE p.id = pc.project_id
		)
	`).Scan(&rows).Error
	return rows, err
}

func (r *repository) FindOrphanedOrders(ctx context.Context) ([]OrphanedOrder, error) {
	var rows []OrphanedOrder
	err := r.db.WithContext(ctx).Raw(`
		SELECT o.id AS order_id, o.tenant_id, o.project_id
		FROM orders o
		WHERE NOT EXISTS (
			SELECT 1 FROM projects p WHERE p.id = o.project_id
		)
	`).Scan(&rows).Error
	return rows, err
}
