package reconcile

import (
	"context"

	"go.uber.org/zap"
)

// Report is one sweep's findings. Nothing is auto-healed; deciding what a
// dangling reference means is an operator call.
type Report struct {
	DanglingProjectRoles []DanglingProjectRole
	OrphanedPendings     []OrphanedPending
	OrphanedOrders       []OrphanedOrder
}

func (r Report) Clean() bool {
	return len(r.DanglingProjectRoles) == 0 &&
		len(r.OrphanedPendings) == 0 &&
		len(r.OrphanedOrders) == 0
}

type Service interface {
	Sweep(ctx context.Context) (Report, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("reconcile.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("reconcile.service")
	}
	return &service{
		repo:   repo,
		logger: l,
	}
}

func (s *service) Sweep(ctx context.Context) (Report, error) {
	var report Report
	var err error

	if report.DanglingProjectRoles, err = s.repo.FindDanglingProjectRoles(ctx); err != nil {
		return Report{}, err
	}
	if report.OrphanedPendings, err = s.repo.FindOrphanedPendings(ctx); err != nil {
		return Report{}, err
	}
	if report.OrphanedOrders, err = s.repo.FindOrphanedOrders(ctx); err != nil {
		return Report{}, err
	}

	for _, row := range report.DanglingProjectRoles {
		s.logger.Warn("project role references missing company",
			zap.String("tenant_id", row.TenantID),
			zap.String("project_id", row.ProjectID),
			zap.String("role", row.Role),
			zap.String("company_id", row.CompanyID),
		)
	}
	for _, row := range report.OrphanedPendings {
		s.logger.Warn("pending company has no project",
			zap.String("tenant_id", row.TenantID),
			zap.String("pending_id", row.PendingID),
			zap.String("project_id", row.ProjectID),
		)
	}
	for _, row := range report.OrphanedOrders {
		s.logger.Warn("order has no project",
			zap.String("tenant_id", row.TenantID),
			zap.String("order_id", row.OrderID),
			zap.String("project_id", row.ProjectID),
		)
	}

	if report.Clean() {
		s.logger.Debug("sweep clean")
	} else {
		s.logger.Info("sweep found inconsistencies",
			zap.Int("dangling_project_roles", len(report.DanglingProjectRoles)),
			zap.Int("orphaned_pendings", len(report.OrphanedPendings)),
			zap.Int("orphaned_orders", len(report.OrphanedOrders)),
		)
	}

	return report, nil
}
