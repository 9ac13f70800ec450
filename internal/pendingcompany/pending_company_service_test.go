package pendingcompany_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/viorizz/swom/internal/company"
	"github.com/viorizz/swom/internal/messaging/kafka"
	"github.com/viorizz/swom/internal/pendingcompany"
	pendingcompanyerrors "github.com/viorizz/swom/internal/pendingcompany/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakePendingRepository struct {
	withTxFn                 func(tx *sql.Tx) pendingcompany.Repository
	createFn                 func(ctx context.Context, pending *pendingcompany.PendingCompany) error
	findByIDAndTenantFn      func(ctx context.Context, tenantID, id string) (*pendingcompany.PendingCompany, error)
	findAllByProjectFn       func(ctx context.Context, tenantID, projectID string) ([]pendingcompany.PendingCompany, error)
	findAllByTenantFn        func(ctx context.Context, tenantID string) ([]pendingcompany.PendingCompany, error)
	deleteFn                 func(ctx context.Context, tenantID, id string) error
	linkProjectRoleCompanyFn func(ctx context.Context, tenantID string, projectID uuid.UUID, role company.Type, companyID uuid.UUID) (bool, error)
}

func (f *fakePendingRepository) WithTx(tx *sql.Tx) pendingcompany.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakePendingRepository) Create(ctx context.Context, pending *pendingcompany.PendingCompany) error {
	if f.createFn != nil {
		return f.createFn(ctx, pending)
	}
	return nil
}

func (f *fakePendingRepository) FindByIDAndTenant(ctx context.Context, tenantID, id string) (*pendingcompany.PendingCompany, error) {
	if f.findByIDAndTenantFn != nil {
		return f.findByIDAndTenantFn(ctx, tenantID, id)
	}
	return nil, nil
}

func (f *fakePendingRepository) FindAllByProject(ctx context.Context, tenantID, projectID string) ([]pendingcompany.PendingCompany, error) {
	if f.findAllByProjectFn != nil {
		return f.findAllByProjectFn(ctx, tenantID, projectID)
	}
	return nil, nil
}

func (f *fakePendingRepository) FindAllByTenant(ctx context.Context, tenantID string) ([]pendingcompany.PendingCompany, error) {
	if f.findAllByTenantFn != nil {
		return f.findAllByTenantFn(ctx, tenantID)
	}
	return nil, nil
}

func (f *fakePendingRepository) Delete(ctx context.Context, tenantID, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, tenantID, id)
	}
	return nil
}

func (f *fakePendingRepository) LinkProjectRoleCompany(ctx context.Context, tenantID string, projectID uuid.UUID, role company.Type, companyID uuid.UUID) (bool, error) {
	if f.linkProjectRoleCompanyFn != nil {
		return f.linkProjectRoleCompanyFn(ctx, tenantID, projectID, role, companyID)
	}
	return true, nil
}

type fakeCompanyRepository struct {
	createFn func(ctx context.Context, comp *company.Company) error
}

func (f *fakeCompanyRepository) WithTx(tx *sql.Tx) company.Repository { return f }

func (f *fakeCompanyRepository) Create(ctx context.Context, comp *company.Company) error {
	if f.createFn != nil {
		return f.createFn(ctx, comp)
	}
	return nil
}

func (f *fakeCompanyRepository) FindAllByTenant(ctx context.Context, tenantID string) ([]company.Company, error) {
	return nil, nil
}

func (f *fakeCompanyRepository) FindByTenantAndType(ctx context.Context, tenantID string, companyType company.Type) ([]company.Company, error) {
	return nil, nil
}

func (f *fakeCompanyRepository) FindByIDAndTenant(ctx context.Context, tenantID, id string) (*company.Company, error) {
	return nil, nil
}

func (f *fakeCompanyRepository) Update(ctx context.Context, comp *company.Company) error { return nil }

func (f *fakeCompanyRepository) Delete(ctx context.Context, tenantID, id string) error { return nil }

type fakeOutboxRepository struct {
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type pendingServiceDeps struct {
	db          *sql.DB
	sqlMock     sqlmock.Sqlmock
	service     pendingcompany.Service
	repo        *fakePendingRepository
	companyRepo *fakeCompanyRepository
	outbox      *fakeOutboxRepository
	redisMock   redismock.ClientMock
}

func setupPendingServiceTest(t *testing.T) *pendingServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	rdb, redisMock := redismock.NewClientMock()
	repo := &fakePendingRepository{}
	companyRepo := &fakeCompanyRepository{}
	outbox := &fakeOutboxRepository{}
	svc := pendingcompany.NewServiceWithOutbox(db, repo, companyRepo, outbox, rdb)

	return &pendingServiceDeps{
		db:          db,
		sqlMock:     sqlMock,
		service:     svc,
		repo:        repo,
		companyRepo: companyRepo,
		outbox:      outbox,
		redisMock:   redisMock,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestPendingCompanyService_Complete(t *testing.T) {
	ctx := context.Background()
	tenantID := "tenant-a"
	pendingID := uuid.New()
	projectID := uuid.New()

	t.Run("success creates company, links project, deletes row", func(t *testing.T) {
		deps := setupPendingServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDAndTenantFn = func(ctx context.Context, tid, id string) (*pendingcompany.PendingCompany, error) {
			assert.Equal(t, pendingID.String(), id)
			return &pendingcompany.PendingCompany{
				ID:        pendingID,
				ProjectID: projectID,
				Name:      "Stahlbau Weber",
				Type:      company.TypeEngineer,
				TenantID:  tid,
			}, nil
		}

		var createdCompanyID uuid.UUID
		phone := "+41 44 000 00 00"
		deps.companyRepo.createFn = func(ctx context.Context, comp *company.Company) error {
			assert.Equal(t, "Stahlbau Weber", comp.Name)
			assert.Equal(t, company.TypeEngineer, comp.Type)
			assert.Equal(t, tenantID, comp.TenantID)
			assert.Equal(t, &phone, comp.Phone)
			createdCompanyID = comp.ID
			return nil
		}

		linked := false
		deps.repo.linkProjectRoleCompanyFn = func(ctx context.Context, tid string, pid uuid.UUID, role company.Type, cid uuid.UUID) (bool, error) {
			assert.Equal(t, projectID, pid)
			assert.Equal(t, company.TypeEngineer, role)
			assert.Equal(t, createdCompanyID, cid)
			linked = true
			return true, nil
		}

		deleted := false
		deps.repo.deleteFn = func(ctx context.Context, tid, id string) error {
			assert.Equal(t, pendingID.String(), id)
			deleted = true
			return nil
		}

		var outboxEvent kafka.OutboxEvent
		deps.outbox.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
			outboxEvent = event
			return nil
		}

		deps.redisMock.ExpectDel(company.GetTreeKey(tenantID)).SetVal(1)

		resp, err := deps.service.Complete(ctx, tenantID, pendingID.String(), pendingcompany.CompletePendingCompanyRequest{
			Phone: &phone,
		})

		assert.NoError(t, err)
		assert.Equal(t, createdCompanyID.String(), resp.CompanyID)
		assert.True(t, linked)
		assert.True(t, deleted)
		assert.Equal(t, "company_resolved", outboxEvent.EventType)
		assert.Equal(t, createdCompanyID.String(), outboxEvent.AggregateID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("project gone still completes, patch skipped", func(t *testing.T) {
		deps := setupPendingServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDAndTenantFn = func(ctx context.Context, tid, id string) (*pendingcompany.PendingCompany, error) {
			return &pendingcompany.PendingCompany{
				ID:        pendingID,
				ProjectID: projectID,
				Name:      "Stahlbau Weber",
				Type:      company.TypeEngineer,
				TenantID:  tid,
			}, nil
		}
		deps.repo.linkProjectRoleCompanyFn = func(ctx context.Context, tid string, pid uuid.UUID, role company.Type, cid uuid.UUID) (bool, error) {
			return false, nil
		}

		deleted := false
		deps.repo.deleteFn = func(ctx context.Context, tid, id string) error {
			deleted = true
			return nil
		}

		deps.redisMock.ExpectDel(company.GetTreeKey(tenantID)).SetVal(1)

		resp, err := deps.service.Complete(ctx, tenantID, pendingID.String(), pendingcompany.CompletePendingCompanyRequest{})

		assert.NoError(t, err)
		assert.NotEmpty(t, resp.CompanyID)
		assert.True(t, deleted)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("pending row gone maps to not found, tx rolled back", func(t *testing.T) {
		deps := setupPendingServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDAndTenantFn = func(ctx context.Context, tid, id string) (*pendingcompany.PendingCompany, error) {
			return nil, gorm.ErrRecordNotFound
		}

		companyCreated := false
		deps.companyRepo.createFn = func(ctx context.Context, comp *company.Company) error {
			companyCreated = true
			return nil
		}

		_, err := deps.service.Complete(ctx, tenantID, pendingID.String(), pendingcompany.CompletePendingCompanyRequest{})

		assert.ErrorIs(t, err, pendingcompanyerrors.ErrPendingCompanyNotFound)
		assert.False(t, companyCreated)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("company create failure rolls back", func(t *testing.T) {
		deps := setupPendingServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDAndTenantFn = func(ctx context.Context, tid, id string) (*pendingcompany.PendingCompany, error) {
			return &pendingcompany.PendingCompany{
				ID:        pendingID,
				ProjectID: projectID,
				Name:      "Stahlbau Weber",
				Type:      company.TypeEngineer,
				TenantID:  tid,
			}, nil
		}
		deps.companyRepo.createFn = func(ctx context.Context, comp *company.Company) error {
			return assert.AnError
		}

		deleted := false
		deps.repo.deleteFn = func(ctx context.Context, tid, id string) error {
			deleted = true
			return nil
		}

		_, err := deps.service.Complete(ctx, tenantID, pendingID.String(), pendingcompany.CompletePendingCompanyRequest{})

		assert.Error(t, err)
		assert.False(t, deleted)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestPendingCompanyService_Remove(t *testing.T) {
	ctx := context.Background()
	tenantID := "tenant-a"
	pendingID := uuid.New()

	t.Run("removes row without creating company", func(t *testing.T) {
		deps := setupPendingServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDAndTenantFn = func(ctx context.Context, tid, id string) (*pendingcompany.PendingCompany, error) {
			return &pendingcompany.PendingCompany{
				ID:       pendingID,
				Name:     "Stahlbau Weber",
				Type:     company.TypeEngineer,
				TenantID: tid,
			}, nil
		}

		companyCreated := false
		deps.companyRepo.createFn = func(ctx context.Context, comp *company.Company) error {
			companyCreated = true
			return nil
		}
		linkCalled := false
		deps.repo.linkProjectRoleCompanyFn = func(ctx context.Context, tid string, pid uuid.UUID, role company.Type, cid uuid.UUID) (bool, error) {
			linkCalled = true
			return true, nil
		}
		deleted := false
		deps.repo.deleteFn = func(ctx context.Context, tid, id string) error {
			assert.Equal(t, pendingID.String(), id)
			deleted = true
			return nil
		}

		err := deps.service.Remove(ctx, tenantID, pendingID.String())

		assert.NoError(t, err)
		assert.True(t, deleted)
		assert.False(t, companyCreated)
		assert.False(t, linkCalled)
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupPendingServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDAndTenantFn = func(ctx context.Context, tid, id string) (*pendingcompany.PendingCompany, error) {
			return nil, gorm.ErrRecordNotFound
		}

		err := deps.service.Remove(ctx, tenantID, pendingID.String())

		assert.ErrorIs(t, err, pendingcompanyerrors.ErrPendingCompanyNotFound)
	})
}

func TestPendingCompanyService_ListByProject(t *testing.T) {
	ctx := context.Background()
	tenantID := "tenant-a"
	projectID := uuid.New()

	deps := setupPendingServiceTest(t)
	defer deps.db.Close()

	deps.repo.findAllByProjectFn = func(ctx context.Context, tid, pid string) ([]pendingcompany.PendingCompany, error) {
		assert.Equal(t, tenantID, tid)
		assert.Equal(t, projectID.String(), pid)
		return []pendingcompany.PendingCompany{
			{ID: uuid.New(), ProjectID: projectID, Name: "A", Type: company.TypeMasonry, TenantID: tid},
			{ID: uuid.New(), ProjectID: projectID, Name: "B", Type: company.TypeClient, TenantID: tid},
		}, nil
	}

	resp, err := deps.service.ListByProject(ctx, tenantID, projectID.String())

	assert.NoError(t, err)
	assert.Len(t, resp, 2)
	assert.Equal(t, "masonry", resp[0].Type)
}
