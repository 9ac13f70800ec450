package navigation_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/viorizz/swom/internal/company"
	"github.com/viorizz/swom/internal/navigation"
	"github.com/viorizz/swom/internal/order"
	"github.com/viorizz/swom/internal/project"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeProjectRepository struct {
	findAllByTenantFn func(ctx context.Context, tenantID string) ([]project.Project, error)
}

func (f *fakeProjectRepository) WithTx(tx *sql.Tx) project.Repository { return f }

func (f *fakeProjectRepository) Create(ctx context.Context, proj *project.Project) error { return nil }

func (f *fakeProjectRepository) FindAllByTenant(ctx context.Context, tenantID string) ([]project.Project, error) {
	if f.findAllByTenantFn != nil {
		return f.findAllByTenantFn(ctx, tenantID)
	}
	return nil, nil
}

func (f *fakeProjectRepository) FindByIDAndTenant(ctx context.Context, tenantID, id string) (*project.Project, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProjectRepository) Update(ctx context.Context, proj *project.Project) error { return nil }

func (f *fakeProjectRepository) Delete(ctx context.Context, tenantID, id string) error { return nil }

type fakeOrderRepository struct {
	findAllByTenantFn func(ctx context.Context, tenantID string) ([]order.Order, error)
}

func (f *fakeOrderRepository) WithTx(tx *sql.Tx) order.Repository { return f }

func (f *fakeOrderRepository) Create(ctx context.Context, ord *order.Order) error { return nil }

func (f *fakeOrderRepository) FindAllByTenant(ctx context.Context, tenantID string) ([]order.Order, error) {
	if f.findAllByTenantFn != nil {
		return f.findAllByTenantFn(ctx, tenantID)
	}
	return nil, nil
}

func (f *fakeOrderRepository) FindAllByProject(ctx context.Context, tenantID, projectID string) ([]order.Order, error) {
	return nil, nil
}

func (f *fakeOrderRepository) FindByIDAndTenant(ctx context.Context, tenantID, id string) (*order.Order, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeOrderRepository) Update(ctx context.Context, ord *order.Order) error { return nil }

func (f *fakeOrderRepository) Delete(ctx context.Context, tenantID, id string) error { return nil }

func (f *fakeOrderRepository) CreateItem(ctx context.Context, item *order.OrderItem) error {
	return nil
}

func (f *fakeOrderRepository) FindItemsByOrder(ctx context.Context, tenantID, orderID string) ([]order.OrderItem, error) {
	return nil, nil
}

type fakeCompanyRepository struct {
	findByIDAndTenantFn func(ctx context.Context, tenantID, id string) (*company.Company, error)
}

func (f *fakeCompanyRepository) WithTx(tx *sql.Tx) company.Repository { return f }

func (f *fakeCompanyRepository) Create(ctx context.Context, comp *company.Company) error { return nil }

func (f *fakeCompanyRepository) FindAllByTenant(ctx context.Context, tenantID string) ([]company.Company, error) {
	return nil, nil
}

func (f *fakeCompanyRepository) FindByTenantAndType(ctx context.Context, tenantID string, companyType company.Type) ([]company.Company, error) {
	return nil, nil
}

func (f *fakeCompanyRepository) FindByIDAndTenant(ctx context.Context, tenantID, id string) (*company.Company, error) {
	if f.findByIDAndTenantFn != nil {
		return f.findByIDAndTenantFn(ctx, tenantID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCompanyRepository) Update(ctx context.Context, comp *company.Company) error { return nil }

func (f *fakeCompanyRepository) Delete(ctx context.Context, tenantID, id string) error { return nil }

func TestNavigationService_GetTree(t *testing.T) {
	ctx := context.Background()
	tenantID := "tenant-a"

	projectA := uuid.New()
	projectB := uuid.New()
	masonryID := uuid.New()
	ghostID := uuid.New()

	newDeps := func() (*fakeProjectRepository, *fakeOrderRepository, *fakeCompanyRepository) {
		projectRepo := &fakeProjectRepository{
			findAllByTenantFn: func(ctx context.Context, tid string) ([]project.Project, error) {
				return []project.Project{
					{
						ID:               projectA,
						Name:             "Lindenhof",
						Number:           "P-2026-014",
						Status:           project.StatusActive,
						MasonryCompanyID: &masonryID,
						ClientCompanyID:  &ghostID,
						TenantID:         tid,
					},
					{
						ID:       projectB,
						Name:     "Seeblick",
						Number:   "P-2026-015",
						Status:   project.StatusPlanning,
						TenantID: tid,
					},
				}, nil
			},
		}
		orderRepo := &fakeOrderRepository{
			findAllByTenantFn: func(ctx context.Context, tid string) ([]order.Order, error) {
				return []order.Order{
					{ID: uuid.New(), ProjectID: projectA, DraftName: "Bewehrung EG", OrderNumber: "ORD-000001", Status: order.StatusDraft},
					{ID: uuid.New(), ProjectID: projectA, DraftName: "Bewehrung OG", OrderNumber: "ORD-000002", Status: order.StatusSubmitted},
				}, nil
			},
		}
		companyRepo := &fakeCompanyRepository{
			findByIDAndTenantFn: func(ctx context.Context, tid, id string) (*company.Company, error) {
				if id == masonryID.String() {
					return &company.Company{ID: masonryID, Name: "Mauerwerk AG", Type: company.TypeMasonry}, nil
				}
				return nil, gorm.ErrRecordNotFound
			},
		}
		return projectRepo, orderRepo, companyRepo
	}

	t.Run("groups orders per project, dangling company is null", func(t *testing.T) {
		projectRepo, orderRepo, companyRepo := newDeps()
		rdb, redisMock := redismock.NewClientMock()
		redisMock.ExpectGet(navigation.GetTreeKey(tenantID)).RedisNil()
		redisMock.Regexp().ExpectSet(navigation.GetTreeKey(tenantID), `.*`, time.Minute).SetVal("OK")

		svc := navigation.NewService(projectRepo, orderRepo, companyRepo, rdb)

		resp, err := svc.GetTree(ctx, tenantID)

		assert.NoError(t, err)
		assert.Len(t, resp.Projects, 2)

		lindenhof := resp.Projects[0]
		assert.Equal(t, "Lindenhof", lindenhof.Name)
		assert.Len(t, lindenhof.Orders, 2)
		assert.NotNil(t, lindenhof.Companies.Masonry)
		assert.Equal(t, "Mauerwerk AG", lindenhof.Companies.Masonry.Name)
		assert.Nil(t, lindenhof.Companies.Client)
		assert.Nil(t, lindenhof.Companies.Architect)

		seeblick := resp.Projects[1]
		assert.Empty(t, seeblick.Orders)
		assert.Nil(t, seeblick.Companies.Masonry)
	})

	t.Run("cache hit skips repositories", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()
		cached := navigation.TreeResponse{
			Projects: []navigation.TreeProject{{ID: projectA.String(), Name: "Lindenhof"}},
		}
		jsonResp, _ := json.Marshal(cached)
		redisMock.ExpectGet(navigation.GetTreeKey(tenantID)).SetVal(string(jsonResp))

		projectRepo := &fakeProjectRepository{
			findAllByTenantFn: func(ctx context.Context, tid string) ([]project.Project, error) {
				t.Fatal("repository must not be called on cache hit")
				return nil, nil
			},
		}

		svc := navigation.NewService(projectRepo, &fakeOrderRepository{}, &fakeCompanyRepository{}, rdb)

		resp, err := svc.GetTree(ctx, tenantID)

		assert.NoError(t, err)
		assert.Len(t, resp.Projects, 1)
		assert.Equal(t, "Lindenhof", resp.Projects[0].Name)
	})
}
