package navigation

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/viorizz/swom/internal/company"
	"github.com/viorizz/swom/internal/order"
	"github.com/viorizz/swom/internal/project"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const TreeKeyPrefix = "navigation:tree:"

func GetTreeKey(tenantID string) string {
	return TreeKeyPrefix + tenantID
}

const treeTTL = time.Minute

//go:generate mockgen -source=navigation_service.go -destination=mock/navigation_service_mock.go -package=mock
type Service interface {
	GetTree(ctx context.Context, tenantID string) (TreeResponse, error)
}

type service struct {
	projectRepo project.Repository
	orderRepo   order.Repository
	companyRepo company.Repository
	rdb         *redis.Client
	sf          *singleflight.Group
	logger      *zap.Logger
}

func NewService(
	projectRepo project.Repository,
	orderRepo order.Repository,
	companyRepo company.Repository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("navigation.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("navigation.service")
	}
	return &service{
		projectRepo: projectRepo,
		orderRepo:   orderRepo,
		companyRepo: companyRepo,
		rdb:         rdb,
		sf:          &singleflight.Group{},
		logger:      l,
	}
}

// GetTree builds the sidebar projection: every project with its orders and
// the four resolved (nullable) company roles. A deleted company leaves its
// role null instead of failing the tree. Cached briefly in redis; the TTL
// is short because project and order writes do not invalidate it.
func (s *service) GetTree(ctx context.Context, tenantID string) (TreeResponse, error) {
	cacheKey := GetTreeKey(tenantID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp TreeResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		resp, err := s.buildTree(ctx, tenantID)
		if err != nil {
			return nil, err
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, treeTTL)
			}
		}

		return resp, nil
	})

	if err != nil {
		return TreeResponse{}, err
	}

	return v.(TreeResponse), nil
}

func (s *service) buildTree(ctx context.Context, tenantID string) (TreeResponse, error) {
	var (
		projects []project.Project
		orders   []order.Order
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		projects, err = s.projectRepo.FindAllByTenant(gctx, tenantID)
		return err
	})
	g.Go(func() error {
		var err error
		orders, err = s.orderRepo.FindAllByTenant(gctx, tenantID)
		return err
	})
	if err := g.Wait(); err != nil {
		return TreeResponse{}, err
	}

	companies := s.resolveCompanies(ctx, tenantID, projects)

	ordersByProject := make(map[uuid.UUID][]TreeOrder)
	for _, ord := range orders {
		ordersByProject[ord.ProjectID] = append(ordersByProject[ord.ProjectID], TreeOrder{
			ID:          ord.ID.String(),
			DraftName:   ord.DraftName,
			OrderNumber: ord.OrderNumber,
			Status:      string(ord.Status),
		})
	}

	resp := TreeResponse{Projects: make([]TreeProject, 0, len(projects))}
	for _, proj := range projects {
		node := TreeProject{
			ID:     proj.ID.String(),
			Name:   proj.Name,
			Number: proj.Number,
			Status: string(proj.Status),
			Orders: ordersByProject[proj.ID],
		}
		if node.Orders == nil {
			node.Orders = []TreeOrder{}
		}

		for _, role := range company.Types() {
			companyID := proj.RoleCompanyID(role)
			if companyID == nil {
				continue
			}
			ref, ok := companies[*companyID]
			if !ok {
				continue
			}
			switch role {
			case company.TypeMasonry:
				node.Companies.Masonry = ref
			case company.TypeArchitect:
				node.Companies.Architect = ref
			case company.TypeEngineer:
				node.Companies.Engineer = ref
			case company.TypeClient:
				node.Companies.Client = ref
			}
		}

		resp.Projects = append(resp.Projects, node)
	}

	return resp, nil
}

// resolveCompanies fetches each distinct referenced company once, in
// parallel. Lookups that fail resolve to a missing entry, which renders
// as null in the tree.
func (s *service) resolveCompanies(
	ctx context.Context,
	tenantID string,
	projects []project.Project,
) map[uuid.UUID]*CompanyRef {
	ids := make(map[uuid.UUID]struct{})
	for _, proj := range projects {
		for _, role := range company.Types() {
			if id := proj.RoleCompanyID(role); id != nil {
				ids[*id] = struct{}{}
			}
		}
	}

	var mu sync.Mutex
	resolved := make(map[uuid.UUID]*CompanyRef, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for id := range ids {
		id := id
		g.Go(func() error {
			comp, err := s.companyRepo.FindByIDAndTenant(gctx, tenantID, id.String())
			if err != nil {
				s.logger.Debug("company reference did not resolve",
					zap.String("company_id", id.String()),
				)
				return nil
			}
			mu.Lock()
			resolved[id] = &CompanyRef{
				ID:   comp.ID.String(),
				Name: comp.Name,
				Type: string(comp.Type),
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return resolved
}
