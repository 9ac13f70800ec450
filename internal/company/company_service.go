package company

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	companyerrors "github.com/viorizz/swom/internal/company/errors"
	"github.com/viorizz/swom/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const TreeKeyPrefix = "companies:tree:"

func GetTreeKey(tenantID string) string {
	return TreeKeyPrefix + tenantID
}

//go:generate mockgen -source=company_service.go -destination=mock/company_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, tenantID string, req CreateCompanyRequest) (CompanyResponse, error)
	GetAll(ctx context.Context, tenantID string) ([]CompanyResponse, error)
	GetByID(ctx context.Context, tenantID, id string) (CompanyResponse, error)
	GetTree(ctx context.Context, tenantID string) (TreeResponse, error)
	Search(ctx context.Context, tenantID string, companyType string, term string) ([]CompanyResponse, error)
	Update(ctx context.Context, tenantID, id string, req UpdateCompanyRequest) (CompanyResponse, error)
	Delete(ctx context.Context, tenantID, id string) error
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("company.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("company.service")
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) Create(
	ctx context.Context,
	tenantID string,
	req CreateCompanyRequest,
) (CompanyResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create company requested",
		zap.String("request_id", rid),
		zap.String("tenant_id", tenantID),
		zap.String("type", req.Type),
	)

	companyType := Type(req.Type)
	if !companyType.Valid() {
		return CompanyResponse{}, companyerrors.ErrInvalidCompanyType
	}

	comp := &Company{
		ID:       uuid.New(),
		Name:     req.Name,
		Type:     companyType,
		Address:  req.Address,
		Phone:    req.Phone,
		Email:    req.Email,
		TenantID: tenantID,
	}

	if err := s.repo.Create(ctx, comp); err != nil {
		s.logger.Error("create company persist failed", zap.String("request_id", rid), zap.Error(err))
		return CompanyResponse{}, mapRepositoryError(err)
	}

	s.invalidateTree(ctx, tenantID)

	s.logger.Info("create company success",
		zap.String("request_id", rid),
		zap.String("company_id", comp.ID.String()),
	)

	return mapToResponse(*comp), nil
}

func (s *service) GetAll(
	ctx context.Context,
	tenantID string,
) ([]CompanyResponse, error) {
	comps, err := s.repo.FindAllByTenant(ctx, tenantID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(comps), nil
}

func (s *service) GetByID(
	ctx context.Context,
	tenantID, id string,
) (CompanyResponse, error) {
	comp, err := s.repo.FindByIDAndTenant(ctx, tenantID, id)
	if err != nil {
		return CompanyResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*comp), nil
}

// GetTree groups the tenant's companies by type. Types with no companies do
// not appear in the map. The result is cached in redis; singleflight keeps
// a cache miss from fanning out to the database.
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
		comps, err := s.repo.FindAllByTenant(ctx, tenantID)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := TreeResponse{}
		for _, comp := range comps {
			resp[string(comp.Type)] = append(resp[string(comp.Type)], mapToResponse(comp))
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, 5*time.Minute)
			}
		}

		return resp, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(TreeResponse), nil
}

// Search scopes by tenant (and optionally type) through the index, then
// filters by case-insensitive substring match in memory. Per-tenant company
// counts are small, so no pagination.
func (s *service) Search(
	ctx context.Context,
	tenantID string,
	companyType string,
	term string,
) ([]CompanyResponse, error) {
	var comps []Company
	var err error

	if companyType != "" {
		ct := Type(companyType)
		if !ct.Valid() {
			return nil, companyerrors.ErrInvalidCompanyType
		}
		comps, err = s.repo.FindByTenantAndType(ctx, tenantID, ct)
	} else {
		comps, err = s.repo.FindAllByTenant(ctx, tenantID)
	}
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	needle := strings.ToLower(term)
	matches := make([]CompanyResponse, 0, len(comps))
	for _, comp := range comps {
		if strings.Contains(strings.ToLower(comp.Name), needle) {
			matches = append(matches, mapToResponse(comp))
		}
	}

	return matches, nil
}

func (s *service) Update(
	ctx context.Context,
	tenantID, id string,
	req UpdateCompanyRequest,
) (CompanyResponse, error) {
	comp, err := s.repo.FindByIDAndTenant(ctx, tenantID, id)
	if err != nil {
		return CompanyResponse{}, mapRepositoryError(err)
	}

	// ID and Type are immutable; only name and contact fields change.
	if req.Name != nil {
		comp.Name = *req.Name
	}
	if req.Address != nil {
		comp.Address = req.Address
	}
	if req.Phone != nil {
		comp.Phone = req.Phone
	}
	if req.Email != nil {
		comp.Email = req.Email
	}

	if err := s.repo.Update(ctx, comp); err != nil {
		return CompanyResponse{}, mapRepositoryError(err)
	}

	s.invalidateTree(ctx, tenantID)

	return mapToResponse(*comp), nil
}

// Delete removes the company without touching projects that reference it.
// Dangling project references are resolved to null on read and reported by
// the reconciliation sweep.
func (s *service) Delete(
	ctx context.Context,
	tenantID, id string,
) error {
	if _, err := s.repo.FindByIDAndTenant(ctx, tenantID, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := s.repo.Delete(ctx, tenantID, id); err != nil {
		return mapRepositoryError(err)
	}

	s.invalidateTree(ctx, tenantID)

	return nil
}

func (s *service) invalidateTree(ctx context.Context, tenantID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetTreeKey(tenantID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate companies tree cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

func mapToResponse(comp Company) CompanyResponse {
	return CompanyResponse{
		ID:      comp.ID.String(),
		Name:    comp.Name,
		Type:    string(comp.Type),
		Address: comp.Address,
		Phone:   comp.Phone,
		Email:   comp.Email,
	}
}

func mapToListResponse(comps []Company) []CompanyResponse {
	res := make([]CompanyResponse, len(comps))
	for i, comp := range comps {
		res[i] = mapToResponse(comp)
	}
	return res
}
