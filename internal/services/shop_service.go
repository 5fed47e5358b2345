package services

import (
	"context"
	"errors"

	"github.com/shoply/jobboard/internal/models"
	pgrepo "github.com/shoply/jobboard/internal/repositories/postgres"
	"github.com/shoply/jobboard/internal/utils"
)

type CreateShopInput struct {
	CompanyName string
	Description string
	Location    string
	Latitude    *float64
	Longitude   *float64
	Logo        string
}

type UpdateShopInput struct {
	CompanyName *string
	Description *string
	Location    *string
	Latitude    *float64
	Longitude   *float64
	Logo        *string
}

// StatusCount is one slice of the analytics status breakdown.
type StatusCount struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

type AnalyticsKPIs struct {
	TotalJobs         int64 `json:"total_jobs"`
	TotalViews        int64 `json:"total_views"`
	TotalApplications int64 `json:"total_applications"`
}

type ShopAnalytics struct {
	ShopVerified       bool                `json:"shop_verified"`
	KPIs               AnalyticsKPIs       `json:"kpis"`
	ApplicationsStatus []StatusCount       `json:"applications_status"`
	JobsPerformance    []pgrepo.TitleViews `json:"jobs_performance"`
}

type ShopService interface {
	Create(ctx context.Context, ownerID uint, in CreateShopInput) (*models.ShopProfile, error)
	Get(ctx context.Context, id uint) (*models.ShopProfile, error)
	GetByOwner(ctx context.Context, ownerID uint) (*models.ShopProfile, error)
	List(ctx context.Context) ([]models.ShopProfile, error)
	Update(ctx context.Context, id, callerID uint, in UpdateShopInput) (*models.ShopProfile, error)
	Delete(ctx context.Context, id, callerID uint) error
	SetVerified(ctx context.Context, id uint, verified bool) (*models.ShopProfile, error)
	Analytics(ctx context.Context, ownerID uint) (*ShopAnalytics, error)
}

type shopService struct {
	shops        pgrepo.ShopRepository
	vacancies    pgrepo.VacancyRepository
	applications pgrepo.ApplicationRepository
}

func NewShopService(shops pgrepo.ShopRepository, vacancies pgrepo.VacancyRepository, applications pgrepo.ApplicationRepository) ShopService {
	return &shopService{shops: shops, vacancies: vacancies, applications: applications}
}

func (s *shopService) Create(ctx context.Context, ownerID uint, in CreateShopInput) (*models.ShopProfile, error) {
	const op = "ShopService.Create"

	fe := utils.FieldErrors{}
	if in.CompanyName == "" {
		fe.Add("company_name", "This field is required.")
	}
	if in.Description == "" {
		fe.Add("description", "This field is required.")
	}
	if in.Location == "" {
		fe.Add("location", "This field is required.")
	}
	if len(fe) > 0 {
		return nil, fe
	}

	if _, err := s.shops.GetByUserID(ctx, ownerID); err == nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, "A shop profile already exists for this user.", nil)
	} else if !errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeInternal, op, "failed to check existing shop", err)
	}

	shop := &models.ShopProfile{
		UserID:      ownerID,
		CompanyName: in.CompanyName,
		Description: in.Description,
		Location:    in.Location,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		Logo:        in.Logo,
	}
	if err := s.shops.Create(ctx, shop); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create shop", err)
	}
	return s.Get(ctx, shop.ID)
}

func (s *shopService) Get(ctx context.Context, id uint) (*models.ShopProfile, error) {
	const op = "ShopService.Get"

	shop, err := s.shops.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "shop not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get shop", err)
	}
	return shop, nil
}

func (s *shopService) GetByOwner(ctx context.Context, ownerID uint) (*models.ShopProfile, error) {
	const op = "ShopService.GetByOwner"

	shop, err := s.shops.GetByUserID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "No shop profile found.", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get shop", err)
	}
	return shop, nil
}

func (s *shopService) List(ctx context.Context) ([]models.ShopProfile, error) {
	const op = "ShopService.List"

	shops, err := s.shops.List(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list shops", err)
	}
	return shops, nil
}

func (s *shopService) Update(ctx context.Context, id, callerID uint, in UpdateShopInput) (*models.ShopProfile, error) {
	const op = "ShopService.Update"

	shop, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if shop.UserID != callerID {
		return nil, utils.E(utils.CodeForbidden, op, "Not permitted.", nil)
	}

	if in.CompanyName != nil {
		shop.CompanyName = *in.CompanyName
	}
	if in.Description != nil {
		shop.Description = *in.Description
	}
	if in.Location != nil {
		shop.Location = *in.Location
	}
	if in.Latitude != nil {
		shop.Latitude = in.Latitude
	}
	if in.Longitude != nil {
		shop.Longitude = in.Longitude
	}
	if in.Logo != nil {
		shop.Logo = *in.Logo
	}

	if err := s.shops.Save(ctx, shop); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to save shop", err)
	}
	return shop, nil
}

func (s *shopService) Delete(ctx context.Context, id, callerID uint) error {
	const op = "ShopService.Delete"

	shop, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if shop.UserID != callerID {
		return utils.E(utils.CodeForbidden, op, "Not permitted.", nil)
	}

	if err := s.shops.Delete(ctx, id); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to delete shop", err)
	}
	return nil
}

func (s *shopService) SetVerified(ctx context.Context, id uint, verified bool) (*models.ShopProfile, error) {
	const op = "ShopService.SetVerified"

	shop, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	shop.IsVerified = verified
	if err := s.shops.Save(ctx, shop); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to save shop", err)
	}
	return shop, nil
}

// Analytics aggregates the caller's shop in one pass per metric. The
// status breakdown intentionally mirrors the dashboard's three slices;
// SHORTLISTED applications surface only in the total.
func (s *shopService) Analytics(ctx context.Context, ownerID uint) (*ShopAnalytics, error) {
	const op = "ShopService.Analytics"

	shop, err := s.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	totalJobs, err := s.vacancies.CountByShop(ctx, shop.ID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to count jobs", err)
	}
	totalViews, err := s.vacancies.SumViewsByShop(ctx, shop.ID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to sum views", err)
	}
	totalApplications, err := s.applications.CountByShop(ctx, shop.ID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to count applications", err)
	}

	breakdown := make([]StatusCount, 0, 3)
	for _, st := range []struct {
		label  string
		status models.ApplicationStatus
	}{
		{"Pending", models.StatusPending},
		{"Accepted", models.StatusAccepted},
		{"Rejected", models.StatusRejected},
	} {
		n, err := s.applications.CountByShopAndStatus(ctx, shop.ID, st.status)
		if err != nil {
			return nil, utils.E(utils.CodeInternal, op, "failed to count applications by status", err)
		}
		breakdown = append(breakdown, StatusCount{Name: st.label, Value: n})
	}

	perf, err := s.vacancies.TitleViewsByShop(ctx, shop.ID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load job performance", err)
	}

	return &ShopAnalytics{
		ShopVerified: shop.IsVerified,
		KPIs: AnalyticsKPIs{
			TotalJobs:         totalJobs,
			TotalViews:        totalViews,
			TotalApplications: totalApplications,
		},
		ApplicationsStatus: breakdown,
		JobsPerformance:    perf,
	}, nil
}
