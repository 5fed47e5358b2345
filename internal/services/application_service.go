package services

import (
	"context"
	"errors"

	"github.com/shoply/jobboard/internal/models"
	pgrepo "github.com/shoply/jobboard/internal/repositories/postgres"
	"github.com/shoply/jobboard/internal/utils"
)

// UpdateApplicationInput is a partial update. Applicants adjust their own
// notes/contact details; shop owners move status and leave owner notes.
type UpdateApplicationInput struct {
	ContactNumber *string
	Notes         *string
	OwnerNote     *string
	Status        *models.ApplicationStatus
}

type ApplicationService interface {
	VisibleTo(ctx context.Context, caller *models.User) ([]models.JobApplication, error)
	Get(ctx context.Context, id uint, caller *models.User) (*models.JobApplication, error)
	Update(ctx context.Context, id uint, caller *models.User, in UpdateApplicationInput) (*models.JobApplication, error)
	Delete(ctx context.Context, id uint, caller *models.User) error
}

type applicationService struct {
	applications pgrepo.ApplicationRepository
	shops        pgrepo.ShopRepository
}

func NewApplicationService(applications pgrepo.ApplicationRepository, shops pgrepo.ShopRepository) ApplicationService {
	return &applicationService{applications: applications, shops: shops}
}

// VisibleTo scopes the collection by role: job seekers see their own
// applications, shop owners see applications to their jobs.
func (s *applicationService) VisibleTo(ctx context.Context, caller *models.User) ([]models.JobApplication, error) {
	const op = "ApplicationService.VisibleTo"

	switch caller.Role {
	case models.RoleShopOwner:
		shop, err := s.shops.GetByUserID(ctx, caller.ID)
		if err != nil {
			if errors.Is(err, utils.ErrNotFound) {
				return []models.JobApplication{}, nil
			}
			return nil, utils.E(utils.CodeInternal, op, "failed to load shop", err)
		}
		apps, err := s.applications.ListByShop(ctx, shop.ID)
		if err != nil {
			return nil, utils.E(utils.CodeInternal, op, "failed to list applications", err)
		}
		return apps, nil
	case models.RoleJobSeeker:
		apps, err := s.applications.ListByApplicant(ctx, caller.ID)
		if err != nil {
			return nil, utils.E(utils.CodeInternal, op, "failed to list applications", err)
		}
		return apps, nil
	}
	return []models.JobApplication{}, nil
}

func (s *applicationService) Get(ctx context.Context, id uint, caller *models.User) (*models.JobApplication, error) {
	const op = "ApplicationService.Get"

	a, err := s.applications.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "application not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get application", err)
	}

	visible, err := s.isVisible(ctx, a, caller)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to check visibility", err)
	}
	if !visible {
		// hidden records read as absent
		return nil, utils.E(utils.CodeNotFound, op, "application not found", nil)
	}
	return a, nil
}

func (s *applicationService) Update(ctx context.Context, id uint, caller *models.User, in UpdateApplicationInput) (*models.JobApplication, error) {
	const op = "ApplicationService.Update"

	a, err := s.Get(ctx, id, caller)
	if err != nil {
		return nil, err
	}

	if in.ContactNumber != nil {
		a.ContactNumber = *in.ContactNumber
	}
	if in.Notes != nil {
		a.Notes = *in.Notes
	}
	if in.OwnerNote != nil {
		a.OwnerNote = *in.OwnerNote
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, utils.FieldErrors{"status": {"Invalid status."}}
		}
		a.Status = *in.Status
	}

	if err := s.applications.Save(ctx, a); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to save application", err)
	}
	return a, nil
}

func (s *applicationService) Delete(ctx context.Context, id uint, caller *models.User) error {
	const op = "ApplicationService.Delete"

	if _, err := s.Get(ctx, id, caller); err != nil {
		return err
	}
	if err := s.applications.Delete(ctx, id); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to delete application", err)
	}
	return nil
}

func (s *applicationService) isVisible(ctx context.Context, a *models.JobApplication, caller *models.User) (bool, error) {
	if caller.Role == models.RoleShopOwner {
		shop, err := s.shops.GetByUserID(ctx, caller.ID)
		if err != nil {
			if errors.Is(err, utils.ErrNotFound) {
				return false, nil
			}
			return false, err
		}
		return a.Job.ShopID == shop.ID, nil
	}
	return a.ApplicantID == caller.ID, nil
}
