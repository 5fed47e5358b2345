package services

import (
	"context"
	"errors"

	"github.com/shoply/jobboard/internal/models"
	pgrepo "github.com/shoply/jobboard/internal/repositories/postgres"
	"github.com/shoply/jobboard/internal/utils"
)

type CreateVacancyInput struct {
	Title              string
	JobType            models.JobType
	Description        string
	SkillsRequired     string
	ExperienceRequired string
	EducationRequired  string
	SalaryRange        *string
	Image              string
}

type UpdateVacancyInput struct {
	Title              *string
	JobType            *models.JobType
	Description        *string
	SkillsRequired     *string
	ExperienceRequired *string
	EducationRequired  *string
	SalaryRange        *string
	Image              *string
	IsActive           *bool
}

type ApplyInput struct {
	MeetsRequirements bool
	ContactNumber     string
	CV                string
	Notes             string
}

type VacancyService interface {
	Create(ctx context.Context, ownerID uint, in CreateVacancyInput) (*models.JobVacancy, error)
	Get(ctx context.Context, id uint) (*models.JobVacancy, error)
	Retrieve(ctx context.Context, id uint) (*models.JobVacancy, error)
	List(ctx context.Context) ([]models.JobVacancy, error)
	Update(ctx context.Context, id, callerID uint, in UpdateVacancyInput) (*models.JobVacancy, error)
	Delete(ctx context.Context, id, callerID uint) error

	Apply(ctx context.Context, jobID, applicantID uint, in ApplyInput) (*models.JobApplication, error)
	BulkRejectPending(ctx context.Context, jobID, callerID uint, ownerNote string) (int64, error)
	Applicants(ctx context.Context, jobID, callerID uint) (*models.JobVacancy, []models.JobApplication, error)
}

type vacancyService struct {
	vacancies    pgrepo.VacancyRepository
	shops        pgrepo.ShopRepository
	applications pgrepo.ApplicationRepository
}

func NewVacancyService(vacancies pgrepo.VacancyRepository, shops pgrepo.ShopRepository, applications pgrepo.ApplicationRepository) VacancyService {
	return &vacancyService{vacancies: vacancies, shops: shops, applications: applications}
}

// requireVerifiedShop loads the caller's shop and rejects callers without
// a verified one. Role is already gated by middleware.
func (s *vacancyService) requireVerifiedShop(ctx context.Context, callerID uint, op string) (*models.ShopProfile, error) {
	shop, err := s.shops.GetByUserID(ctx, callerID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeForbidden, op, "You do not have permission to perform this action.", nil)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load shop", err)
	}
	if !shop.IsVerified {
		return nil, utils.E(utils.CodeForbidden, op, "You do not have permission to perform this action.", nil)
	}
	return shop, nil
}

func (s *vacancyService) Create(ctx context.Context, ownerID uint, in CreateVacancyInput) (*models.JobVacancy, error) {
	const op = "VacancyService.Create"

	shop, err := s.requireVerifiedShop(ctx, ownerID, op)
	if err != nil {
		return nil, err
	}

	fe := utils.FieldErrors{}
	if in.Title == "" {
		fe.Add("title", "This field is required.")
	}
	if in.Description == "" {
		fe.Add("description", "This field is required.")
	}
	if in.JobType == "" {
		in.JobType = models.JobFullTime
	}
	if !in.JobType.Valid() {
		fe.Add("job_type", "Invalid job type.")
	}
	if len(fe) > 0 {
		return nil, fe
	}

	v := &models.JobVacancy{
		ShopID:             shop.ID,
		Title:              in.Title,
		JobType:            in.JobType,
		Description:        in.Description,
		SkillsRequired:     in.SkillsRequired,
		ExperienceRequired: in.ExperienceRequired,
		EducationRequired:  in.EducationRequired,
		SalaryRange:        in.SalaryRange,
		Image:              in.Image,
		IsActive:           true,
	}
	if err := s.vacancies.Create(ctx, v); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create vacancy", err)
	}
	return s.Get(ctx, v.ID)
}

func (s *vacancyService) Get(ctx context.Context, id uint) (*models.JobVacancy, error) {
	const op = "VacancyService.Get"

	v, err := s.vacancies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "vacancy not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get vacancy", err)
	}
	return v, nil
}

// Retrieve is the read path for a single vacancy: it registers exactly one
// view before returning the record.
func (s *vacancyService) Retrieve(ctx context.Context, id uint) (*models.JobVacancy, error) {
	const op = "VacancyService.Retrieve"

	v, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.vacancies.IncrementViews(ctx, id); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to increment views", err)
	}
	v.Views++
	return v, nil
}

func (s *vacancyService) List(ctx context.Context) ([]models.JobVacancy, error) {
	const op = "VacancyService.List"

	jobs, err := s.vacancies.List(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list vacancies", err)
	}
	return jobs, nil
}

func (s *vacancyService) Update(ctx context.Context, id, callerID uint, in UpdateVacancyInput) (*models.JobVacancy, error) {
	const op = "VacancyService.Update"

	if _, err := s.requireVerifiedShop(ctx, callerID, op); err != nil {
		return nil, err
	}

	v, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		v.Title = *in.Title
	}
	if in.JobType != nil {
		if !in.JobType.Valid() {
			return nil, utils.FieldErrors{"job_type": {"Invalid job type."}}
		}
		v.JobType = *in.JobType
	}
	if in.Description != nil {
		v.Description = *in.Description
	}
	if in.SkillsRequired != nil {
		v.SkillsRequired = *in.SkillsRequired
	}
	if in.ExperienceRequired != nil {
		v.ExperienceRequired = *in.ExperienceRequired
	}
	if in.EducationRequired != nil {
		v.EducationRequired = *in.EducationRequired
	}
	if in.SalaryRange != nil {
		v.SalaryRange = in.SalaryRange
	}
	if in.Image != nil {
		v.Image = *in.Image
	}
	if in.IsActive != nil {
		v.IsActive = *in.IsActive
	}

	if err := s.vacancies.Save(ctx, v); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to save vacancy", err)
	}
	return v, nil
}

func (s *vacancyService) Delete(ctx context.Context, id, callerID uint) error {
	const op = "VacancyService.Delete"

	if _, err := s.requireVerifiedShop(ctx, callerID, op); err != nil {
		return err
	}

	if err := s.vacancies.Delete(ctx, id); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "vacancy not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to delete vacancy", err)
	}
	return nil
}

// Apply files an application for the caller. Duplicate submissions are
// rejected both by the pre-check and, under a race, by the unique index.
func (s *vacancyService) Apply(ctx context.Context, jobID, applicantID uint, in ApplyInput) (*models.JobApplication, error) {
	const op = "VacancyService.Apply"

	if _, err := s.Get(ctx, jobID); err != nil {
		return nil, err
	}

	exists, err := s.applications.Exists(ctx, jobID, applicantID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to check existing application", err)
	}
	if exists {
		return nil, utils.E(utils.CodeInvalidArgument, op, "You have already applied.", nil)
	}

	if !in.MeetsRequirements {
		return nil, utils.E(utils.CodeInvalidArgument, op, "You must declare that you meet the requirements.", nil)
	}

	a := &models.JobApplication{
		JobID:             jobID,
		ApplicantID:       applicantID,
		MeetsRequirements: true,
		ContactNumber:     in.ContactNumber,
		CV:                in.CV,
		Notes:             in.Notes,
		Status:            models.StatusPending,
	}
	if err := s.applications.Create(ctx, a); err != nil {
		if errors.Is(err, pgrepo.ErrDuplicateApplication) {
			return nil, utils.E(utils.CodeInvalidArgument, op, "You have already applied.", nil)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to create application", err)
	}
	return s.applicationByID(ctx, a.ID)
}

func (s *vacancyService) applicationByID(ctx context.Context, id uint) (*models.JobApplication, error) {
	const op = "VacancyService.applicationByID"

	a, err := s.applications.GetByID(ctx, id)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to reload application", err)
	}
	return a, nil
}

func (s *vacancyService) BulkRejectPending(ctx context.Context, jobID, callerID uint, ownerNote string) (int64, error) {
	const op = "VacancyService.BulkRejectPending"

	v, err := s.Get(ctx, jobID)
	if err != nil {
		return 0, err
	}
	if err := s.requireOwnership(ctx, v, callerID, op); err != nil {
		return 0, err
	}

	count, err := s.applications.BulkReject(ctx, jobID, ownerNote)
	if err != nil {
		return 0, utils.E(utils.CodeInternal, op, "failed to reject applications", err)
	}
	return count, nil
}

func (s *vacancyService) Applicants(ctx context.Context, jobID, callerID uint) (*models.JobVacancy, []models.JobApplication, error) {
	const op = "VacancyService.Applicants"

	v, err := s.Get(ctx, jobID)
	if err != nil {
		return nil, nil, err
	}
	if err := s.requireOwnership(ctx, v, callerID, op); err != nil {
		return nil, nil, err
	}

	apps, err := s.applications.ListByJob(ctx, jobID)
	if err != nil {
		return nil, nil, utils.E(utils.CodeInternal, op, "failed to list applications", err)
	}
	return v, apps, nil
}

func (s *vacancyService) requireOwnership(ctx context.Context, v *models.JobVacancy, callerID uint, op string) error {
	shop, err := s.requireVerifiedShop(ctx, callerID, op)
	if err != nil {
		return err
	}
	if shop.ID != v.ShopID {
		return utils.E(utils.CodeForbidden, op, "Not permitted.", nil)
	}
	return nil
}
