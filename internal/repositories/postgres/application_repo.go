package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/shoply/jobboard/internal/models"
	"github.com/shoply/jobboard/internal/utils"
	"gorm.io/gorm"
)

// ErrDuplicateApplication is returned when the (job, applicant) unique
// index rejects an insert.
var ErrDuplicateApplication = errors.New("duplicate application")

type ApplicationRepository interface {
	Create(ctx context.Context, a *models.JobApplication) error
	GetByID(ctx context.Context, id uint) (*models.JobApplication, error)
	Exists(ctx context.Context, jobID, applicantID uint) (bool, error)
	ListByJob(ctx context.Context, jobID uint) ([]models.JobApplication, error)
	ListByApplicant(ctx context.Context, applicantID uint) ([]models.JobApplication, error)
	ListByShop(ctx context.Context, shopID uint) ([]models.JobApplication, error)
	Save(ctx context.Context, a *models.JobApplication) error
	Delete(ctx context.Context, id uint) error

	BulkReject(ctx context.Context, jobID uint, ownerNote string) (int64, error)
	CountByShop(ctx context.Context, shopID uint) (int64, error)
	CountByShopAndStatus(ctx context.Context, shopID uint, status models.ApplicationStatus) (int64, error)
}

type applicationRepo struct {
	db *gorm.DB
}

func NewApplicationRepo(db *gorm.DB) ApplicationRepository {
	return &applicationRepo{db: db}
}

func (r *applicationRepo) Create(ctx context.Context, a *models.JobApplication) error {
	err := r.db.WithContext(ctx).Create(a).Error
	if err != nil && isUniqueViolation(err) {
		return ErrDuplicateApplication
	}
	return err
}

// isUniqueViolation matches both the Postgres and SQLite flavors of a
// unique-constraint failure.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}

func (r *applicationRepo) GetByID(ctx context.Context, id uint) (*models.JobApplication, error) {
	var a models.JobApplication
	err := r.db.WithContext(ctx).
		Preload("Applicant").
		Preload("Job").Preload("Job.Shop").Preload("Job.Shop.User").
		Take(&a, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &a, err
}

func (r *applicationRepo) Exists(ctx context.Context, jobID, applicantID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.JobApplication{}).
		Where("job_id = ? AND applicant_id = ?", jobID, applicantID).
		Count(&count).Error
	return count > 0, err
}

func (r *applicationRepo) ListByJob(ctx context.Context, jobID uint) ([]models.JobApplication, error) {
	var apps []models.JobApplication
	err := r.db.WithContext(ctx).
		Preload("Applicant").
		Where("job_id = ?", jobID).
		Order("id").
		Find(&apps).Error
	return apps, err
}

func (r *applicationRepo) ListByApplicant(ctx context.Context, applicantID uint) ([]models.JobApplication, error) {
	var apps []models.JobApplication
	err := r.db.WithContext(ctx).
		Preload("Applicant").
		Preload("Job").Preload("Job.Shop").Preload("Job.Shop.User").
		Where("applicant_id = ?", applicantID).
		Order("id").
		Find(&apps).Error
	return apps, err
}

func (r *applicationRepo) ListByShop(ctx context.Context, shopID uint) ([]models.JobApplication, error) {
	var apps []models.JobApplication
	err := r.db.WithContext(ctx).
		Preload("Applicant").
		Preload("Job").Preload("Job.Shop").Preload("Job.Shop.User").
		Joins("JOIN job_vacancies ON job_vacancies.id = job_applications.job_id").
		Where("job_vacancies.shop_id = ?", shopID).
		Order("job_applications.id").
		Find(&apps).Error
	return apps, err
}

func (r *applicationRepo) Save(ctx context.Context, a *models.JobApplication) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *applicationRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.JobApplication{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}

// BulkReject moves every PENDING or SHORTLISTED application for the job to
// REJECTED in a single UPDATE, stamping the owner note on each.
func (r *applicationRepo) BulkReject(ctx context.Context, jobID uint, ownerNote string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.JobApplication{}).
		Where("job_id = ? AND status IN ?", jobID, []models.ApplicationStatus{models.StatusPending, models.StatusShortlisted}).
		Updates(map[string]any{"status": models.StatusRejected, "owner_note": ownerNote})
	return res.RowsAffected, res.Error
}

func (r *applicationRepo) CountByShop(ctx context.Context, shopID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.JobApplication{}).
		Joins("JOIN job_vacancies ON job_vacancies.id = job_applications.job_id").
		Where("job_vacancies.shop_id = ?", shopID).
		Count(&count).Error
	return count, err
}

func (r *applicationRepo) CountByShopAndStatus(ctx context.Context, shopID uint, status models.ApplicationStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.JobApplication{}).
		Joins("JOIN job_vacancies ON job_vacancies.id = job_applications.job_id").
		Where("job_vacancies.shop_id = ? AND job_applications.status = ?", shopID, status).
		Count(&count).Error
	return count, err
}
