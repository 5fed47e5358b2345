package postgres

import (
	"context"
	"errors"

	"github.com/shoply/jobboard/internal/models"
	"github.com/shoply/jobboard/internal/utils"
	"gorm.io/gorm"
)

// TitleViews is one row of the per-job analytics breakdown.
type TitleViews struct {
	Title string `json:"title"`
	Views int64  `json:"views"`
}

type VacancyRepository interface {
	Create(ctx context.Context, v *models.JobVacancy) error
	GetByID(ctx context.Context, id uint) (*models.JobVacancy, error)
	List(ctx context.Context) ([]models.JobVacancy, error)
	Save(ctx context.Context, v *models.JobVacancy) error
	Delete(ctx context.Context, id uint) error
	IncrementViews(ctx context.Context, id uint) error

	CountByShop(ctx context.Context, shopID uint) (int64, error)
	SumViewsByShop(ctx context.Context, shopID uint) (int64, error)
	TitleViewsByShop(ctx context.Context, shopID uint) ([]TitleViews, error)
}

type vacancyRepo struct {
	db *gorm.DB
}

func NewVacancyRepo(db *gorm.DB) VacancyRepository {
	return &vacancyRepo{db: db}
}

func (r *vacancyRepo) Create(ctx context.Context, v *models.JobVacancy) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *vacancyRepo) GetByID(ctx context.Context, id uint) (*models.JobVacancy, error) {
	var v models.JobVacancy
	err := r.db.WithContext(ctx).Preload("Shop").Preload("Shop.User").Take(&v, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &v, err
}

func (r *vacancyRepo) List(ctx context.Context) ([]models.JobVacancy, error) {
	var jobs []models.JobVacancy
	err := r.db.WithContext(ctx).Preload("Shop").Preload("Shop.User").Order("id").Find(&jobs).Error
	return jobs, err
}

func (r *vacancyRepo) Save(ctx context.Context, v *models.JobVacancy) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *vacancyRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", id).Delete(&models.JobApplication{}).Error; err != nil {
			return err
		}
		if err := tx.Where("job_id = ?", id).Delete(&models.VacancyComment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.JobVacancy{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return utils.ErrNotFound
		}
		return nil
	})
}

// IncrementViews bumps the counter in SQL so concurrent retrievals each
// register exactly one view.
func (r *vacancyRepo) IncrementViews(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.JobVacancy{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

func (r *vacancyRepo) CountByShop(ctx context.Context, shopID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.JobVacancy{}).
		Where("shop_id = ?", shopID).
		Count(&count).Error
	return count, err
}

func (r *vacancyRepo) SumViewsByShop(ctx context.Context, shopID uint) (int64, error) {
	var sum *int64
	err := r.db.WithContext(ctx).
		Model(&models.JobVacancy{}).
		Where("shop_id = ?", shopID).
		Select("SUM(views)").
		Scan(&sum).Error
	if err != nil || sum == nil {
		return 0, err
	}
	return *sum, nil
}

func (r *vacancyRepo) TitleViewsByShop(ctx context.Context, shopID uint) ([]TitleViews, error) {
	rows := []TitleViews{}
	err := r.db.WithContext(ctx).
		Model(&models.JobVacancy{}).
		Where("shop_id = ?", shopID).
		Order("id").
		Select("title", "views").
		Scan(&rows).Error
	return rows, err
}
