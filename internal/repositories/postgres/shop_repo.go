package postgres

import (
	"context"
	"errors"

	"github.com/shoply/jobboard/internal/models"
	"github.com/shoply/jobboard/internal/utils"
	"gorm.io/gorm"
)

type ShopRepository interface {
	Create(ctx context.Context, s *models.ShopProfile) error
	GetByID(ctx context.Context, id uint) (*models.ShopProfile, error)
	GetByUserID(ctx context.Context, userID uint) (*models.ShopProfile, error)
	List(ctx context.Context) ([]models.ShopProfile, error)
	Save(ctx context.Context, s *models.ShopProfile) error
	Delete(ctx context.Context, id uint) error
}

type shopRepo struct {
	db *gorm.DB
}

func NewShopRepo(db *gorm.DB) ShopRepository {
	return &shopRepo{db: db}
}

func (r *shopRepo) Create(ctx context.Context, s *models.ShopProfile) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *shopRepo) GetByID(ctx context.Context, id uint) (*models.ShopProfile, error) {
	var s models.ShopProfile
	err := r.db.WithContext(ctx).Preload("User").Take(&s, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &s, err
}

func (r *shopRepo) GetByUserID(ctx context.Context, userID uint) (*models.ShopProfile, error) {
	var s models.ShopProfile
	err := r.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).Take(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &s, err
}

func (r *shopRepo) List(ctx context.Context) ([]models.ShopProfile, error) {
	var shops []models.ShopProfile
	err := r.db.WithContext(ctx).Preload("User").Order("id").Find(&shops).Error
	return shops, err
}

func (r *shopRepo) Save(ctx context.Context, s *models.ShopProfile) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *shopRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteShopCascade(tx, id)
	})
}

// deleteShopCascade removes a shop profile, its vacancies and everything
// under them. Callers supply the enclosing transaction.
func deleteShopCascade(tx *gorm.DB, shopID uint) error {
	var jobIDs []uint
	if err := tx.Model(&models.JobVacancy{}).Where("shop_id = ?", shopID).Pluck("id", &jobIDs).Error; err != nil {
		return err
	}
	if len(jobIDs) > 0 {
		if err := tx.Where("job_id IN ?", jobIDs).Delete(&models.JobApplication{}).Error; err != nil {
			return err
		}
		if err := tx.Where("job_id IN ?", jobIDs).Delete(&models.VacancyComment{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.JobVacancy{}, jobIDs).Error; err != nil {
			return err
		}
	}
	res := tx.Delete(&models.ShopProfile{}, shopID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}
