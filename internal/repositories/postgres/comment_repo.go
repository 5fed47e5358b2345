package postgres

import (
	"context"
	"errors"

	"github.com/shoply/jobboard/internal/models"
	"github.com/shoply/jobboard/internal/utils"
	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(ctx context.Context, c *models.VacancyComment) error
	GetByID(ctx context.Context, id uint) (*models.VacancyComment, error)
	ListByJob(ctx context.Context, jobID uint) ([]models.VacancyComment, error)
	List(ctx context.Context) ([]models.VacancyComment, error)
	Save(ctx context.Context, c *models.VacancyComment) error
	DeleteTree(ctx context.Context, id uint) error
}

type commentRepo struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) CommentRepository {
	return &commentRepo{db: db}
}

func (r *commentRepo) Create(ctx context.Context, c *models.VacancyComment) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *commentRepo) GetByID(ctx context.Context, id uint) (*models.VacancyComment, error) {
	var c models.VacancyComment
	err := r.db.WithContext(ctx).Preload("User").Take(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &c, err
}

func (r *commentRepo) ListByJob(ctx context.Context, jobID uint) ([]models.VacancyComment, error) {
	var comments []models.VacancyComment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("job_id = ?", jobID).
		Order("id").
		Find(&comments).Error
	return comments, err
}

func (r *commentRepo) List(ctx context.Context) ([]models.VacancyComment, error) {
	var comments []models.VacancyComment
	err := r.db.WithContext(ctx).Preload("User").Order("id").Find(&comments).Error
	return comments, err
}

func (r *commentRepo) Save(ctx context.Context, c *models.VacancyComment) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// DeleteTree removes the comment and every descendant reply. Descendants
// are collected level by level rather than with a recursive SQL query so
// the walk stays portable across Postgres and SQLite.
func (r *commentRepo) DeleteTree(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		doomed := []uint{id}
		frontier := []uint{id}
		for len(frontier) > 0 {
			var children []uint
			if err := tx.Model(&models.VacancyComment{}).
				Where("parent_id IN ?", frontier).
				Pluck("id", &children).Error; err != nil {
				return err
			}
			doomed = append(doomed, children...)
			frontier = children
		}

		res := tx.Delete(&models.VacancyComment{}, doomed)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return utils.ErrNotFound
		}
		return nil
	})
}
