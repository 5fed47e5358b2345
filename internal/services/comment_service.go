package services

import (
	"context"
	"errors"
	"strings"

	"github.com/shoply/jobboard/internal/models"
	pgrepo "github.com/shoply/jobboard/internal/repositories/postgres"
	"github.com/shoply/jobboard/internal/utils"
)

type CommentService interface {
	Create(ctx context.Context, jobID, userID uint, text string, parentID *uint) (*models.VacancyComment, error)
	Get(ctx context.Context, id uint) (*models.VacancyComment, error)
	List(ctx context.Context, jobID *uint) ([]models.VacancyComment, error)
	ListByJob(ctx context.Context, jobID uint) ([]models.VacancyComment, error)
	UpdateText(ctx context.Context, id, callerID uint, text string) (*models.VacancyComment, error)
	Delete(ctx context.Context, id uint, caller *models.User) error
}

type commentService struct {
	comments  pgrepo.CommentRepository
	vacancies pgrepo.VacancyRepository
	shops     pgrepo.ShopRepository
}

func NewCommentService(comments pgrepo.CommentRepository, vacancies pgrepo.VacancyRepository, shops pgrepo.ShopRepository) CommentService {
	return &commentService{comments: comments, vacancies: vacancies, shops: shops}
}

func (s *commentService) Create(ctx context.Context, jobID, userID uint, text string, parentID *uint) (*models.VacancyComment, error) {
	const op = "CommentService.Create"

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, utils.FieldErrors{"text": {"This field is required."}}
	}
	if _, err := s.vacancies.GetByID(ctx, jobID); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "vacancy not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load vacancy", err)
	}
	if parentID != nil {
		parent, err := s.comments.GetByID(ctx, *parentID)
		if err != nil {
			if errors.Is(err, utils.ErrNotFound) {
				return nil, utils.FieldErrors{"parent": {"Parent comment not found."}}
			}
			return nil, utils.E(utils.CodeInternal, op, "failed to load parent comment", err)
		}
		if parent.JobID != jobID {
			return nil, utils.FieldErrors{"parent": {"Parent comment belongs to a different job."}}
		}
	}

	c := &models.VacancyComment{
		JobID:    jobID,
		UserID:   userID,
		Text:     text,
		ParentID: parentID,
	}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create comment", err)
	}
	return s.Get(ctx, c.ID)
}

func (s *commentService) Get(ctx context.Context, id uint) (*models.VacancyComment, error) {
	const op = "CommentService.Get"

	c, err := s.comments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "comment not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get comment", err)
	}
	return c, nil
}

func (s *commentService) List(ctx context.Context, jobID *uint) ([]models.VacancyComment, error) {
	const op = "CommentService.List"

	var (
		comments []models.VacancyComment
		err      error
	)
	if jobID != nil {
		comments, err = s.comments.ListByJob(ctx, *jobID)
	} else {
		comments, err = s.comments.List(ctx)
	}
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list comments", err)
	}
	return comments, nil
}

func (s *commentService) ListByJob(ctx context.Context, jobID uint) ([]models.VacancyComment, error) {
	return s.List(ctx, &jobID)
}

func (s *commentService) UpdateText(ctx context.Context, id, callerID uint, text string) (*models.VacancyComment, error) {
	const op = "CommentService.UpdateText"

	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.UserID != callerID {
		return nil, utils.E(utils.CodeForbidden, op, "Not permitted.", nil)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, utils.FieldErrors{"text": {"This field is required."}}
	}

	c.Text = text
	if err := s.comments.Save(ctx, c); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to save comment", err)
	}
	return c, nil
}

// Delete is allowed for the comment author and for the shop owner whose
// job the comment sits under. Replies go with the comment.
func (s *commentService) Delete(ctx context.Context, id uint, caller *models.User) error {
	const op = "CommentService.Delete"

	c, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	allowed := c.UserID == caller.ID
	if !allowed && caller.Role == models.RoleShopOwner {
		shop, err := s.shops.GetByUserID(ctx, caller.ID)
		if err == nil {
			job, jerr := s.vacancies.GetByID(ctx, c.JobID)
			if jerr == nil && job.ShopID == shop.ID {
				allowed = true
			}
		} else if !errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeInternal, op, "failed to load shop", err)
		}
	}
	if !allowed {
		return utils.E(utils.CodeForbidden, op, "Not permitted to delete this comment.", nil)
	}

	if err := s.comments.DeleteTree(ctx, id); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to delete comment", err)
	}
	return nil
}
