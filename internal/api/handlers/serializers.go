package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shoply/jobboard/internal/models"
)

// maxCommentDepth bounds reply expansion so a pathological parent chain
// cannot blow the stack.
const maxCommentDepth = 32

type UserDTO struct {
	ID           uint            `json:"id"`
	Username     string          `json:"username"`
	Email        string          `json:"email"`
	Role         models.UserRole `json:"role"`
	MobileNumber string          `json:"mobile_number"`
	ProfilePhoto *string         `json:"profile_photo"`
	CreatedAt    time.Time       `json:"created_at"`
}

func newUserDTO(c *gin.Context, u *models.User) UserDTO {
	return UserDTO{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		Role:         u.Role,
		MobileNumber: u.MobileNumber,
		ProfilePhoto: absoluteURL(c, u.ProfilePhoto),
		CreatedAt:    u.CreatedAt,
	}
}

type ShopDTO struct {
	ID          uint      `json:"id"`
	User        UserDTO   `json:"user"`
	CompanyName string    `json:"company_name"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
	Logo        *string   `json:"logo"`
	IsVerified  bool      `json:"is_verified"`
	CreatedAt   time.Time `json:"created_at"`
}

func newShopDTO(c *gin.Context, s *models.ShopProfile) ShopDTO {
	return ShopDTO{
		ID:          s.ID,
		User:        newUserDTO(c, &s.User),
		CompanyName: s.CompanyName,
		Description: s.Description,
		Location:    s.Location,
		Latitude:    s.Latitude,
		Longitude:   s.Longitude,
		Logo:        absoluteURL(c, s.Logo),
		IsVerified:  s.IsVerified,
		CreatedAt:   s.CreatedAt,
	}
}

type CommentDTO struct {
	ID        uint         `json:"id"`
	Job       uint         `json:"job"`
	User      string       `json:"user"`
	Text      string       `json:"text"`
	Parent    *uint        `json:"parent"`
	CreatedAt time.Time    `json:"created_at"`
	Replies   []CommentDTO `json:"replies"`
}

func newCommentDTO(cm *models.VacancyComment, replies []CommentDTO) CommentDTO {
	if replies == nil {
		replies = []CommentDTO{}
	}
	return CommentDTO{
		ID:        cm.ID,
		Job:       cm.JobID,
		User:      cm.User.Username,
		Text:      cm.Text,
		Parent:    cm.ParentID,
		CreatedAt: cm.CreatedAt,
		Replies:   replies,
	}
}

// buildCommentTree expands top-level comments with their full reply
// subtree. The comments slice comes back from the repository in creation
// order, which keeps sibling order stable.
func buildCommentTree(comments []models.VacancyComment) []CommentDTO {
	children := map[uint][]*models.VacancyComment{}
	var roots []*models.VacancyComment
	for i := range comments {
		cm := &comments[i]
		if cm.ParentID == nil {
			roots = append(roots, cm)
		} else {
			children[*cm.ParentID] = append(children[*cm.ParentID], cm)
		}
	}

	var expand func(cm *models.VacancyComment, depth int) CommentDTO
	expand = func(cm *models.VacancyComment, depth int) CommentDTO {
		replies := []CommentDTO{}
		if depth < maxCommentDepth {
			for _, child := range children[cm.ID] {
				replies = append(replies, expand(child, depth+1))
			}
		}
		return newCommentDTO(cm, replies)
	}

	out := []CommentDTO{}
	for _, root := range roots {
		out = append(out, expand(root, 0))
	}
	return out
}

type VacancyDTO struct {
	ID                 uint           `json:"id"`
	Shop               ShopDTO        `json:"shop"`
	Title              string         `json:"title"`
	JobType            models.JobType `json:"job_type"`
	Description        string         `json:"description"`
	SkillsRequired     string         `json:"skills_required"`
	ExperienceRequired string         `json:"experience_required"`
	EducationRequired  string         `json:"education_required"`
	SalaryRange        *string        `json:"salary_range"`
	Image              *string        `json:"image"`
	IsActive           bool           `json:"is_active"`
	Views              int64          `json:"views"`
	CreatedAt          time.Time      `json:"created_at"`
	Comments           []CommentDTO   `json:"comments,omitempty"`
}

func newVacancyDTO(c *gin.Context, v *models.JobVacancy, comments []models.VacancyComment) VacancyDTO {
	dto := VacancyDTO{
		ID:                 v.ID,
		Shop:               newShopDTO(c, &v.Shop),
		Title:              v.Title,
		JobType:            v.JobType,
		Description:        v.Description,
		SkillsRequired:     v.SkillsRequired,
		ExperienceRequired: v.ExperienceRequired,
		EducationRequired:  v.EducationRequired,
		SalaryRange:        v.SalaryRange,
		Image:              absoluteURL(c, v.Image),
		IsActive:           v.IsActive,
		Views:              v.Views,
		CreatedAt:          v.CreatedAt,
	}
	if comments != nil {
		dto.Comments = buildCommentTree(comments)
	}
	return dto
}

type ApplicationDTO struct {
	ID                uint                     `json:"id"`
	Job               uint                     `json:"job"`
	JobDetails        *VacancyDTO              `json:"job_details,omitempty"`
	Applicant         UserDTO                  `json:"applicant"`
	MeetsRequirements bool                     `json:"meets_requirements"`
	ContactNumber     string                   `json:"contact_number"`
	CV                *string                  `json:"cv"`
	Notes             string                   `json:"notes"`
	OwnerNote         string                   `json:"owner_note"`
	Status            models.ApplicationStatus `json:"status"`
	AppliedAt         time.Time                `json:"applied_at"`
}

func newApplicationDTO(c *gin.Context, a *models.JobApplication, withJob bool) ApplicationDTO {
	dto := ApplicationDTO{
		ID:                a.ID,
		Job:               a.JobID,
		Applicant:         newUserDTO(c, &a.Applicant),
		MeetsRequirements: a.MeetsRequirements,
		ContactNumber:     a.ContactNumber,
		CV:                absoluteURL(c, a.CV),
		Notes:             a.Notes,
		OwnerNote:         a.OwnerNote,
		Status:            a.Status,
		AppliedAt:         a.AppliedAt,
	}
	if withJob {
		jd := newVacancyDTO(c, &a.Job, nil)
		dto.JobDetails = &jd
	}
	return dto
}
