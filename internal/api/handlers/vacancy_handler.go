package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shoply/jobboard/internal/models"
	"github.com/shoply/jobboard/internal/services"
	"github.com/shoply/jobboard/internal/storage"
	"github.com/shoply/jobboard/internal/utils"
)

var csvHeader = []string{"Name", "Email", "Mobile Number", "Status", "Applied Date", "Meets Requirements", "Applicant Notes"}

type VacancyHandler struct {
	svc      services.VacancyService
	comments services.CommentService
	media    storage.Uploader
	raw      storage.Uploader
}

func NewVacancyHandler(svc services.VacancyService, comments services.CommentService, media, raw storage.Uploader) *VacancyHandler {
	return &VacancyHandler{svc: svc, comments: comments, media: media, raw: raw}
}

func (h *VacancyHandler) List(c *gin.Context) {
	jobs, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	all, err := h.comments.List(c.Request.Context(), nil)
	if err != nil {
		writeError(c, err)
		return
	}
	byJob := map[uint][]models.VacancyComment{}
	for _, cm := range all {
		byJob[cm.JobID] = append(byJob[cm.JobID], cm)
	}

	out := make([]VacancyDTO, 0, len(jobs))
	for i := range jobs {
		comments := byJob[jobs[i].ID]
		if comments == nil {
			comments = []models.VacancyComment{}
		}
		out = append(out, newVacancyDTO(c, &jobs[i], comments))
	}
	c.JSON(http.StatusOK, out)
}

// Retrieve handles GET /jobs/:id/ and registers exactly one view.
func (h *VacancyHandler) Retrieve(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	v, err := h.svc.Retrieve(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	comments, err := h.comments.ListByJob(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newVacancyDTO(c, v, comments))
}

type vacancyRequest struct {
	Title              *string         `json:"title"`
	JobType            *models.JobType `json:"job_type"`
	Description        *string         `json:"description"`
	SkillsRequired     *string         `json:"skills_required"`
	ExperienceRequired *string         `json:"experience_required"`
	EducationRequired  *string         `json:"education_required"`
	SalaryRange        *string         `json:"salary_range"`
	IsActive           *bool           `json:"is_active"`
}

func (h *VacancyHandler) bindVacancy(c *gin.Context, op string) (*vacancyRequest, *string, bool) {
	var req vacancyRequest
	var image *string

	if isMultipart(c) {
		if v, ok := c.GetPostForm("title"); ok {
			req.Title = &v
		}
		if v, ok := c.GetPostForm("job_type"); ok {
			jt := models.JobType(v)
			req.JobType = &jt
		}
		if v, ok := c.GetPostForm("description"); ok {
			req.Description = &v
		}
		if v, ok := c.GetPostForm("skills_required"); ok {
			req.SkillsRequired = &v
		}
		if v, ok := c.GetPostForm("experience_required"); ok {
			req.ExperienceRequired = &v
		}
		if v, ok := c.GetPostForm("education_required"); ok {
			req.EducationRequired = &v
		}
		if v, ok := c.GetPostForm("salary_range"); ok {
			req.SalaryRange = &v
		}
		if v, ok := c.GetPostForm("is_active"); ok {
			b, err := strconv.ParseBool(v)
			if err == nil {
				req.IsActive = &b
			}
		}
		if fh, err := c.FormFile("image"); err == nil {
			path, uerr := saveImage(c, fh, h.media, "job_images", "image")
			if uerr != nil {
				writeError(c, uerr)
				return nil, nil, false
			}
			image = &path
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid request body", err))
		return nil, nil, false
	}

	return &req, image, true
}

// Create handles POST /jobs/ for verified shop owners.
func (h *VacancyHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	req, image, ok := h.bindVacancy(c, "VacancyHandler.Create")
	if !ok {
		return
	}

	in := services.CreateVacancyInput{SalaryRange: req.SalaryRange}
	if req.Title != nil {
		in.Title = *req.Title
	}
	if req.JobType != nil {
		in.JobType = *req.JobType
	}
	if req.Description != nil {
		in.Description = *req.Description
	}
	if req.SkillsRequired != nil {
		in.SkillsRequired = *req.SkillsRequired
	}
	if req.ExperienceRequired != nil {
		in.ExperienceRequired = *req.ExperienceRequired
	}
	if req.EducationRequired != nil {
		in.EducationRequired = *req.EducationRequired
	}
	if image != nil {
		in.Image = *image
	}

	v, err := h.svc.Create(c.Request.Context(), userID, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newVacancyDTO(c, v, []models.VacancyComment{}))
}

func (h *VacancyHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	req, image, ok := h.bindVacancy(c, "VacancyHandler.Update")
	if !ok {
		return
	}

	in := services.UpdateVacancyInput{
		Title:              req.Title,
		JobType:            req.JobType,
		Description:        req.Description,
		SkillsRequired:     req.SkillsRequired,
		ExperienceRequired: req.ExperienceRequired,
		EducationRequired:  req.EducationRequired,
		SalaryRange:        req.SalaryRange,
		Image:              image,
		IsActive:           req.IsActive,
	}

	v, err := h.svc.Update(c.Request.Context(), id, userID, in)
	if err != nil {
		writeError(c, err)
		return
	}

	comments, err := h.comments.ListByJob(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newVacancyDTO(c, v, comments))
}

func (h *VacancyHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id, userID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Apply handles POST /jobs/:id/apply/ for job seekers. The payload is
// JSON or multipart; multipart may attach the CV.
func (h *VacancyHandler) Apply(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var in services.ApplyInput
	if isMultipart(c) {
		in.MeetsRequirements, _ = strconv.ParseBool(c.PostForm("meets_requirements"))
		in.ContactNumber = c.PostForm("contact_number")
		in.Notes = c.PostForm("notes")
		if fh, err := c.FormFile("cv"); err == nil {
			path, uerr := saveCV(c, fh, h.raw)
			if uerr != nil {
				writeError(c, uerr)
				return
			}
			in.CV = path
		}
	} else {
		var req struct {
			MeetsRequirements bool   `json:"meets_requirements"`
			ContactNumber     string `json:"contact_number"`
			Notes             string `json:"notes"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, utils.E(utils.CodeInvalidArgument, "VacancyHandler.Apply", "invalid request body", err))
			return
		}
		in.MeetsRequirements = req.MeetsRequirements
		in.ContactNumber = req.ContactNumber
		in.Notes = req.Notes
	}

	a, err := h.svc.Apply(c.Request.Context(), id, userID, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newApplicationDTO(c, a, true))
}

type bulkRejectRequest struct {
	OwnerNote string `json:"owner_note"`
}

// BulkRejectPending handles POST /jobs/:id/bulk_reject_pending/.
func (h *VacancyHandler) BulkRejectPending(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req bulkRejectRequest
	_ = c.ShouldBindJSON(&req)

	count, err := h.svc.BulkRejectPending(c.Request.Context(), id, userID, req.OwnerNote)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"detail": fmt.Sprintf("Successfully rejected %d applicants.", count),
		"count":  count,
	})
}

// ExportApplicantsCSV handles GET /jobs/:id/export_applicants_csv/.
func (h *VacancyHandler) ExportApplicantsCSV(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	job, apps, err := h.svc.Applicants(c.Request.Context(), id, userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="applicants_job_%d.csv"`, job.ID))
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	_ = w.Write(csvHeader)
	for _, a := range apps {
		meets := "No"
		if a.MeetsRequirements {
			meets = "Yes"
		}
		_ = w.Write([]string{
			a.Applicant.Username,
			a.Applicant.Email,
			a.Applicant.MobileNumber,
			string(a.Status),
			a.AppliedAt.Format("2006-01-02 15:04:05"),
			meets,
			a.Notes,
		})
	}
	w.Flush()
}

type commentRequest struct {
	Text   string `json:"text"`
	Parent *uint  `json:"parent"`
}

// Comment handles POST /jobs/:id/comment/.
func (h *VacancyHandler) Comment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "VacancyHandler.Comment", "invalid request body", err))
		return
	}

	cm, err := h.comments.Create(c.Request.Context(), id, userID, req.Text, req.Parent)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newCommentDTO(cm, nil))
}
