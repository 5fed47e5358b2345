package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shoply/jobboard/internal/models"
	"github.com/shoply/jobboard/internal/services"
	"github.com/shoply/jobboard/internal/utils"
)

type ApplicationHandler struct {
	svc   services.ApplicationService
	users services.UserService
}

func NewApplicationHandler(svc services.ApplicationService, users services.UserService) *ApplicationHandler {
	return &ApplicationHandler{svc: svc, users: users}
}

// List handles GET /applications/: the caller's own applications for job
// seekers, applications to the caller's jobs for shop owners.
func (h *ApplicationHandler) List(c *gin.Context) {
	caller, ok := loadCaller(c, h.users)
	if !ok {
		return
	}

	apps, err := h.svc.VisibleTo(c.Request.Context(), caller)
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]ApplicationDTO, 0, len(apps))
	for i := range apps {
		out = append(out, newApplicationDTO(c, &apps[i], true))
	}
	c.JSON(http.StatusOK, out)
}

func (h *ApplicationHandler) Retrieve(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	caller, ok := loadCaller(c, h.users)
	if !ok {
		return
	}

	a, err := h.svc.Get(c.Request.Context(), id, caller)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newApplicationDTO(c, a, true))
}

// Create rejects direct creation; applications only come in through the
// job apply action.
func (h *ApplicationHandler) Create(c *gin.Context) {
	writeError(c, utils.E(utils.CodeInvalidArgument, "ApplicationHandler.Create", "Use the job apply action to create applications.", nil))
}

type updateApplicationRequest struct {
	ContactNumber *string                   `json:"contact_number"`
	Notes         *string                   `json:"notes"`
	OwnerNote     *string                   `json:"owner_note"`
	Status        *models.ApplicationStatus `json:"status"`
}

func (h *ApplicationHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	caller, ok := loadCaller(c, h.users)
	if !ok {
		return
	}

	var req updateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ApplicationHandler.Update", "invalid request body", err))
		return
	}

	a, err := h.svc.Update(c.Request.Context(), id, caller, services.UpdateApplicationInput{
		ContactNumber: req.ContactNumber,
		Notes:         req.Notes,
		OwnerNote:     req.OwnerNote,
		Status:        req.Status,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newApplicationDTO(c, a, true))
}

func (h *ApplicationHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	caller, ok := loadCaller(c, h.users)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id, caller); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
