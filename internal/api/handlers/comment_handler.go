package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shoply/jobboard/internal/services"
	"github.com/shoply/jobboard/internal/utils"
)

type CommentHandler struct {
	svc   services.CommentService
	users services.UserService
}

func NewCommentHandler(svc services.CommentService, users services.UserService) *CommentHandler {
	return &CommentHandler{svc: svc, users: users}
}

// List handles GET /comments/, optionally filtered with ?job=<id>. Each
// top-level comment carries its reply subtree.
func (h *CommentHandler) List(c *gin.Context) {
	var jobID *uint
	if v := c.Query("job"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			writeError(c, utils.E(utils.CodeInvalidArgument, "CommentHandler.List", "invalid job filter", err))
			return
		}
		u := uint(id)
		jobID = &u
	}

	comments, err := h.svc.List(c.Request.Context(), jobID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildCommentTree(comments))
}

func (h *CommentHandler) Retrieve(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	cm, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCommentDTO(cm, nil))
}

type createCommentRequest struct {
	Job    uint   `json:"job"`
	Text   string `json:"text"`
	Parent *uint  `json:"parent"`
}

func (h *CommentHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "CommentHandler.Create", "invalid request body", err))
		return
	}
	if req.Job == 0 {
		writeError(c, utils.FieldErrors{"job": {"This field is required."}})
		return
	}

	cm, err := h.svc.Create(c.Request.Context(), req.Job, userID, req.Text, req.Parent)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newCommentDTO(cm, nil))
}

type updateCommentRequest struct {
	Text string `json:"text"`
}

func (h *CommentHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req updateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "CommentHandler.Update", "invalid request body", err))
		return
	}

	cm, err := h.svc.UpdateText(c.Request.Context(), id, userID, req.Text)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCommentDTO(cm, nil))
}

// Delete removes a comment and its reply subtree. Allowed for the author
// or the owner of the job's shop.
func (h *CommentHandler) Delete(c *gin.Context) {
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
