package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shoply/jobboard/internal/services"
	"github.com/shoply/jobboard/internal/utils"
)

type AuthHandler struct {
	svc services.AuthService
}

func NewAuthHandler(svc services.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type obtainPairRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ObtainPair handles POST /token/.
func (h *AuthHandler) ObtainPair(c *gin.Context) {
	var req obtainPairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "AuthHandler.ObtainPair", "invalid request body", err))
		return
	}

	pair, err := h.svc.IssuePair(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, pair)
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

// Refresh handles POST /token/refresh/.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Refresh == "" {
		writeError(c, utils.E(utils.CodeInvalidArgument, "AuthHandler.Refresh", "invalid request body", err))
		return
	}

	pair, err := h.svc.Refresh(c.Request.Context(), req.Refresh)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, pair)
}
