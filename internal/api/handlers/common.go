package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shoply/jobboard/internal/models"
	"github.com/shoply/jobboard/internal/services"
	"github.com/shoply/jobboard/internal/utils"
)

// writeError renders any service error: validation failures as a field ->
// messages map, everything else as a {"detail": ...} body with the status
// derived from the error code.
func writeError(c *gin.Context, err error) {
	status := utils.HTTPStatus(err)

	var fe utils.FieldErrors
	if errors.As(err, &fe) {
		c.JSON(status, gin.H{"errors": fe})
		return
	}

	var ae *utils.AppError
	if errors.As(err, &ae) {
		c.JSON(status, gin.H{"detail": ae.Message})
		return
	}

	c.JSON(status, gin.H{"detail": http.StatusText(status)})
}

func requireUserID(c *gin.Context) (uint, bool) {
	if v, ok := c.Get("user_id"); ok {
		if id, ok := v.(uint); ok && id != 0 {
			return id, true
		}
	}

	writeError(c, utils.E(utils.CodeUnauthorized, "Auth", "Authentication credentials were not provided.", nil))
	return 0, false
}

// loadCaller resolves the authenticated user record behind the token.
func loadCaller(c *gin.Context, users services.UserService) (*models.User, bool) {
	id, ok := requireUserID(c)
	if !ok {
		return nil, false
	}
	u, err := users.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, utils.E(utils.CodeUnauthorized, "Auth", "Given token not valid for any token type.", err))
		return nil, false
	}
	return u, true
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		writeError(c, utils.E(utils.CodeNotFound, "Params", "Not found.", err))
		return 0, false
	}
	return uint(id), true
}

// absoluteURL turns a stored object path into something a client can
// fetch. Paths coming back from GCS are already absolute; local paths are
// qualified with the scheme and host of the incoming request.
func absoluteURL(c *gin.Context, path string) *string {
	if path == "" {
		return nil
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return &path
	}

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if v := c.GetHeader("X-Forwarded-Proto"); v != "" {
		scheme = v
	}
	u := scheme + "://" + c.Request.Host + path
	return &u
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}
