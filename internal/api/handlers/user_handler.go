package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shoply/jobboard/internal/models"
	"github.com/shoply/jobboard/internal/services"
	"github.com/shoply/jobboard/internal/storage"
	"github.com/shoply/jobboard/internal/utils"
)

type UserHandler struct {
	svc   services.UserService
	media storage.Uploader
}

func NewUserHandler(svc services.UserService, media storage.Uploader) *UserHandler {
	return &UserHandler{svc: svc, media: media}
}

type registerRequest struct {
	Username     string          `json:"username"`
	Email        string          `json:"email"`
	Password     string          `json:"password"`
	Role         models.UserRole `json:"role"`
	MobileNumber string          `json:"mobile_number"`

	CompanyName string   `json:"company_name"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

// Register handles POST /users/: the flat registration payload, JSON or
// multipart (the latter carrying profile_photo and logo files). Shop
// owners submitting company_name, description and location get their shop
// profile created in the same operation.
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest

	if isMultipart(c) {
		req.Username = c.PostForm("username")
		req.Email = c.PostForm("email")
		req.Password = c.PostForm("password")
		req.Role = models.UserRole(c.PostForm("role"))
		req.MobileNumber = c.PostForm("mobile_number")
		req.CompanyName = c.PostForm("company_name")
		req.Description = c.PostForm("description")
		req.Location = c.PostForm("location")
		req.Latitude = formFloat(c, "latitude")
		req.Longitude = formFloat(c, "longitude")
	} else if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "UserHandler.Register", "invalid request body", err))
		return
	}

	in := services.RegisterInput{
		Username:     req.Username,
		Email:        req.Email,
		Password:     req.Password,
		Role:         req.Role,
		MobileNumber: req.MobileNumber,
		CompanyName:  req.CompanyName,
		Description:  req.Description,
		Location:     req.Location,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
	}

	if isMultipart(c) {
		if fh, err := c.FormFile("profile_photo"); err == nil {
			path, uerr := saveImage(c, fh, h.media, "profile_photos", "profile_photo")
			if uerr != nil {
				writeError(c, uerr)
				return
			}
			in.ProfilePhoto = path
		}
		if fh, err := c.FormFile("logo"); err == nil {
			path, uerr := saveImage(c, fh, h.media, "shop_logos", "logo")
			if uerr != nil {
				writeError(c, uerr)
				return
			}
			in.Logo = path
		}
	}

	u, err := h.svc.Register(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newUserDTO(c, u))
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]UserDTO, 0, len(users))
	for i := range users {
		out = append(out, newUserDTO(c, &users[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *UserHandler) Retrieve(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	u, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserDTO(c, u))
}

// Update handles PUT/PATCH /users/:id/. Callers may only update their own
// record unless they are staff.
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	caller, ok := loadCaller(c, h.svc)
	if !ok {
		return
	}
	if caller.ID != id && !caller.IsStaff {
		writeError(c, utils.E(utils.CodeForbidden, "UserHandler.Update", "You do not have permission to perform this action.", nil))
		return
	}

	h.applyUpdate(c, id)
}

// UpdateProfile handles PUT/PATCH /users/update_profile/ for the caller.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	id, ok := requireUserID(c)
	if !ok {
		return
	}
	h.applyUpdate(c, id)
}

type updateUserRequest struct {
	Email        *string `json:"email"`
	MobileNumber *string `json:"mobile_number"`
}

func (h *UserHandler) applyUpdate(c *gin.Context, id uint) {
	var in services.UpdateUserInput

	if isMultipart(c) {
		if v, ok := c.GetPostForm("email"); ok {
			in.Email = &v
		}
		if v, ok := c.GetPostForm("mobile_number"); ok {
			in.MobileNumber = &v
		}
		if fh, err := c.FormFile("profile_photo"); err == nil {
			path, uerr := saveImage(c, fh, h.media, "profile_photos", "profile_photo")
			if uerr != nil {
				writeError(c, uerr)
				return
			}
			in.ProfilePhoto = &path
		}
	} else {
		var req updateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, utils.E(utils.CodeInvalidArgument, "UserHandler.Update", "invalid request body", err))
			return
		}
		in.Email = req.Email
		in.MobileNumber = req.MobileNumber
	}

	u, err := h.svc.Update(c.Request.Context(), id, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserDTO(c, u))
}

// Delete handles DELETE /users/:id/, restricted to self or staff.
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	caller, ok := loadCaller(c, h.svc)
	if !ok {
		return
	}
	if caller.ID != id && !caller.IsStaff {
		writeError(c, utils.E(utils.CodeForbidden, "UserHandler.Delete", "You do not have permission to perform this action.", nil))
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// ChangePassword handles POST /users/change_password/.
func (h *UserHandler) ChangePassword(c *gin.Context) {
	id, ok := requireUserID(c)
	if !ok {
		return
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "UserHandler.ChangePassword", "invalid request body", err))
		return
	}

	if err := h.svc.ChangePassword(c.Request.Context(), id, req.CurrentPassword, req.NewPassword, req.ConfirmPassword); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Password updated successfully."})
}

// Me handles GET /users/me/.
func (h *UserHandler) Me(c *gin.Context) {
	caller, ok := loadCaller(c, h.svc)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, newUserDTO(c, caller))
}

func formFloat(c *gin.Context, field string) *float64 {
	v, ok := c.GetPostForm(field)
	if !ok || v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &f
}
