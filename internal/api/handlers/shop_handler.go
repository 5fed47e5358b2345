package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shoply/jobboard/internal/services"
	"github.com/shoply/jobboard/internal/storage"
	"github.com/shoply/jobboard/internal/utils"
)

type ShopHandler struct {
	svc   services.ShopService
	users services.UserService
	media storage.Uploader
}

func NewShopHandler(svc services.ShopService, users services.UserService, media storage.Uploader) *ShopHandler {
	return &ShopHandler{svc: svc, users: users, media: media}
}

func (h *ShopHandler) List(c *gin.Context) {
	shops, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]ShopDTO, 0, len(shops))
	for i := range shops {
		out = append(out, newShopDTO(c, &shops[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *ShopHandler) Retrieve(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	shop, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newShopDTO(c, shop))
}

type shopRequest struct {
	CompanyName *string  `json:"company_name"`
	Description *string  `json:"description"`
	Location    *string  `json:"location"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

func (h *ShopHandler) bindShop(c *gin.Context, op string) (*shopRequest, *string, bool) {
	var req shopRequest
	var logo *string

	if isMultipart(c) {
		if v, ok := c.GetPostForm("company_name"); ok {
			req.CompanyName = &v
		}
		if v, ok := c.GetPostForm("description"); ok {
			req.Description = &v
		}
		if v, ok := c.GetPostForm("location"); ok {
			req.Location = &v
		}
		req.Latitude = formFloat(c, "latitude")
		req.Longitude = formFloat(c, "longitude")
		if fh, err := c.FormFile("logo"); err == nil {
			path, uerr := saveImage(c, fh, h.media, "shop_logos", "logo")
			if uerr != nil {
				writeError(c, uerr)
				return nil, nil, false
			}
			logo = &path
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid request body", err))
		return nil, nil, false
	}

	return &req, logo, true
}

// Create handles POST /shops/ for shop owners without a profile yet.
func (h *ShopHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	req, logo, ok := h.bindShop(c, "ShopHandler.Create")
	if !ok {
		return
	}

	in := services.CreateShopInput{
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}
	if req.CompanyName != nil {
		in.CompanyName = *req.CompanyName
	}
	if req.Description != nil {
		in.Description = *req.Description
	}
	if req.Location != nil {
		in.Location = *req.Location
	}
	if logo != nil {
		in.Logo = *logo
	}

	shop, err := h.svc.Create(c.Request.Context(), userID, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newShopDTO(c, shop))
}

func (h *ShopHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	req, logo, ok := h.bindShop(c, "ShopHandler.Update")
	if !ok {
		return
	}

	in := services.UpdateShopInput{
		CompanyName: req.CompanyName,
		Description: req.Description,
		Location:    req.Location,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Logo:        logo,
	}

	shop, err := h.svc.Update(c.Request.Context(), id, userID, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newShopDTO(c, shop))
}

func (h *ShopHandler) Delete(c *gin.Context) {
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

// MyShop handles GET /shops/my_shop/.
func (h *ShopHandler) MyShop(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	shop, err := h.svc.GetByOwner(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newShopDTO(c, shop))
}

// Analytics handles GET /shops/analytics/ for the caller's shop.
func (h *ShopHandler) Analytics(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	stats, err := h.svc.Analytics(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

type verifyRequest struct {
	IsVerified *bool `json:"is_verified"`
}

// Verify handles POST /shops/:id/verify/, restricted to staff accounts.
func (h *ShopHandler) Verify(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	caller, ok := loadCaller(c, h.users)
	if !ok {
		return
	}
	if !caller.IsStaff {
		writeError(c, utils.E(utils.CodeForbidden, "ShopHandler.Verify", "You do not have permission to perform this action.", nil))
		return
	}

	verified := true
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err == nil && req.IsVerified != nil {
		verified = *req.IsVerified
	}

	shop, err := h.svc.SetVerified(c.Request.Context(), id, verified)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newShopDTO(c, shop))
}
