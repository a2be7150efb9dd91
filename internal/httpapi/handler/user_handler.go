package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/middleware"
	"reviewhub/internal/httpapi/service"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) List(c *gin.Context) {
	page := middleware.PageParams(c)
	resp, err := h.userService.List(c.Request.Context(), c.Query("search"), page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if ferr := req.Validate(); ferr != nil {
		c.JSON(http.StatusBadRequest, ferr)
		return
	}

	user, err := h.userService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromModelToUserResponse(user))
}

func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userService.Get(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToUserResponse(user))
}

func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UpdateUserDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if ferr := req.Validate(); ferr != nil {
		c.JSON(http.StatusBadRequest, ferr)
		return
	}

	user, err := h.userService.Update(c.Request.Context(), c.Param("username"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToUserResponse(user))
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.userService.Delete(c.Request.Context(), c.Param("username")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// The router cannot mix a literal "me" segment with the :username wildcard,
// so the detail handlers dispatch on the parameter value: "me" resolves to
// the requester and needs no admin rights, anything else is admin-only.

func (h *UserHandler) GetAny(c *gin.Context) {
	if c.Param("username") == "me" {
		h.Me(c)
		return
	}
	if !requireAdmin(c) {
		return
	}
	h.Get(c)
}

func (h *UserHandler) UpdateAny(c *gin.Context) {
	if c.Param("username") == "me" {
		h.UpdateMe(c)
		return
	}
	if !requireAdmin(c) {
		return
	}
	h.Update(c)
}

func (h *UserHandler) DeleteAny(c *gin.Context) {
	if c.Param("username") == "me" {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"detail": "Method \"DELETE\" not allowed."})
		return
	}
	if !requireAdmin(c) {
		return
	}
	h.Delete(c)
}

// Me handles GET /users/me without the caller knowing their own identifier.
func (h *UserHandler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, dto.FromModelToMeResponse(user))
}

// UpdateMe handles PATCH /users/me; the role field is not part of the
// self-profile projection and cannot be changed here.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req dto.UpdateMeDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if ferr := req.Validate(); ferr != nil {
		c.JSON(http.StatusBadRequest, ferr)
		return
	}

	user := middleware.CurrentUser(c)
	updated, err := h.userService.UpdateMe(c.Request.Context(), user.ID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToMeResponse(updated))
}
