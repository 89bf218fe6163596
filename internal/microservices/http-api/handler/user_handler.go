package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookhub/internal/microservices/http-api/dto"
	"bookhub/internal/microservices/http-api/middleware"
	"bookhub/internal/microservices/http-api/service"
	"bookhub/internal/shared"
)

// UserHandler serves the caller's profile, user administration and the role views.
type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	profile := rg.Group("/profile", requireAuth)
	{
		profile.GET("", h.GetProfile)
		profile.PUT("", h.UpdateProfile)
	}

	users := rg.Group("/users", requireAuth, middleware.RequireRole(shared.RoleAdmin))
	{
		users.DELETE("/:id", h.Delete)
		users.PUT("/:id/access", h.UpdateAccess)
	}

	roles := rg.Group("/roles", requireAuth)
	for _, role := range []string{shared.RoleAdmin, shared.RoleLibrarian, shared.RoleMember} {
		roles.GET("/"+role, middleware.RequireRole(role), h.Dashboard(role))
	}
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	user, err := h.userService.Me(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.userService.UpdateProfile(c.Request.Context(), middleware.ActorFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Delete removes a user and everything it authored.
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := paramUserID(c, "id")
	if !ok {
		return
	}
	if err := h.userService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) UpdateAccess(c *gin.Context) {
	id, ok := paramUserID(c, "id")
	if !ok {
		return
	}
	var req dto.AccessRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.userService.UpdateAccess(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Dashboard(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, err := h.userService.Dashboard(c.Request.Context(), role)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, d)
	}
}
