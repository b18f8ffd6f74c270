// controller/user_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	cw_errors "github.com/harborworks/causeway-api/errors"
	"github.com/harborworks/causeway-api/middleware"
	"github.com/harborworks/causeway-api/model"
	"github.com/harborworks/causeway-api/service"
	"github.com/harborworks/causeway-api/util"
	helper_util "github.com/harborworks/causeway-api/util/helper"
)

type UserController struct {
	userService service.IUserService
}

func NewUserController(userService service.IUserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

// RegisterRoutes registers the API routes for users
func (uc *UserController) RegisterRoutes(r *gin.RouterGroup) {
	users := r.Group("/users")
	{
		users.POST("/invite", middleware.RequireScope(model.ScopeUsersWrite), uc.InviteUser)
		users.PATCH("/:id", middleware.RequireScope(model.ScopeUsersWrite), uc.UpdateUser)
		users.DELETE("/:id", middleware.RequireScope(model.ScopeUsersWrite), uc.DeleteUser)
		users.GET("/:id", middleware.RequireScope(model.ScopeUsersRead), uc.GetUser)
		users.GET("", middleware.RequireScope(model.ScopeUsersRead), uc.ListUsers)
	}
}

// InviteUser endpoint
func (uc *UserController) InviteUser(c *gin.Context) {
	var user model.User
	if err := c.ShouldBindJSON(&user); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid user data", cw_errors.ErrInvalidUserData)
		return
	}
	if user.OrganizationID == "" {
		user.OrganizationID = util.GetOrgID(c)
	}
	actor, err := util.GetActorFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	invitedUser, err := uc.userService.InviteUser(c.Request.Context(), user, actor)
	if err != nil {
		util.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, invitedUser)
}

// UpdateUser endpoint
func (uc *UserController) UpdateUser(c *gin.Context) {
	userID := c.Param("id")
	var upd model.UserUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid user data", cw_errors.ErrInvalidUserData)
		return
	}
	actor, err := util.GetActorFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	updatedUser, err := uc.userService.UpdateUser(c.Request.Context(), util.GetOrgID(c), userID, upd, actor)
	if err != nil {
		util.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, updatedUser)
}

// DeleteUser endpoint. A partial failure (one of the two backing records
// could not be removed) reports the failed steps with a 207.
func (uc *UserController) DeleteUser(c *gin.Context) {
	userID := c.Param("id")
	actor, err := util.GetActorFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	if err := uc.userService.DeleteUser(c.Request.Context(), util.GetOrgID(c), userID, actor); err != nil {
		util.RespondWithDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetUser endpoint
func (uc *UserController) GetUser(c *gin.Context) {
	userID := c.Param("id")

	user, err := uc.userService.GetUser(c.Request.Context(), util.GetOrgID(c), userID)
	if err != nil {
		util.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// ListUsers endpoint
func (uc *UserController) ListUsers(c *gin.Context) {
	limit, offset, err := helper_util.GetPaginationParams(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters", err)
		return
	}

	users, err := uc.userService.ListUsers(c.Request.Context(), util.GetOrgID(c), limit, offset)
	if err != nil {
		util.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}
