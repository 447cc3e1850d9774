package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jrjohn/docstore-users/internal/domain/service"
	"github.com/jrjohn/docstore-users/internal/dto/request"
	"github.com/jrjohn/docstore-users/internal/dto/response"
	"github.com/jrjohn/docstore-users/internal/observability"
)

// UserController exposes one data-access variant under /<variant>.
type UserController struct {
	variant      string
	userService  service.UserDataService
	statsService service.DepartmentStatsService
}

// NewUserController creates a controller for variant. statsService may be nil,
// in which case the stats route is not registered.
func NewUserController(
	variant string,
	userService service.UserDataService,
	statsService service.DepartmentStatsService,
) *UserController {
	useJSONFieldNames()
	return &UserController{
		variant:      variant,
		userService:  userService,
		statsService: statsService,
	}
}

// Variant returns the path segment the controller is mounted on.
func (c *UserController) Variant() string {
	return c.variant
}

// RegisterRoutes registers the variant's routes below router.
func (c *UserController) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/"+c.variant, c.tagVariant)
	group.GET("/test-connection", c.TestConnection)

	users := group.Group("/users")
	{
		users.POST("", c.Create)
		users.GET("", c.FindAll)
		users.POST("/search", c.Search)
		users.GET("/department/:department", c.FindByDepartment)
		users.GET("/count/department/:department", c.CountByDepartment)
		users.GET("/:id", c.GetByID)
		users.PUT("/:id", c.Update)
		users.DELETE("/:id", c.Delete)
	}

	if c.statsService != nil {
		group.GET("/stats/departments", c.StatsByDepartment)
	}
}

// tagVariant labels the request span with the data-access variant.
func (c *UserController) tagVariant(ctx *gin.Context) {
	observability.AddSpanAttributes(ctx.Request.Context(), observability.AttrVariant.String(c.variant))
	ctx.Next()
}

// userID reads the :id parameter and records it on the request span.
func userID(ctx *gin.Context) string {
	id := ctx.Param("id")
	observability.AddSpanAttributes(ctx.Request.Context(), observability.AttrUserID.String(id))
	return id
}

// TestConnection checks the store
// @Summary Test database connection
// @Tags Users
// @Produce json
// @Success 200 {object} response.MessageResponse
// @Router /api/{variant}/test-connection [get]
func (c *UserController) TestConnection(ctx *gin.Context) {
	msg, err := c.userService.TestConnection(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.MessageResponse{Message: msg})
}

// Create creates a user
// @Summary Create user
// @Tags Users
// @Accept json
// @Produce json
// @Param request body request.CreateUserRequest true "User"
// @Success 201 {object} response.UserResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /api/{variant}/users [post]
func (c *UserController) Create(ctx *gin.Context) {
	var req request.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	user, err := c.userService.CreateUser(ctx.Request.Context(), req.Name, req.Email, req.Department, req.Role)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, response.FromUser(user))
}

// GetByID retrieves a user by ID
// @Summary Get user by ID
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.UserResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/{variant}/users/{id} [get]
func (c *UserController) GetByID(ctx *gin.Context) {
	user, err := c.userService.FindUserByID(ctx.Request.Context(), userID(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.FromUser(user))
}

// Update applies a partial update
// @Summary Update user
// @Tags Users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body request.UpdateUserRequest true "Fields to change"
// @Success 200 {object} response.UserResponse
// @Router /api/{variant}/users/{id} [put]
func (c *UserController) Update(ctx *gin.Context) {
	var req request.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	user, err := c.userService.UpdateUser(ctx.Request.Context(), userID(ctx), req.ToPatch())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.FromUser(user))
}

// Delete removes a user
// @Summary Delete user
// @Tags Users
// @Param id path string true "User ID"
// @Success 204
// @Failure 404 {object} response.ErrorResponse
// @Router /api/{variant}/users/{id} [delete]
func (c *UserController) Delete(ctx *gin.Context) {
	id := userID(ctx)
	deleted, err := c.userService.DeleteUser(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	if !deleted {
		respondError(ctx, service.ErrUserNotFound.WithDetail(id))
		return
	}
	ctx.Status(http.StatusNoContent)
}

// FindAll lists every user
// @Summary List users
// @Tags Users
// @Produce json
// @Success 200 {array} response.UserResponse
// @Router /api/{variant}/users [get]
func (c *UserController) FindAll(ctx *gin.Context) {
	users, err := c.userService.FindAll(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.FromUsers(users))
}

// FindByDepartment lists users in exactly the given department
// @Summary List users by department
// @Tags Users
// @Produce json
// @Param department path string true "Department (case-sensitive)"
// @Success 200 {array} response.UserResponse
// @Router /api/{variant}/users/department/{department} [get]
func (c *UserController) FindByDepartment(ctx *gin.Context) {
	users, err := c.userService.FindUsersByDepartment(ctx.Request.Context(), ctx.Param("department"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.FromUsers(users))
}

// Search returns one page of matching users
// @Summary Search users
// @Tags Users
// @Accept json
// @Produce json
// @Param request body request.SearchUsersRequest true "Criteria"
// @Success 200 {array} response.UserResponse
// @Router /api/{variant}/users/search [post]
func (c *UserController) Search(ctx *gin.Context) {
	var req request.SearchUsersRequest
	// An empty body means no criteria.
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondBindError(ctx, err)
		return
	}

	users, err := c.userService.SearchUsers(ctx.Request.Context(), req.ToQuery())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.FromUsers(users))
}

// CountByDepartment counts users in the given department
// @Summary Count users by department
// @Tags Users
// @Produce json
// @Param department path string true "Department (case-sensitive)"
// @Success 200 {object} response.CountResponse
// @Router /api/{variant}/users/count/department/{department} [get]
func (c *UserController) CountByDepartment(ctx *gin.Context) {
	department := ctx.Param("department")
	n, err := c.userService.CountByDepartment(ctx.Request.Context(), department)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.CountResponse{Department: department, Count: n})
}

// StatsByDepartment returns per-department user counts
// @Summary Department statistics
// @Tags Stats
// @Produce json
// @Success 200 {array} response.DepartmentStatsResponse
// @Router /api/native/stats/departments [get]
func (c *UserController) StatsByDepartment(ctx *gin.Context) {
	stats, err := c.statsService.GetStatsByDepartment(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.FromDepartmentStats(stats))
}
