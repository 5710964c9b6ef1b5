package http

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/toppingfrozen/ordertrack/internal/core/domain"
	"github.com/toppingfrozen/ordertrack/internal/core/port"
	"github.com/toppingfrozen/ordertrack/internal/core/utils"
	"go.uber.org/zap"
)

type UserHandler struct {
	service port.Service
	logger  *zap.Logger
}

func NewUserHandler(service port.Service, logger *zap.Logger) (*UserHandler, error) {
	return &UserHandler{service: service, logger: logger}, nil
}

type userResponse struct {
	ID       uint64          `json:"id"`
	Username string          `json:"username"`
	Name     string          `json:"name"`
	Role     domain.UserRole `json:"role"`
}

func newUserResponse(user *domain.User) userResponse {
	return userResponse{
		ID:       user.ID,
		Username: user.Username,
		Name:     user.Name,
		Role:     user.Role,
	}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (uh *UserHandler) Login(ctx *gin.Context) {
	req := loginRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		handleValidationError(ctx, err)
		return
	}

	user, token, err := uh.service.LoginUser(ctx, req.Username, req.Password)
	if err != nil {
		handleError(ctx, err)
		return
	}

	handleSuccess(ctx, struct {
		User  userResponse `json:"user"`
		Token string       `json:"token"`
	}{User: newUserResponse(user), Token: token})
}

type registerRequest struct {
	Username string          `json:"username" binding:"required"`
	Password string          `json:"password" binding:"required"`
	Name     string          `json:"name" binding:"required"`
	Role     domain.UserRole `json:"role" binding:"required"`
}

func (uh *UserHandler) Register(ctx *gin.Context) {
	req := registerRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		handleValidationError(ctx, err)
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		uh.logger.Error("Hash password", zap.Error(err))
		handleError(ctx, domain.ErrInternal)
		return
	}

	user := &domain.User{
		Username: req.Username,
		Password: hashed,
		Name:     req.Name,
		Role:     req.Role,
	}

	created, err := uh.service.RegisterUser(ctx, user)
	if err != nil {
		handleError(ctx, err)
		return
	}

	handleSuccessWithStatus(ctx, newUserResponse(created), 201)
}

func (uh *UserHandler) Me(ctx *gin.Context) {
	payload := getAuthPayload(ctx)

	user, err := uh.service.GetUser(ctx, payload.UserID)
	if err != nil {
		handleError(ctx, err)
		return
	}

	handleSuccess(ctx, newUserResponse(user))
}

func (uh *UserHandler) ListUsers(ctx *gin.Context) {
	list, err := uh.service.ListUsers(ctx)
	if err != nil {
		handleError(ctx, err)
		return
	}

	result := make([]userResponse, 0, len(list))
	for _, u := range list {
		result = append(result, newUserResponse(u))
	}

	handleSuccess(ctx, result)
}

func (uh *UserHandler) GetUser(ctx *gin.Context) {
	id, payload := parseID(ctx), getAuthPayload(ctx)
	if id == 0 {
		return
	}
	if payload.Role != domain.RoleAdmin && payload.UserID != id {
		handleError(ctx, domain.ErrForbidden)
		return
	}

	user, err := uh.service.GetUser(ctx, id)
	if err != nil {
		handleError(ctx, err)
		return
	}

	handleSuccess(ctx, newUserResponse(user))
}

type updateUserRequest struct {
	Name string          `json:"name"`
	Role domain.UserRole `json:"role"`
}

func (uh *UserHandler) UpdateUser(ctx *gin.Context) {
	id, payload := parseID(ctx), getAuthPayload(ctx)
	if id == 0 {
		return
	}
	if payload.Role != domain.RoleAdmin && payload.UserID != id {
		handleError(ctx, domain.ErrForbidden)
		return
	}

	req := updateUserRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		handleValidationError(ctx, err)
		return
	}
	// Only an admin may reassign a role.
	if req.Role != "" && payload.Role != domain.RoleAdmin {
		handleError(ctx, domain.ErrForbidden)
		return
	}

	user, err := uh.service.GetUser(ctx, id)
	if err != nil {
		handleError(ctx, err)
		return
	}
	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Role != "" {
		user.Role = req.Role
	}

	updated, err := uh.service.UpdateUser(ctx, user)
	if err != nil {
		handleError(ctx, err)
		return
	}

	handleSuccess(ctx, newUserResponse(updated))
}

func (uh *UserHandler) DeleteUser(ctx *gin.Context) {
	id := parseID(ctx)
	if id == 0 {
		return
	}

	if err := uh.service.DeleteUser(ctx, id); err != nil {
		handleError(ctx, err)
		return
	}

	handleSuccessMessage(ctx, "user deleted")
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

func (uh *UserHandler) ChangePassword(ctx *gin.Context) {
	id, payload := parseID(ctx), getAuthPayload(ctx)
	if id == 0 {
		return
	}
	if payload.UserID != id {
		handleError(ctx, domain.ErrForbidden)
		return
	}

	req := changePasswordRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		handleValidationError(ctx, err)
		return
	}

	if err := uh.service.ChangePassword(ctx, id, req.OldPassword, req.NewPassword); err != nil {
		handleError(ctx, err)
		return
	}

	handleSuccessMessage(ctx, "password changed")
}

// parseID reads the :id route parameter; on failure it answers the
// request and returns zero.
func parseID(ctx *gin.Context) uint64 {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil || id == 0 {
		handleValidationError(ctx, err)
		return 0
	}
	return id
}
