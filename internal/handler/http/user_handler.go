package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/yamdb/internal/handler/http/dto"
	"github.com/mikiasgoitom/yamdb/internal/handler/http/middleware"
	usecasecontract "github.com/mikiasgoitom/yamdb/internal/usecase/contract"
)

// UserHandlerInterface defines the methods for user handler to allow interface-based dependency injection (for testing/mocking)
type UserHandlerInterface interface {
	ListUsers(*gin.Context)
	CreateUser(*gin.Context)
	GetUser(*gin.Context)
	ReplaceUser(*gin.Context)
	UpdateUser(*gin.Context)
	DeleteUser(*gin.Context)
	GetCurrentUser(*gin.Context)
	UpdateCurrentUser(*gin.Context)
}

// Ensure UserHandler implements UserHandlerInterface
var _ UserHandlerInterface = (*UserHandler)(nil)

type UserHandler struct {
	paginator
	userUsecase usecasecontract.IUserUseCase
}

func NewUserHandler(userUsecase usecasecontract.IUserUseCase, pageSize int) *UserHandler {
	return &UserHandler{
		paginator:   paginator{pageSize: pageSize},
		userUsecase: userUsecase,
	}
}

// ListUsers pages through users, optionally filtered by ?search=.
func (h *UserHandler) ListUsers(c *gin.Context) {
	page, ok := h.page(c)
	if !ok {
		return
	}
	users, total, err := h.userUsecase.ListUsers(c.Request.Context(), c.Query("search"), page)
	if err != nil {
		HandleError(c, err)
		return
	}
	h.respond(c, page, total, dto.ToUserResponses(users))
}

// CreateUser lets an admin create an active user with any role.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	user, err := h.userUsecase.CreateUser(c.Request.Context(), req.ToInput())
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusCreated, dto.ToUserResponse(user))
}

func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userUsecase.GetUserByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToUserResponse(user))
}

// ReplaceUser handles PUT: username and email are required.
func (h *UserHandler) ReplaceUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	user, err := h.userUsecase.UpdateUser(c.Request.Context(), c.Param("username"), req.ToInput())
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToUserResponse(user))
}

// UpdateUser handles PATCH by an admin.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	user, err := h.userUsecase.UpdateUser(c.Request.Context(), c.Param("username"), req.ToInput())
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToUserResponse(user))
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.userUsecase.DeleteUser(c.Request.Context(), c.Param("username")); err != nil {
		HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetCurrentUser handles retrieving the current authenticated user
func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		ErrorHandler(c, http.StatusUnauthorized, "User not authenticated")
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToUserResponse(user))
}

// UpdateCurrentUser lets a user edit their own profile; role is ignored.
func (h *UserHandler) UpdateCurrentUser(c *gin.Context) {
	current := middleware.CurrentUser(c)
	if current == nil {
		ErrorHandler(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req dto.UpdateProfileRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	user, err := h.userUsecase.UpdateProfile(c.Request.Context(), current.ID, req.ToInput())
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToUserResponse(user))
}
