package rest

import (
	"context"
	"myTerpMarket/domain"
	"myTerpMarket/pkg/logger"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type UserService interface {
	Register(ctx context.Context, user *domain.User) (domain.User, error)
	Login(ctx context.Context, email, password string) (string, domain.User, error)
	GetUserByID(ctx context.Context, id uint) (domain.User, error)
	GetAllUsers(ctx context.Context) ([]domain.User, error)
	DeleteUser(ctx context.Context, id uint) error
}

type UserHandler struct {
	userService UserService
	validator   *validator.Validate
	timeout     time.Duration
}

func NewUserHandler(userService UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		validator:   validator.New(),
		timeout:     10 * time.Second,
	}
}

type UserRegisterRequest struct {
	FullName       string `json:"full_name" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=6"`
	Role           string `json:"role" validate:"omitempty,oneof=staff admin"`
	OrganizationID string `json:"organization_id" validate:"required,uuid"`
}

type UserLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *UserHandler) Register(c echo.Context) error {
	var reqUser UserRegisterRequest

	if err := c.Bind(&reqUser); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&reqUser); err != nil {
		logger.Error("Failed to validate user register", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	user := &domain.User{
		FullName:       reqUser.FullName,
		Email:          reqUser.Email,
		Password:       reqUser.Password,
		Role:           reqUser.Role,
		OrganizationID: reqUser.OrganizationID,
	}

	newUser, err := h.userService.Register(ctx, user)
	if err != nil {
		logger.Error("Failed to register user", err)
		if err.Error() == "email already exists" ||
			err.Error() == "invalid email format" ||
			err.Error() == "invalid role" ||
			err.Error() == "invalid organization id" ||
			err.Error() == "password must be at least 6 characters" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "user successfully registered",
		"user":    newUser,
	})
}

func (h *UserHandler) Login(c echo.Context) error {
	var reqUser UserLoginRequest

	if err := c.Bind(&reqUser); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&reqUser); err != nil {
		logger.Error("Failed to validate user login", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	token, user, err := h.userService.Login(ctx, reqUser.Email, reqUser.Password)
	if err != nil {
		logger.Error("Failed to login", err)
		if err.Error() == "user not found" || err.Error() == "incorrect password" {
			return c.JSON(http.StatusUnauthorized, ResponseError{Message: "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "login successful",
		"token":   token,
		"user":    user,
	})
}

func (h *UserHandler) GetUserByID(c echo.Context) error {
	userIdStr := c.Param("id")

	userId, err := strconv.ParseUint(userIdStr, 10, 64)
	if err != nil {
		logger.Error("Invalid user id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	user, err := h.userService.GetUserByID(ctx, uint(userId))
	if err != nil {
		if err.Error() == "user not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully find user by id",
		"user":    user,
	})
}

func (h *UserHandler) GetAllUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	users, err := h.userService.GetAllUsers(ctx)
	if err != nil {
		logger.Error("Failed to find all users", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully get all users",
		"users":   users,
	})
}

func (h *UserHandler) DeleteUser(c echo.Context) error {
	userIdStr := c.Param("id")

	userId, err := strconv.ParseUint(userIdStr, 10, 64)
	if err != nil {
		logger.Error("Invalid user id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	err = h.userService.DeleteUser(ctx, uint(userId))
	if err != nil {
		logger.Error("Failed to delete user", err)
		if err.Error() == "user not found" || err.Error() == "invalid user id" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "user successfully deleted",
		"user_id": userId,
	})
}
