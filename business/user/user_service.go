package user

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"myTerpMarket/domain"
	"myTerpMarket/pkg/logger"
	"myTerpMarket/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// UserRepository contract interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uint) error
}

type userService struct {
	userRepo UserRepository
	validate *validator.Validate
}

func NewUserService(userRepo UserRepository, validate *validator.Validate) *userService {
	return &userService{
		userRepo: userRepo,
		validate: validate,
	}
}

const (
	RoleStaff = "staff"
	RoleAdmin = "admin"
)

var validRoles = map[string]bool{
	RoleStaff: true,
	RoleAdmin: true,
}

// Register creates a staff account. Back-office accounts are created by an
// admin, so there is no self-service verification flow.
func (s *userService) Register(ctx context.Context, user *domain.User) (domain.User, error) {
	if err := s.validate.Var(user.Email, "required,email"); err != nil {
		logger.Error("Invalid email format", err)
		return domain.User{}, errors.New("invalid email format")
	}

	if err := s.validate.Var(user.Password, "required,min=6"); err != nil {
		logger.Error("Invalid user password", err)
		return domain.User{}, errors.New("password must be at least 6 characters")
	}

	if user.OrganizationID == "" {
		logger.Error("Missing organization id")
		return domain.User{}, errors.New("organization id is required")
	}
	if _, err := uuid.Parse(user.OrganizationID); err != nil {
		logger.Error("Invalid organization id", err)
		return domain.User{}, errors.New("invalid organization id")
	}

	role := user.Role
	if role == "" {
		role = RoleStaff
	}
	if !validRoles[role] {
		logger.Error("Invalid role", "role", role)
		return domain.User{}, errors.New("invalid role")
	}

	// Check if email already exists
	existingUser, err := s.userRepo.FindByEmail(ctx, user.Email)
	if err == nil && existingUser.ID > 0 {
		logger.Error("Email already exists")
		return domain.User{}, errors.New("email already exists")
	}

	passwordHash, err := utils.HashPassword(user.Password)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return domain.User{}, errors.New("failed to hash password")
	}

	newUser := domain.User{
		FullName:       user.FullName,
		Email:          user.Email,
		Password:       passwordHash,
		Role:           role,
		OrganizationID: user.OrganizationID,
	}

	if err := s.userRepo.Create(ctx, &newUser); err != nil {
		logger.Error("Failed to create new user")
		return domain.User{}, err
	}

	newUser.Password = ""
	return newUser, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		logger.Error("Invalid user credentials", err)
		return "", domain.User{}, err
	}

	ok := utils.CheckPassword(password, user.Password)
	if !ok {
		logger.Error("User password incorrect")
		return "", domain.User{}, errors.New("incorrect password")
	}

	userIdStr := strconv.FormatUint(uint64(user.ID), 10)
	token, err := utils.GenerateJWT(userIdStr, user.Role, user.OrganizationID)
	if err != nil {
		logger.Error("Failed to generate token", err)
		return "", domain.User{}, errors.New("failed to generate token")
	}

	user.Password = ""
	return token, user, nil
}

func (s *userService) GetUserByID(ctx context.Context, id uint) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, fmt.Errorf("context error: %w", err)
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("failed to find user by id", err)
		return domain.User{}, err
	}

	user.Password = ""
	return user, nil
}

func (s *userService) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		logger.Error("failed to find all users", err)
		return nil, err
	}

	for i := range users {
		users[i].Password = ""
	}

	return users, nil
}

func (s *userService) DeleteUser(ctx context.Context, id uint) error {
	if id == 0 {
		return errors.New("invalid user id")
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		logger.Error("user not found", err)
		return errors.New("user not found")
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete user", err)
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}
