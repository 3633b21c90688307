package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/kmuteti/restopos-api/internal/domain/entity"
	"github.com/kmuteti/restopos-api/internal/domain/repository"
	"github.com/kmuteti/restopos-api/pkg/apperror"
	"github.com/kmuteti/restopos-api/pkg/utils"
)

// AuthService handles staff authentication
type AuthService struct {
	staffRepo  repository.StaffRepository
	jwtManager *utils.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(staffRepo repository.StaffRepository, jwtManager *utils.JWTManager) *AuthService {
	return &AuthService{
		staffRepo:  staffRepo,
		jwtManager: jwtManager,
	}
}

// LoginInput represents the login input
type LoginInput struct {
	Username string
	Password string
}

// LoginOutput represents the login output
type LoginOutput struct {
	Staff        *entity.Staff
	AccessToken  string
	RefreshToken string
}

// Login authenticates a staff member and returns a token pair
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	staff, err := s.staffRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if staff == nil || !staff.Active {
		return nil, apperror.ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(input.Password, staff.Password) {
		return nil, apperror.ErrInvalidCredentials
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(staff.ID, staff.Username, staff.Role)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(staff.ID)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		Staff:        staff,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// RefreshToken exchanges a valid refresh token for a new access token
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	staffID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return "", apperror.ErrInvalidToken
	}

	staff, err := s.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		return "", err
	}
	if staff == nil || !staff.Active {
		return "", apperror.ErrUnauthorized
	}

	return s.jwtManager.GenerateAccessToken(staff.ID, staff.Username, staff.Role)
}

// RegisterStaffInput represents the staff registration input
type RegisterStaffInput struct {
	Name     string
	Username string
	Password string
	Role     string
}

// RegisterStaff creates a new staff account. Managers only.
func (s *AuthService) RegisterStaff(ctx context.Context, input *RegisterStaffInput) (*entity.Staff, error) {
	existing, err := s.staffRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Username already taken")
	}

	role := input.Role
	switch role {
	case entity.RoleCashier, entity.RoleKitchen, entity.RoleManager:
	case "":
		role = entity.RoleCashier
	default:
		return nil, apperror.NewBadRequestError("Unknown role: " + input.Role)
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	staff := &entity.Staff{
		Name:     input.Name,
		Username: input.Username,
		Password: hashedPassword,
		Role:     role,
		Active:   true,
	}

	if err := s.staffRepo.Create(ctx, staff); err != nil {
		return nil, err
	}

	return staff, nil
}

// GetProfile returns the staff member for the authenticated session
func (s *AuthService) GetProfile(ctx context.Context, staffID uuid.UUID) (*entity.Staff, error) {
	staff, err := s.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, apperror.NewNotFoundError("Staff")
	}
	return staff, nil
}
