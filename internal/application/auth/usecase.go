package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Patel-Pritam/mahadev-trader-suite/internal/application/dto"
	"github.com/Patel-Pritam/mahadev-trader-suite/internal/domain"
	"github.com/Patel-Pritam/mahadev-trader-suite/internal/domain/entity"
	"github.com/Patel-Pritam/mahadev-trader-suite/internal/domain/repository"
	"github.com/Patel-Pritam/mahadev-trader-suite/pkg/jwt"
)

// JWTConfig token generation settings.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase authentication use cases: register and login.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase builds the auth use case.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// RegisterUser creates a user: hashes the password with bcrypt and persists.
// Without OwnerID the user becomes the admin of a new business account
// (OwnerID == its own ID); with OwnerID it joins that account as staff.
// Returns ErrEmailAlreadyExists if the email is taken.
func (uc *AuthUseCase) RegisterUser(in dto.RegisterRequest) (*dto.UserResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.userRepo.FindByEmail(in.Email)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = in.Email
	}

	id := uuid.New().String()
	ownerID := in.OwnerID
	role := entity.RoleStaff
	if ownerID == "" {
		ownerID = id
		role = entity.RoleAdmin
	} else {
		// Staff joins an existing account; the owner must exist and be active
		owner, err := uc.userRepo.GetByID(ownerID)
		if err != nil {
			return nil, err
		}
		if owner == nil || owner.OwnerID != owner.ID {
			return nil, domain.ErrNotFound
		}
	}

	user := &entity.User{
		ID:           id,
		OwnerID:      ownerID,
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		BusinessName: in.BusinessName,
		Address:      in.Address,
		Phone:        in.Phone,
		TaxID:        in.TaxID,
		Role:         role,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifies email/password, generates a JWT and returns token + user.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.OwnerID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:           u.ID,
		OwnerID:      u.OwnerID,
		Email:        u.Email,
		Name:         u.Name,
		BusinessName: u.BusinessName,
		Role:         u.Role,
		Status:       u.Status,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
