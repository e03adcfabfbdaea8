package auth

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Inventario-epi/internal/application/dto"
	"github.com/jhoicas/Inventario-epi/internal/domain"
	"github.com/jhoicas/Inventario-epi/internal/domain/entity"
	"github.com/jhoicas/Inventario-epi/internal/domain/repository"
	"github.com/jhoicas/Inventario-epi/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase emite tokens para los usuarios del almacén de EPI.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login verifica email/password y genera el JWT.
// Usuario inexistente y password incorrecto devuelven el mismo ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email y password son requeridos", domain.ErrInvalidInput)
	}
	user, err := uc.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("auth: buscar usuario: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive() {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret,
		jwt.Identity{UserID: user.ID, CompanyID: user.CompanyID, Role: user.Role},
		uc.jwtCfg.Issuer, time.Duration(uc.jwtCfg.ExpMinutes)*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("auth: generar token: %w", err)
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: uc.jwtCfg.ExpMinutes * 60,
		User:      toUserResponse(user),
	}, nil
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		CompanyID: u.CompanyID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
