package owners

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"rently/internal/shared/config"
	"rently/pkg/logger"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrOwnerNotFound      = errors.New("owner not found")
	ErrOwnerAlreadyExists = errors.New("owner already exists")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
)

type Service interface {
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
	ChangePassword(ctx context.Context, ownerID string, req *ChangePasswordRequest) error
	GetProfile(ctx context.Context, ownerID string) (*OwnerResponse, error)
	ValidateToken(tokenString string) (*JWTClaims, error)
}

type service struct {
	repo   Repository
	config *config.Config
	logger *logger.Logger
}

func NewService(repo Repository, cfg *config.Config, log *logger.Logger) Service {
	return &service{
		repo:   repo,
		config: cfg,
		logger: log,
	}
}

func (s *service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	// Check if owner already exists
	exists, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrOwnerAlreadyExists
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	// Set default role if not provided
	role := strings.ToUpper(req.Role)
	if !IsValidRole(role) {
		role = string(RoleOwner)
	}

	owner := &Owner{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  string(hashedPassword),
		Role:      Role(role),
	}

	if err := s.repo.CreateOwner(ctx, owner); err != nil {
		return nil, err
	}

	tokenPair, err := s.generateTokenPair(owner.ID.String(), owner.Email, string(owner.Role))
	if err != nil {
		return nil, err
	}

	s.logger.LogAuthSuccess(ctx, owner.ID.String(), "register")

	return &AuthResponse{
		Owner:        toOwnerResponse(owner),
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}

func (s *service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	owner, err := s.repo.GetOwnerByEmail(ctx, req.Email)
	if err != nil {
		if err == ErrOwnerNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(owner.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	tokenPair, err := s.generateTokenPair(owner.ID.String(), owner.Email, string(owner.Role))
	if err != nil {
		return nil, err
	}

	s.logger.LogAuthSuccess(ctx, owner.ID.String(), "login")

	return &AuthResponse{
		Owner:        toOwnerResponse(owner),
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.validateToken(refreshToken)
	if err != nil {
		return nil, err
	}

	if claims.Type != "refresh" {
		return nil, ErrInvalidToken
	}

	// Verify owner still exists
	owner, err := s.repo.GetOwnerByID(ctx, claims.OwnerID)
	if err != nil {
		return nil, ErrOwnerNotFound
	}

	return s.generateTokenPair(owner.ID.String(), owner.Email, string(owner.Role))
}

func (s *service) ChangePassword(ctx context.Context, ownerID string, req *ChangePasswordRequest) error {
	owner, err := s.repo.GetOwnerByID(ctx, ownerID)
	if err != nil {
		return ErrOwnerNotFound
	}

	// Verify current password
	if err := bcrypt.CompareHashAndPassword([]byte(owner.Password), []byte(req.CurrentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.repo.UpdateOwnerPassword(ctx, ownerID, string(hashedPassword))
}

func (s *service) GetProfile(ctx context.Context, ownerID string) (*OwnerResponse, error) {
	owner, err := s.repo.GetOwnerByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	resp := toOwnerResponse(owner)
	return &resp, nil
}

func (s *service) ValidateToken(tokenString string) (*JWTClaims, error) {
	return s.validateToken(tokenString)
}

func (s *service) generateTokenPair(ownerID, email, role string) (*TokenPair, error) {
	now := time.Now()

	accessClaims := JWTClaims{
		OwnerID: ownerID,
		Email:   email,
		Role:    role,
		Type:    "access",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.JWT.JWTExpiresIn)),
			Issuer:    "rently",
			Subject:   ownerID,
		},
	}

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims)
	accessTokenString, err := accessToken.SignedString([]byte(s.config.JWT.Secret))
	if err != nil {
		return nil, err
	}

	refreshClaims := JWTClaims{
		OwnerID: ownerID,
		Email:   email,
		Role:    role,
		Type:    "refresh",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.JWT.RefreshExpiresIn)),
			Issuer:    "rently",
			Subject:   ownerID,
		},
	}

	refreshToken := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims)
	refreshTokenString, err := refreshToken.SignedString([]byte(s.config.JWT.Secret))
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessTokenString,
		RefreshToken: refreshTokenString,
		ExpiresIn:    int64(s.config.JWT.JWTExpiresIn.Seconds()),
	}, nil
}

func (s *service) validateToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.config.JWT.Secret), nil
	})

	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

func toOwnerResponse(owner *Owner) OwnerResponse {
	return OwnerResponse{
		ID:        owner.ID.String(),
		FirstName: owner.FirstName,
		LastName:  owner.LastName,
		Email:     owner.Email,
		Role:      string(owner.Role),
		CreatedAt: owner.CreatedAt,
		UpdatedAt: owner.UpdatedAt,
	}
}
