package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/comanda-app/table-service/internal/api"
	"github.com/comanda-app/table-service/internal/models"
)

// JWTConfig holds configuration for JWT token generation
type JWTConfig struct {
	Secret    string
	ExpiresIn int // hours
}

// AuthService handles authentication and account registration
type AuthService struct {
	users     UserStore
	jwtConfig JWTConfig
}

// NewAuthService creates a new authentication service
func NewAuthService(users UserStore, jwtConfig JWTConfig) *AuthService {
	return &AuthService{
		users:     users,
		jwtConfig: jwtConfig,
	}
}

// Claims represents JWT claims
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Login authenticates a user and returns a JWT token
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, api.Errorf(api.KindUnauthenticated, "invalid credentials")
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return "", nil, api.Errorf(api.KindUnauthenticated, "invalid credentials")
	}

	token, err := s.generateToken(user.ID, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return token, user, nil
}

// Register creates a new account. The role is fixed here and never changes
// afterwards. Admins always get a fresh restaurant created and owned by
// them; employees must name the restaurant they join. Joining an existing
// restaurant as admin would let anyone claim someone else's restaurant, so
// join-by-id is employee only.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		Name:         req.Name,
		Role:         req.Role,
	}

	if req.RestaurantID != "" {
		if req.Role != models.RoleEmployee {
			return nil, api.Errorf(api.KindValidation, "only employees may join an existing restaurant")
		}
		restaurantID, parseErr := uuid.Parse(req.RestaurantID)
		if parseErr != nil {
			return nil, api.Errorf(api.KindValidation, "invalid restaurant id")
		}
		user.RestaurantID = restaurantID
		return s.users.Create(ctx, user)
	}

	if req.Role != models.RoleAdmin {
		return nil, api.Errorf(api.KindValidation, "employees must join an existing restaurant")
	}

	name := req.RestaurantName
	if name == "" {
		name = req.Name
	}

	return s.users.CreateWithRestaurant(ctx, user, models.Restaurant{Name: name, Email: req.Email})
}

// UpdateProfile updates the caller's editable profile fields.
func (s *AuthService) UpdateProfile(ctx context.Context, scope models.Scope, req models.ProfileUpdateRequest) (*models.User, error) {
	return s.users.UpdateProfile(ctx, scope.UserID, req.Name, req.Email)
}

// generateToken generates a JWT token for a user
func (s *AuthService) generateToken(userID uuid.UUID, role models.UserRole) (string, error) {
	expirationTime := time.Now().Add(time.Duration(s.jwtConfig.ExpiresIn) * time.Hour)

	claims := &Claims{
		UserID: userID.String(),
		Role:   string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtConfig.Secret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ValidateToken validates a JWT token and returns the claims
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtConfig.Secret), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
