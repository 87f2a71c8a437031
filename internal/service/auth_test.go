package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comanda-app/table-service/internal/api"
	"github.com/comanda-app/table-service/internal/mocks"
	"github.com/comanda-app/table-service/internal/models"
	"github.com/comanda-app/table-service/internal/service"
)

var testJWT = service.JWTConfig{Secret: "test-secret", ExpiresIn: 1}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	users := mocks.NewFakeUserStore()
	svc := service.NewAuthService(users, testJWT)

	restaurantID := uuid.New()
	user, err := svc.Register(ctx, models.RegisterRequest{
		Email:        "waiter@example.com",
		Password:     "s3cret-pass",
		Name:         "Waiter",
		Role:         models.RoleEmployee,
		RestaurantID: restaurantID.String(),
	})
	require.NoError(t, err)
	assert.Equal(t, restaurantID, user.RestaurantID)

	token, logged, err := svc.Login(ctx, "waiter@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.Equal(t, string(models.RoleEmployee), claims.Role)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	ctx := context.Background()
	users := mocks.NewFakeUserStore()
	svc := service.NewAuthService(users, testJWT)

	_, err := svc.Register(ctx, models.RegisterRequest{
		Email:        "waiter@example.com",
		Password:     "right-pass",
		Name:         "Waiter",
		Role:         models.RoleEmployee,
		RestaurantID: uuid.New().String(),
	})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "waiter@example.com", "wrong-pass")
	assert.Equal(t, api.KindUnauthenticated, api.KindOf(err))

	_, _, err = svc.Login(ctx, "nobody@example.com", "right-pass")
	assert.Equal(t, api.KindUnauthenticated, api.KindOf(err), "unknown email looks the same as a bad password")
}

func TestRegisterEmployeeNeedsRestaurant(t *testing.T) {
	svc := service.NewAuthService(mocks.NewFakeUserStore(), testJWT)

	_, err := svc.Register(context.Background(), models.RegisterRequest{
		Email:    "waiter@example.com",
		Password: "s3cret-pass",
		Name:     "Waiter",
		Role:     models.RoleEmployee,
	})
	assert.Equal(t, api.KindValidation, api.KindOf(err))
}

func TestRegisterAdminCannotJoinByID(t *testing.T) {
	svc := service.NewAuthService(mocks.NewFakeUserStore(), testJWT)

	_, err := svc.Register(context.Background(), models.RegisterRequest{
		Email:        "intruder@example.com",
		Password:     "s3cret-pass",
		Name:         "Intruder",
		Role:         models.RoleAdmin,
		RestaurantID: uuid.New().String(),
	})
	assert.Equal(t, api.KindValidation, api.KindOf(err), "admin on someone else's restaurant is rejected")
}

func TestRegisterAdminCreatesRestaurant(t *testing.T) {
	svc := service.NewAuthService(mocks.NewFakeUserStore(), testJWT)

	user, err := svc.Register(context.Background(), models.RegisterRequest{
		Email:          "owner@example.com",
		Password:       "s3cret-pass",
		Name:           "Owner",
		Role:           models.RoleAdmin,
		RestaurantName: "Casa Paco",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, user.RestaurantID)
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	ctx := context.Background()
	users := mocks.NewFakeUserStore()
	svc := service.NewAuthService(users, testJWT)
	other := service.NewAuthService(users, service.JWTConfig{Secret: "other-secret", ExpiresIn: 1})

	_, err := svc.Register(ctx, models.RegisterRequest{
		Email:        "waiter@example.com",
		Password:     "s3cret-pass",
		Name:         "Waiter",
		Role:         models.RoleEmployee,
		RestaurantID: uuid.New().String(),
	})
	require.NoError(t, err)

	token, _, err := svc.Login(ctx, "waiter@example.com", "s3cret-pass")
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)

	_, err = svc.ValidateToken(token + "x")
	assert.Error(t, err)
}
