package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/comanda-app/table-service/internal/api"
	"github.com/comanda-app/table-service/internal/models"
)

// ScopeResolver turns an authenticated user id into the restaurant scope
// every operation is partitioned under. It hits the store on every call:
// the user record is the source of truth, nothing is cached, and an
// operation without a resolvable scope fails instead of defaulting to a
// global namespace.
type ScopeResolver struct {
	users UserStore
}

// NewScopeResolver creates a new scope resolver
func NewScopeResolver(users UserStore) *ScopeResolver {
	return &ScopeResolver{users: users}
}

// Resolve looks up the user and returns their scope.
func (r *ScopeResolver) Resolve(ctx context.Context, userID uuid.UUID) (models.Scope, error) {
	if userID == uuid.Nil {
		return models.Scope{}, api.Errorf(api.KindUnauthenticated, "not signed in")
	}

	user, err := r.users.GetByID(ctx, userID)
	if err != nil {
		if api.KindOf(err) == api.KindNotFound {
			return models.Scope{}, api.Errorf(api.KindUnauthenticated, "unknown user")
		}
		return models.Scope{}, err
	}

	if user.RestaurantID == uuid.Nil {
		return models.Scope{}, api.Errorf(api.KindUnscoped, "user has no restaurant")
	}

	return models.Scope{
		UserID:       user.ID,
		RestaurantID: user.RestaurantID,
		Role:         user.Role,
	}, nil
}
