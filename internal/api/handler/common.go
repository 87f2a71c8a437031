package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/comanda-app/table-service/internal/api"
	"github.com/comanda-app/table-service/internal/middleware"
	"github.com/comanda-app/table-service/internal/models"
	"github.com/comanda-app/table-service/internal/service"
)

var validate = validator.New()

// decodeAndValidate parses a JSON request body and checks its validate tags.
func decodeAndValidate(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return api.Errorf(api.KindValidation, "invalid request body")
	}
	if err := validate.Struct(v); err != nil {
		return api.Errorf(api.KindValidation, "%s", err.Error())
	}
	return nil
}

// resolveScope re-resolves the caller's restaurant scope from the store on
// every request; the token only proves identity.
func resolveScope(r *http.Request, scopes *service.ScopeResolver) (models.Scope, error) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		return models.Scope{}, api.Errorf(api.KindUnauthenticated, "not signed in")
	}
	return scopes.Resolve(r.Context(), userID)
}

func methodNotAllowed(w http.ResponseWriter) {
	api.WriteJSON(w, http.StatusMethodNotAllowed, api.Error{
		Kind:    api.KindValidation,
		Message: "method not allowed",
	})
}
