package router

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/cors"

	"github.com/comanda-app/table-service/internal/api"
	"github.com/comanda-app/table-service/internal/api/handler"
	"github.com/comanda-app/table-service/internal/config"
	"github.com/comanda-app/table-service/internal/db/repository"
	"github.com/comanda-app/table-service/internal/middleware"
	"github.com/comanda-app/table-service/internal/service"
	"github.com/comanda-app/table-service/internal/websockets"
)

// Router wires repositories, services and handlers into one http.Handler
type Router struct {
	mux     *http.ServeMux
	handler http.Handler

	auth   *service.AuthService
	scopes *service.ScopeResolver
	hub    *websockets.Hub
}

// New creates a new router
func New(repos *repository.Repositories, hub *websockets.Hub, events service.Publisher, cfg *config.Config) (*Router, error) {
	assets, err := service.NewAssetStore(cfg.Assets.Dir, cfg.Assets.BaseURL)
	if err != nil {
		return nil, err
	}

	authService := service.NewAuthService(repos.User, service.JWTConfig{
		Secret:    cfg.JWT.Secret,
		ExpiresIn: cfg.JWT.ExpiresIn,
	})
	scopes := service.NewScopeResolver(repos.User)
	menuService := service.NewMenuService(repos.Menu, assets)
	lifecycle := service.NewLifecycleService(repos.Order, repos.Table, repos.Menu, events)
	layout := service.NewLayoutService(repos.Table, events)
	qr := service.TableQRGenerator{BaseURL: cfg.Assets.BaseURL}

	r := &Router{
		mux:    http.NewServeMux(),
		auth:   authService,
		scopes: scopes,
		hub:    hub,
	}

	authHandler := handler.NewAuthHandler(authService, scopes)
	menuHandler := handler.NewMenuHandler(menuService, scopes)
	tableHandler := handler.NewTableHandler(layout, qr, scopes)
	orderHandler := handler.NewOrderHandler(lifecycle, menuService, scopes, hub)
	restaurantHandler := handler.NewRestaurantHandler(repos.Restaurant, scopes)

	// Public routes
	r.mux.Handle("/api/auth/register", http.HandlerFunc(authHandler.HandleRegister))
	r.mux.Handle("/api/auth/login", http.HandlerFunc(authHandler.HandleLogin))
	r.mux.Handle("/ws", http.HandlerFunc(r.handleWebSocket))
	r.mux.Handle("/assets/", http.StripPrefix("/assets/", http.FileServer(http.Dir(assets.Dir()))))

	// Protected routes
	apiHandler := http.NewServeMux()
	apiHandler.Handle("/me", http.HandlerFunc(authHandler.HandleMe))
	apiHandler.Handle("/restaurant", http.HandlerFunc(restaurantHandler.HandleRestaurant))
	apiHandler.Handle("/menu", http.HandlerFunc(menuHandler.HandleMenu))
	apiHandler.Handle("/menu/", http.HandlerFunc(menuHandler.HandleMenu))
	apiHandler.Handle("/tables", http.HandlerFunc(tableHandler.HandleTables))
	apiHandler.Handle("/tables/", http.HandlerFunc(tableHandler.HandleTables))
	apiHandler.Handle("/orders", http.HandlerFunc(orderHandler.HandleOrders))
	apiHandler.Handle("/orders/", http.HandlerFunc(orderHandler.HandleOrders))

	apiChain := middleware.Logger(
		middleware.Auth(authService)(
			apiHandler,
		),
	)

	r.mux.Handle("/api/", http.StripPrefix("/api", apiChain))

	r.handler = cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(r.mux)

	return r, nil
}

// ServeHTTP implements the http.Handler interface
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.handler.ServeHTTP(w, req)
}

// handleWebSocket authenticates a staff device via a token query parameter
// and joins it to its restaurant's broadcast channel.
func (r *Router) handleWebSocket(w http.ResponseWriter, req *http.Request) {
	token := req.URL.Query().Get("token")
	if token == "" {
		api.WriteError(w, api.Errorf(api.KindUnauthenticated, "token is required"))
		return
	}

	claims, err := r.auth.ValidateToken(token)
	if err != nil {
		api.WriteError(w, api.Errorf(api.KindUnauthenticated, "invalid or expired token"))
		return
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		api.WriteError(w, api.Errorf(api.KindUnauthenticated, "invalid user id in token"))
		return
	}

	scope, err := r.scopes.Resolve(req.Context(), userID)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	conn, err := websockets.Upgrader.Upgrade(w, req, nil)
	if err != nil {
		// If upgrading fails, the upgrader has already written the error to the response
		return
	}

	websockets.ServeWs(r.hub, conn, scope.UserID.String(), scope.RestaurantID.String())
}
