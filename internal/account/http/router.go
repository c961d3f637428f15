package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/paywave/accountd/internal/account/service"
	"github.com/paywave/accountd/internal/account/store"
	"github.com/paywave/accountd/pkg/httpx"
	"github.com/paywave/accountd/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store        store.Store
	UserService  *service.UserService
	TokenService *service.TokenService
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAccounts()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAccounts() {
	registerHandler := &RegisterHandler{UserService: r.UserService}
	loginHandler := &LoginHandler{TokenService: r.TokenService}
	usersHandler := &UsersHandler{UserService: r.UserService}

	r.Mux.Handle("POST /v1/accounts/register", registerHandler)
	r.Mux.Handle("POST /v1/accounts/login", loginHandler)
	r.Mux.Handle("POST /v1/accounts/logout", http.HandlerFunc(HandleLogout))

	r.Mux.Handle("GET /v1/accounts", http.HandlerFunc(usersHandler.HandleList))
	r.Mux.Handle("GET /v1/accounts/{id}", http.HandlerFunc(usersHandler.HandleGet))
	r.Mux.Handle("PATCH /v1/accounts/{id}", http.HandlerFunc(usersHandler.HandleUpdate))
	r.Mux.Handle("DELETE /v1/accounts/{id}", http.HandlerFunc(usersHandler.HandleDelete))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
