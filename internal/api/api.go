// Package api exposes the REST surface of Settle over gorilla/mux.
// Handlers decode JSON, resolve the acting user from the session token, call
// into the service layer and translate classified errors to status codes.
package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/settleapp/settle/internal/auth"
	"github.com/settleapp/settle/internal/service"
	"github.com/settleapp/settle/internal/storage"
)

// API owns the router and the services behind it.
type API struct {
	router     *mux.Router
	store      storage.Store
	jwtManager *auth.JWTManager

	users     *service.UserService
	groups    *service.GroupService
	expenses  *service.ExpenseService
	payments  *service.PaymentService
	dashboard *service.DashboardService
}

// New creates the API and registers all routes.
func New(
	store storage.Store,
	jwtManager *auth.JWTManager,
	users *service.UserService,
	groups *service.GroupService,
	expenses *service.ExpenseService,
	payments *service.PaymentService,
	dashboard *service.DashboardService,
) *API {
	a := &API{
		router:     mux.NewRouter(),
		store:      store,
		jwtManager: jwtManager,
		users:      users,
		groups:     groups,
		expenses:   expenses,
		payments:   payments,
		dashboard:  dashboard,
	}
	a.setupRoutes()
	return a
}

func (a *API) setupRoutes() {
	// Registered with Use so mux has matched a route and the route template
	// is available for labels.
	a.router.Use(metricsMiddleware)

	a.router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Public endpoints
	a.router.HandleFunc("/api/v1/users/register", a.handleRegister).Methods("POST")
	a.router.HandleFunc("/api/v1/users/login", a.handleLogin).Methods("POST")

	// Protected endpoints
	protected := a.router.PathPrefix("/api/v1").Subrouter()
	protected.Use(a.authMiddleware)

	protected.HandleFunc("/users/logout", a.handleLogout).Methods("POST")
	protected.HandleFunc("/users/me", a.handleCurrentUser).Methods("GET")
	protected.HandleFunc("/users/profile", a.handleUpdateProfile).Methods("PUT")
	protected.HandleFunc("/users/preferences", a.handleUpdatePreferences).Methods("PUT")
	protected.HandleFunc("/users/change-password", a.handleChangePassword).Methods("POST")

	protected.HandleFunc("/groups", a.handleListGroups).Methods("GET")
	protected.HandleFunc("/groups", a.handleCreateGroup).Methods("POST")
	protected.HandleFunc("/groups/{groupId}", a.handleGetGroup).Methods("GET")

	protected.HandleFunc("/expenses/group/{groupId}", a.handleListExpenses).Methods("GET")
	protected.HandleFunc("/expenses/group/{groupId}", a.handleAddExpense).Methods("POST")
	protected.HandleFunc("/expenses/analytics/{groupId}", a.handleCategoryBreakdown).Methods("GET")

	protected.HandleFunc("/payments/settle/{groupId}", a.handleSettleUp).Methods("POST")

	protected.HandleFunc("/dashboard/balance", a.handleOverallBalance).Methods("GET")
	protected.HandleFunc("/dashboard/group-summary/{groupId}", a.handleGroupSummary).Methods("GET")
	protected.HandleFunc("/dashboard/recent-expenses", a.handleRecentExpenses).Methods("GET")
	protected.HandleFunc("/dashboard/total-expenses-count", a.handleExpenseCount).Methods("GET")
}

// Handler returns the full middleware-wrapped handler.
func (a *API) Handler() http.Handler {
	return loggingMiddleware(a.router)
}
