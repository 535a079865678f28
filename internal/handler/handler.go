package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"invdesk/internal/auth"
	"invdesk/internal/service"
)

// Handler is the browser-facing console surface. It adapts HTTP requests
// onto the auth manager and entity services; all data comes from the
// remote inventory API.
type Handler struct {
	router *chi.Mux
	log    zerolog.Logger

	auth      *auth.Manager
	items     *service.Items
	customers *service.Customers
	sales     *service.Sales
	reports   *service.Reports
}

func New(log zerolog.Logger, authMgr *auth.Manager, items *service.Items, customers *service.Customers, sales *service.Sales, reports *service.Reports) *Handler {
	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(requestLogger(log))

	h := &Handler{
		router:    router,
		log:       log,
		auth:      authMgr,
		items:     items,
		customers: customers,
		sales:     sales,
		reports:   reports,
	}

	h.registerRoutes()
	return h
}

func (h *Handler) registerRoutes() {
	h.router.Get("/health", h.HealthCheck)

	h.router.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/register", h.Register)
		r.Post("/logout", h.Logout)
		r.Get("/me", h.Me)
	})

	h.router.Group(func(r chi.Router) {
		r.Use(h.requireSession)

		r.Route("/items", func(r chi.Router) {
			r.Get("/", h.ListItems)
			r.Post("/", h.CreateItem)
			r.Get("/{id}", h.GetItem)
			r.Put("/{id}", h.UpdateItem)
			r.Delete("/{id}", h.DeleteItem)
		})

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", h.ListCustomers)
			r.Post("/", h.CreateCustomer)
			r.Get("/{id}", h.GetCustomer)
			r.Put("/{id}", h.UpdateCustomer)
			r.Delete("/{id}", h.DeleteCustomer)
		})

		r.Route("/sales", func(r chi.Router) {
			r.Get("/", h.ListSales)
			r.Post("/", h.CreateSale)
			r.Get("/customer/{id}", h.CustomerLedger)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/dashboard", h.Dashboard)
			r.Get("/sales", h.SalesReport)
			r.Post("/sales/email", h.EmailSalesReport)
			r.Get("/inventory", h.InventoryReport)
		})
	})
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (h *Handler) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.auth.Authenticated() {
			writeMessage(w, http.StatusUnauthorized, "sign in to continue")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			var evt *zerolog.Event
			switch {
			case ww.Status() >= 500:
				evt = log.Error()
			case ww.Status() >= 400:
				evt = log.Warn()
			default:
				evt = log.Info()
			}
			evt.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("request completed")
		})
	}
}
