package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/motorlot/catalog-api/internal/config"
	"github.com/motorlot/catalog-api/internal/database"
	"github.com/motorlot/catalog-api/internal/dialogflow"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

type Server struct {
	db             *database.DB
	cfg            *config.Config
	webhook        *dialogflow.Webhook
	botRateLimiter *rate.Limiter
}

func NewServer(db *database.DB, cfg *config.Config) *Server {
	return &Server{
		db:             db,
		cfg:            cfg,
		webhook:        dialogflow.NewWebhook(db, cfg.ChatResultLimit),
		botRateLimiter: rate.NewLimiter(rate.Every(time.Second), 5),
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{s.cfg.BaseURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.healthCheck)

		r.Route("/vehicles", func(r chi.Router) {
			r.Get("/", s.listVehicles)
			r.Get("/{id}", s.getVehicle)
			r.Post("/", s.createVehicle)
			r.Put("/{id}", s.updateVehicle)
			r.Delete("/{id}", s.deleteVehicle)

			r.Route("/{id}/photos", func(r chi.Router) {
				r.Get("/", s.listVehiclePhotos)
				r.Post("/", s.addVehiclePhoto)
				r.Delete("/{photoID}", s.deleteVehiclePhoto)
			})
		})

		r.Route("/brands", func(r chi.Router) {
			r.Get("/", s.listBrands)
			r.Get("/{id}", s.getBrand)
			r.Post("/", s.createBrand)
			r.Put("/{id}", s.updateBrand)
			r.Delete("/{id}", s.deleteBrand)
		})

		r.Route("/models", func(r chi.Router) {
			r.Get("/", s.listModels)
			r.Get("/{id}", s.getModel)
			r.Post("/", s.createModel)
			r.Put("/{id}", s.updateModel)
			r.Delete("/{id}", s.deleteModel)
		})

		r.Route("/items", func(r chi.Router) {
			r.Get("/", s.listItems)
			r.Get("/{id}", s.getItem)
			r.Post("/", s.createItem)
			r.Put("/{id}", s.updateItem)
			r.Delete("/{id}", s.deleteItem)
		})

		r.Route("/fuel-types", func(r chi.Router) {
			r.Get("/", s.listFuelTypes)
			r.Get("/{code}", s.getFuelType)
		})

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", s.listCustomers)
			r.Get("/{id}", s.getCustomer)
			r.Post("/", s.createCustomer)
			r.Put("/{id}", s.updateCustomer)
			r.Delete("/{id}", s.deleteCustomer)
			r.Post("/login", s.customerLogin)
			r.Post("/{id}/change-password", s.changeCustomerPassword)
		})

		r.Route("/sales", func(r chi.Router) {
			r.Get("/", s.listSales)
			r.Get("/{id}", s.getSale)
			r.Post("/", s.createSale)
			r.Put("/{id}", s.updateSale)
			r.Delete("/{id}", s.deleteSale)
		})

		r.Route("/dialogflow", func(r chi.Router) {
			r.With(s.rateLimitBot).Post("/webhook", s.dialogflowWebhook)
			r.Get("/test", s.dialogflowTest)
		})
	})

	// Serve frontend SPA
	s.serveFrontend(r)

	return r
}

// --- Middleware ---

func (s *Server) rateLimitBot(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.botRateLimiter.Allow() {
			writeError(w, http.StatusTooManyRequests, "Rate limit exceeded - please wait before retrying")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// --- Health ---

func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"status": "error", "database": "disconnected"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "database": "connected"})
}

// --- Frontend ---

func (s *Server) serveFrontend(r chi.Router) {
	staticDir := s.cfg.StaticDir

	if _, err := os.Stat(staticDir); os.IsNotExist(err) {
		log.Warn().Str("dir", staticDir).Msg("frontend static directory not found")
		return
	}

	fs := http.FileServer(http.Dir(staticDir))

	r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(staticDir, r.URL.Path)

		if _, err := os.Stat(path); os.IsNotExist(err) {
			http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
			return
		}

		fs.ServeHTTP(w, r)
	})
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Warn().Err(err).Msg("failed to write JSON response")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeStoreError maps classified storage errors onto status codes.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, database.ErrConflict):
		writeError(w, http.StatusConflict, "Duplicate entry")
	case errors.Is(err, database.ErrInvalidReference):
		writeError(w, http.StatusBadRequest, "Invalid foreign key reference")
	case errors.Is(err, database.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found")
	default:
		log.Error().Err(err).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func decodeJSON(r *http.Request, dst interface{}) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
