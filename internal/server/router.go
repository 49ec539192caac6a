package server

import (
	"net/http"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/prlsite/starters/internal/handlers"
	"github.com/prlsite/starters/internal/httpx"
	"github.com/prlsite/starters/internal/pdf"
	"github.com/prlsite/starters/internal/query"
	"github.com/prlsite/starters/internal/services"
	"github.com/prlsite/starters/internal/store"
)

// New constructs the root http.Handler with all routes and middlewares
// applied. The stores are injected so the process has exactly one write
// boundary per table. The query adapter may be nil, in which case /query
// answers 503 until a key is configured.
func New(db *gorm.DB, starters *store.StarterStore, clients *store.ClientDirectory, renderer *pdf.Renderer, adapter query.Adapter, log *zap.Logger) http.Handler {
	mux := http.NewServeMux()

	svc := services.NewStarterService(starters, clients, renderer, log)

	// --- Health endpoints ---
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	sh := handlers.NewStarterHandler(svc, starters, log)
	mux.HandleFunc("/starters", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			sh.List(w, r)
		case http.MethodPost:
			sh.Create(w, r)
		case http.MethodPut:
			sh.Reconcile(w, r)
		default:
			w.Header().Set("Allow", "GET,POST,PUT")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	})
	mux.HandleFunc("/starters/pdf", requireMethod(http.MethodGet, sh.PDF))
	mux.HandleFunc("/starters/report", requireMethod(http.MethodGet, sh.Report))

	ch := handlers.NewClientHandler(clients, log)
	mux.HandleFunc("/clients", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			ch.List(w, r)
		case http.MethodPost:
			ch.Create(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	})

	qh := handlers.NewQueryHandler(adapter, svc, log)
	mux.HandleFunc("/query", requireMethod(http.MethodPost, qh.Ask))

	return withRecover(withLogging(mux, log), log)
}

func requireMethod(method string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			w.Header().Set("Allow", method)
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
			return
		}
		next(w, r)
	}
}

func withLogging(next http.Handler, log *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func withRecover(next http.Handler, log *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error("panic recovered", zap.Any("panic", rec), zap.String("path", r.URL.Path))
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
