package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/quoteline/premium-cli/internal/artifact"
	"github.com/quoteline/premium-cli/internal/feature"
	"github.com/quoteline/premium-cli/internal/model"
	"github.com/quoteline/premium-cli/internal/pipeline"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the quote HTTP server",
	Long: `Serve premium predictions over HTTP.

Routes:
  POST /v1/quote   predict a premium for one applicant
  GET  /v1/schema  the frozen feature schema and its hash
  GET  /health     liveness probe

Artifacts are loaded once before the listener starts; a missing or
corrupt artifact store aborts startup.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		p, registry, err := initEnv()
		if err != nil {
			return err
		}

		r := newRouter(p, registry, cfg.Server.RateLimit, cfg.Server.Burst)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// newRouter builds the quote API router. Split out so handler tests
// can exercise it without a listener.
func newRouter(p *pipeline.Pipeline, registry *artifact.Registry, rps float64, burst int) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))
	if rps > 0 {
		r.Use(rateLimiter(rate.NewLimiter(rate.Limit(rps), burst)))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/v1/schema", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"columns":          feature.Columns,
			"schema_hash":      feature.SchemaHash(),
			"manifest_version": registry.Manifest().Version,
		})
	})

	r.Post("/v1/quote", quoteHandler(p))

	return r
}

// quoteResponse is the wire shape of a successful quote.
type quoteResponse struct {
	QuoteID   string  `json:"quote_id"`
	Premium   int64   `json:"premium"`
	Formatted string  `json:"formatted"`
	Cohort    string  `json:"cohort"`
	RiskScore float64 `json:"risk_score"`
}

// quoteHandler predicts a premium for the posted applicant. Invalid
// input is a 400 with the validation message; schema mismatches are a
// 500, since they signal a deployment bug rather than user error.
func quoteHandler(p *pipeline.Pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var a model.Applicant
		if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}

		pred, err := p.Predict(r.Context(), a)
		if err != nil {
			if errors.Is(err, model.ErrInvalidInput) {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
				return
			}
			zap.L().Error("quote failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "prediction failed"})
			return
		}

		writeJSON(w, http.StatusOK, quoteResponse{
			QuoteID:   uuid.New().String(),
			Premium:   pred.Premium,
			Formatted: model.FormatPremium(pred.Premium),
			Cohort:    pred.Cohort,
			RiskScore: pred.RiskScore,
		})
	}
}

// rateLimiter applies a shared token bucket across all requests.
func rateLimiter(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
