package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/obeli-sk/components-flyio/pkg/log"
	"github.com/obeli-sk/components-flyio/pkg/metrics"
	"github.com/obeli-sk/components-flyio/pkg/types"
)

// SecretWriter is the piece of the provider API the webhook needs.
type SecretWriter interface {
	SetSecret(ctx context.Context, appName types.AppName, key types.SecretKey, value string) error
}

// updateRequest is the inbound payload for a secret update.
type updateRequest struct {
	AppName string `json:"app_name"`
	Name    string `json:"name"`
	Value   string `json:"value"`
}

// Server accepts secret update webhooks and forwards them to the provider.
type Server struct {
	secrets SecretWriter
	logger  zerolog.Logger
	router  chi.Router
}

// NewServer wires the webhook routes over the given secret writer.
func NewServer(secrets SecretWriter) *Server {
	s := &Server{
		secrets: secrets,
		logger:  log.WithComponent("webhook"),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Post("/", s.handleUpdateSecret)
	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())
	s.router = r

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe runs the webhook server until the context is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("webhook server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleUpdateSecret(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	appName, err := types.NewAppName(req.AppName)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Errorf("invalid app_name: %w", err))
		return
	}
	key, err := types.NewSecretKey(req.Name)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Errorf("invalid name: %w", err))
		return
	}
	if req.Value == "" {
		s.respondError(w, http.StatusBadRequest, fmt.Errorf("value must not be empty"))
		return
	}

	if err := s.secrets.SetSecret(r.Context(), appName, key, req.Value); err != nil {
		s.logger.Error().Err(err).Str("app", req.AppName).Str("secret", req.Name).
			Msg("secret update failed")
		s.respondError(w, http.StatusBadGateway, err)
		return
	}

	s.logger.Info().Str("app", req.AppName).Str("secret", req.Name).Msg("secret updated")
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, `{"status":"ok"}`)
}

func (s *Server) respondError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
