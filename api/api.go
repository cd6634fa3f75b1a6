package api

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"gemini-relay/backend"
	"gemini-relay/config"
	"gemini-relay/handler"
	"gemini-relay/logging"
)

//go:embed static
var staticFiles embed.FS

const shutdownTimeout = 5 * time.Second

var log = logging.GetLogger()

var _ handler.Generator = (*backend.Client)(nil)

// NewRouter wires every route through a single error stage and returns the
// CORS-wrapped handler.
func NewRouter(cfg *config.Config, gen handler.Generator) http.Handler {
	stage := handler.NewErrorStage()
	generateHandler := handler.NewHTTPHandler(gen)

	router := mux.NewRouter()
	router.NotFoundHandler = stage.NotFound()
	router.MethodNotAllowedHandler = stage.MethodNotAllowed()
	router.Use(handler.LogRequests, stage.Recover)

	// API routes
	apiRouter := router.PathPrefix("/api").Subrouter()
	apiRouter.NotFoundHandler = stage.NotFound()
	apiRouter.MethodNotAllowedHandler = stage.MethodNotAllowed()
	apiRouter.Handle("/generate", stage.Wrap(generateHandler.Generate)).Methods(http.MethodPost)

	router.Handle("/health", stage.Wrap(func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("Content-Type", "application/json")
		_, err := w.Write([]byte(`{"status":"ok"}`))
		return err
	})).Methods(http.MethodGet)

	// Frontend
	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	router.PathPrefix("/").
		Methods(http.MethodGet, http.MethodHead).
		Handler(http.FileServer(http.FS(static)))

	cors := handlers.CORS(
		handlers.AllowedOrigins(cfg.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)
	return cors(router)
}

// StartServer serves h on the configured address until ctx is cancelled, then
// shuts down gracefully.
func StartServer(ctx context.Context, cfg *config.Config, h http.Handler) error {
	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// Leaves room for the outbound call to finish or time out.
		WriteTimeout: cfg.RequestTimeout + 10*time.Second,
		IdleTimeout:  90 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting server on %s", server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Infoln("Shutting down server gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Infoln("Server stopped")
	return nil
}
