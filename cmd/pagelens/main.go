// Entry point for the pagelens HTTP service: chi router over the analysis
// service, with an optional MCP stdio transport.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/pagelens/pagelens/analysis"
	"github.com/pagelens/pagelens/capture"
	"github.com/pagelens/pagelens/idgen"
	"github.com/pagelens/pagelens/kit"
	"github.com/pagelens/pagelens/store"
)

func main() {
	logLevel := env("LOG_LEVEL", "info")
	var lvl slog.Level
	switch logLevel {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)

	cfg := &Config{}
	if path := os.Getenv("PAGELENS_CONFIG"); path != "" {
		loaded, err := LoadConfigFile(path)
		if err != nil {
			slog.Error("config file", "path", path, "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	cfg.applyEnv()
	cfg.defaults()

	// Signal context.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		slog.Error("store", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	mgr := capture.NewManager(capture.Config{
		RemoteURL:       cfg.Browser.ChromeURL,
		NavigateTimeout: cfg.Browser.NavigateTimeout,
		SettleDelay:     cfg.Browser.SettleDelay,
		RecycleInterval: cfg.Browser.RecycleInterval,
		Logger:          logger,
	})
	if err := mgr.Start(ctx); err != nil {
		slog.Error("browser", "error", err)
		os.Exit(1)
	}
	defer mgr.Close()

	svc := analysis.New(mgr, st, &analysis.Config{
		ScreenshotDir: cfg.ScreenshotDir,
		SnapshotDir:   cfg.SnapshotDir,
		RecentLimit:   cfg.RecentLimit,
	}, logger)

	// MCP stdio mode: serve tools instead of HTTP.
	if env("MCP_TRANSPORT", "") == "stdio" {
		mcpSrv := mcp.NewServer(&mcp.Implementation{
			Name:    "pagelens",
			Version: "1.0.0",
		}, nil)
		svc.RegisterMCP(mcpSrv)

		slog.Info("MCP stdio starting")
		if err := mcpSrv.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
			slog.Error("MCP stdio", "error", err)
			os.Exit(1)
		}
		return
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, 200, map[string]string{"status": "ok"})
	})

	r.Post("/api/analyze", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			URL    string `json:"url"`
			Device string `json:"device_type"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeJSON(w, 400, map[string]string{"error": "invalid JSON body"})
			return
		}
		a, err := svc.Analyze(req.Context(), body.URL, body.Device)
		if err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		writeJSON(w, 200, a)
	})

	r.Get("/api/analyze/{id}", func(w http.ResponseWriter, req *http.Request) {
		a, err := svc.Get(req.Context(), chi.URLParam(req, "id"))
		if err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		writeJSON(w, 200, a)
	})

	r.Get("/api/summary/{id}", func(w http.ResponseWriter, req *http.Request) {
		sum, err := svc.Summary(req.Context(), chi.URLParam(req, "id"))
		if err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		writeJSON(w, 200, sum)
	})

	r.Get("/api/analyses", func(w http.ResponseWriter, req *http.Request) {
		rows, err := svc.Recent(req.Context(), queryInt(req, "limit", 0))
		if err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		if rows == nil {
			rows = []*store.Analysis{}
		}
		writeJSON(w, 200, rows)
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second, // a cold analysis can take a while
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown", "error", err)
	}
	slog.Info("server stopped")
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, analysis.ErrInvalidInput):
		return 400
	case errors.Is(err, store.ErrNotFound):
		return 404
	case errors.Is(err, analysis.ErrCaptureFailed):
		return 502
	default:
		return 500
	}
}

// requestLogger stamps a request ID into the context and logs each request.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := idgen.New()
			ctx := kit.WithRequestID(r.Context(), id)
			ctx = kit.WithRemoteAddr(ctx, r.RemoteAddr)

			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
				"request_id", id,
			)
		})
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

func queryInt(r *http.Request, key string, def int) int {
	s := r.URL.Query().Get(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
