package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coder/websocket"
	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	"github.com/inamate/drawkit/internal/api"
	"github.com/inamate/drawkit/internal/auth"
	"github.com/inamate/drawkit/internal/config"
	"github.com/inamate/drawkit/internal/drawing"
	"github.com/inamate/drawkit/internal/engine"
	mw "github.com/inamate/drawkit/internal/middleware"
	"github.com/inamate/drawkit/internal/notify"
)

func main() {
	hashKey := flag.String("hash-key", "", "print the ACCESS_KEY_HASH for the given key and exit")
	flag.Parse()

	if *hashKey != "" {
		hash, err := auth.HashKey(*hashKey, bcrypt.DefaultCost)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(hash)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	level, err := cfg.Level()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	pending, err := cfg.Pending()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	resolver, err := cfg.Resolver()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := drawing.New(
		drawing.WithLogger(logger.With("component", "drawing")),
		drawing.WithResolver(resolver),
		drawing.WithPending(pending),
	)
	eng := engine.NewEngine(d, cfg.HistorySize, engine.WithLogger(logger.With("component", "engine")))
	session := api.NewSession(eng)

	hub := notify.NewHub(session.Apply, logger.With("component", "notify"))
	d.Subscribe(hub.Publish)
	go hub.Run(ctx)

	authService := auth.NewService(cfg.JWTSecret, cfg.AccessKeyHash)
	authHandler := auth.NewHandler(authService)
	if !authService.Enabled() {
		slog.Warn("no ACCESS_KEY_HASH configured, editor is open to everyone")
	}

	apiHandler := api.NewHandler(session)

	r := mux.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS(cfg.Origins()))

	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Protected API routes
	apiRouter := r.PathPrefix("/api").Subrouter()
	apiRouter.Use(authService.AuthMiddleware)

	apiRouter.HandleFunc("/ops", apiHandler.SubmitOp).Methods("POST", "OPTIONS")
	apiRouter.HandleFunc("/render", apiHandler.Render).Methods("GET", "OPTIONS")
	apiRouter.HandleFunc("/state", apiHandler.State).Methods("GET", "OPTIONS")
	apiRouter.HandleFunc("/figures", apiHandler.ListFigures).Methods("GET", "OPTIONS")
	apiRouter.HandleFunc("/figures/{figureId}", apiHandler.GetFigure).Methods("GET", "OPTIONS")
	apiRouter.HandleFunc("/selection/bounds", apiHandler.SelectionBounds).Methods("GET", "OPTIONS")
	apiRouter.HandleFunc("/hit", apiHandler.HitTest).Methods("GET", "OPTIONS")

	// WebSocket endpoint
	acceptOpts := &websocket.AcceptOptions{OriginPatterns: originPatterns(cfg.Origins())}
	r.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		if authService.Enabled() {
			token := r.URL.Query().Get("token")
			if token == "" {
				http.Error(w, "missing token", http.StatusUnauthorized)
				return
			}
			if _, err := authService.ValidateToken(token); err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
		}
		hub.ServeWS(w, r, acceptOpts)
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")

		// Disconnect websocket clients before draining HTTP
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr, "historySize", cfg.HistorySize)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

// originPatterns turns allowed origins into the host patterns websocket
// Accept checks the Origin header against.
func originPatterns(origins []string) []string {
	patterns := make([]string, 0, len(origins))
	for _, o := range origins {
		if o == "*" {
			patterns = append(patterns, o)
			continue
		}
		u, err := url.Parse(o)
		if err != nil || u.Host == "" {
			patterns = append(patterns, o)
			continue
		}
		patterns = append(patterns, u.Host)
	}
	return patterns
}
