// Package commands implements the CLI subcommands.
package commands

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"stockadvisors/internal/appconfig"
	"stockadvisors/internal/bridge"
	"stockadvisors/internal/database"
	"stockadvisors/internal/fsplugin"
	"stockadvisors/internal/handlers"
	"stockadvisors/internal/invoke"
	"stockadvisors/internal/logger"
	"stockadvisors/internal/notify"
	"stockadvisors/internal/opener"
	"stockadvisors/internal/plugins"
	"stockadvisors/internal/store"
	"stockadvisors/internal/tray"
	"stockadvisors/internal/version"
	"stockadvisors/internal/web"
	"stockadvisors/internal/window"
)

// RunServe starts the shell: local API server, event hub, tray menu.
func RunServe(args []string) int {
	flags := flag.NewFlagSet("serve", flag.ContinueOnError)
	var (
		port  int
		bind  string
		debug bool
	)
	flags.IntVar(&port, "port", 0, "listen port (overrides config)")
	flags.IntVar(&port, "p", 0, "listen port (shorthand)")
	flags.StringVar(&bind, "bind", "", "bind address (overrides config)")
	flags.StringVar(&bind, "b", "", "bind address (shorthand)")
	flags.BoolVar(&debug, "debug", false, "debug mode (console log, verbose)")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	cfg, err := appconfig.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return 1
	}
	if port > 0 {
		cfg.Server.Port = port
	}
	if bind != "" {
		cfg.Server.Bind = bind
	}
	if debug {
		cfg.Log.Mode = "debug"
		cfg.Log.Level = "debug"
	}

	logger.Init(cfg.Log)
	logger.Log.Info().
		Str("version", version.Version).
		Str("build", version.Build).
		Str("addr", cfg.ListenAddr()).
		Msg("starting stockadvisors")

	if err := database.Init(cfg.Database, cfg.IsDebug()); err != nil {
		logger.Log.Error().Err(err).Msg("database init failed")
		return 1
	}
	defer database.Close()

	// Plugin collaborators
	storeRepo := store.NewRepo()
	fsys := fsplugin.New(cfg.FS.Root)
	notifier := notify.NewManager()
	op := opener.New()

	registry := plugins.NewRegistry()
	registry.Register(plugins.Func{
		PluginName: "store",
		InitFn: func(ctx context.Context) error {
			sqlDB, err := database.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	})
	registry.Register(plugins.Func{
		PluginName: "fs",
		InitFn: func(context.Context) error {
			return fsys.EnsureRoot()
		},
	})
	registry.Register(plugins.Func{
		PluginName: "notification",
		InitFn: func(context.Context) error {
			notifier.Reload(cfg.Notify)
			return nil
		},
	})
	// Registration-only: the opener has no startup work, it just has to be
	// present before the main window can launch.
	registry.Register(plugins.Func{
		PluginName: "opener",
	})
	if err := registry.Init(context.Background()); err != nil {
		logger.Log.Error().Err(err).Msg("plugin init failed")
		return 1
	}
	defer registry.Close()

	// Event hub and bridge
	wsHub := web.NewWSHub(cfg.Server.CORSOrigins)
	go wsHub.Run()
	br := bridge.New(wsHub)

	// Main window, browser-backed
	windows := window.NewManager()
	windows.Register(window.NewBrowserWindow(window.MainLabel, cfg.FrontendURL(), op.OpenURL))

	invokeSvc := invoke.NewService(windows)

	secret := cfg.Auth.SessionSecret
	invokeH := handlers.NewInvokeHandler(invokeSvc)
	sessionH := handlers.NewSessionHandler(secret, cfg.SessionExpireDuration())
	windowH := handlers.NewWindowHandler(windows)
	storeH := handlers.NewStoreHandler(storeRepo)
	fsH := handlers.NewFSHandler(fsys)
	notifyH := handlers.NewNotifyHandler(notifier)
	openH := handlers.NewOpenHandler(op)

	router := web.NewRouter()
	router.POST("/api/v1/session", sessionH.Create)
	router.GET("/api/v1/health", handlers.Health)
	router.POST("/api/v1/commands/greet", invokeH.Greet)
	router.GET("/api/v1/commands/app-version", invokeH.AppVersion)
	router.POST("/api/v1/commands/show-main-window", invokeH.ShowMainWindow)
	router.POST("/api/v1/window/close-request", windowH.CloseRequested)
	router.GET("/api/v1/store", storeH.Get)
	router.PUT("/api/v1/store", storeH.Set)
	router.DELETE("/api/v1/store", storeH.Delete)
	router.GET("/api/v1/store/keys", storeH.Keys)
	router.POST("/api/v1/fs/read", fsH.Read)
	router.POST("/api/v1/fs/write", fsH.Write)
	router.GET("/api/v1/fs/list", fsH.List)
	router.DELETE("/api/v1/fs", fsH.Remove)
	router.POST("/api/v1/notify", notifyH.Send)
	router.POST("/api/v1/open", openH.Open)
	router.GET("/api/v1/ws", wsHub.HandleWS(secret))
	router.Handle("*", "/", spaHandler())

	skipAuth := []string{
		"/api/v1/session",
		"/api/v1/health",
		"/api/v1/ws", // token validated from the query string
	}
	handler := web.Chain(router,
		web.RecoveryMiddleware,
		web.SecurityHeadersMiddleware,
		web.RequestIDMiddleware,
		web.RequestLogMiddleware,
		web.CORSMiddleware(cfg.Server.CORSOrigins),
		web.MaxBodySizeMiddleware(2<<20),
		web.AuthMiddleware(secret, skipAuth),
	)

	// Bind first so a second instance fails fast instead of half-starting.
	ln, err := net.Listen("tcp", cfg.ListenAddr())
	if err != nil {
		logger.Log.Error().Err(err).Str("addr", cfg.ListenAddr()).Msg("listen failed (already running?)")
		return 1
	}
	srv := &http.Server{Handler: handler}
	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			logger.Log.Error().Err(err).Msg("http server stopped")
		}
	}()
	logger.Log.Info().Str("url", cfg.FrontendURL()).Msg("shell ready")

	shutdown := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}

	if tray.HasGUI() {
		// Quit from the tray is the only path that ends the process.
		tray.Run(func(host tray.Host) *tray.Controller {
			return tray.NewController(host, windows, br, func(code int) {
				logger.Log.Info().Msg("shutting down")
				shutdown()
				registry.Close()
				database.Close()
				os.Exit(code)
			})
		})
		return 0
	}

	// Headless: run until interrupted.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("shutting down")
	shutdown()
	return 0
}

// spaHandler serves the embedded frontend; unknown paths fall back to
// index.html so client-side routing works.
func spaHandler() http.HandlerFunc {
	dist, err := fs.Sub(web.StaticFS, "dist")
	if err != nil {
		return func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "frontend not bundled", http.StatusNotFound)
		}
	}
	fileServer := http.FileServer(http.FS(dist))
	return func(w http.ResponseWriter, r *http.Request) {
		p := strings.TrimPrefix(r.URL.Path, "/")
		if p != "" {
			if _, err := fs.Stat(dist, p); err == nil {
				fileServer.ServeHTTP(w, r)
				return
			}
		}
		r.URL.Path = "/"
		fileServer.ServeHTTP(w, r)
	}
}
