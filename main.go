// Command ludo-server starts the Ludo match server.
//
// It supports two modes:
//  1. "serve" (default) – runs the HTTP server exposing REST API, WebSocket, and an /mcp HTTP endpoint
//  2. "mcp" – runs an MCP stdio server and spins up an internal HTTP API if none is available
//
// Configuration comes from flags, environment variables (HOST, PORT,
// PRESET_DIR, DEBUG), and an optional .env file, in that order of precedence.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/urfave/cli/v3"

	"github.com/ludokit/ludo-server/api"
	"github.com/ludokit/ludo-server/game/config"
	"github.com/ludokit/ludo-server/game/service"
	"github.com/ludokit/ludo-server/game/session"
	"github.com/ludokit/ludo-server/transport/mcp"
	"github.com/ludokit/ludo-server/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Ludo Server"
)

// ServerConfig holds the environment-driven server configuration
type ServerConfig struct {
	Host      string `env:"HOST" envDefault:"localhost"`
	Port      int    `env:"PORT" envDefault:"8080"`
	PresetDir string `env:"PRESET_DIR"`
	Debug     bool   `env:"DEBUG"`
}

func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	} else {
		log.Println("Loaded environment variables from .env file")
	}

	envConfig, err := env.ParseAs[ServerConfig]()
	if err != nil {
		log.Fatalf("Failed to parse environment: %v", err)
	}

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:  "host",
			Usage: "HTTP server host",
			Value: envConfig.Host,
		},
		&cli.IntFlag{
			Name:  "port",
			Usage: "HTTP server port",
			Value: envConfig.Port,
		},
		&cli.StringFlag{
			Name:  "preset-dir",
			Usage: "Directory with additional JSON presets (built-ins always available)",
			Value: envConfig.PresetDir,
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "Enable debug logging",
			Value: envConfig.Debug,
		},
	}

	cmd := &cli.Command{
		Name:    "ludo-server",
		Usage:   "Ludo match server with REST, WebSocket and MCP transports",
		Version: Version,
		Flags:   flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runServe(cmd)
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Run the HTTP server (default)",
				Flags: flags,
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runServe(cmd)
				},
			},
			{
				Name:  "mcp",
				Usage: "Run an MCP stdio server, reusing a running HTTP server if available",
				Flags: flags,
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runStdioMCP(cmd)
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

// serverConfigFromCmd collapses flags and environment into the final config
func serverConfigFromCmd(cmd *cli.Command) ServerConfig {
	return ServerConfig{
		Host:      cmd.String("host"),
		Port:      int(cmd.Int("port")),
		PresetDir: cmd.String("preset-dir"),
		Debug:     cmd.Bool("debug"),
	}
}

func runServe(cmd *cli.Command) error {
	cfg := serverConfigFromCmd(cmd)
	setupLogging(cfg.Debug)

	log.Printf("Starting %s v%s", AppName, Version)

	matchService, err := initializeServices(cfg.PresetDir)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	return runHTTPServer(matchService, cfg)
}

func setupLogging(debug bool) {
	if debug {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	} else {
		log.SetFlags(log.LstdFlags)
	}
}

// runHTTPServer starts the HTTP server with REST API, WebSocket hub, and an
// /mcp proxy endpoint, and blocks until a shutdown signal arrives.
func runHTTPServer(matchService service.MatchService, cfg ServerConfig) error {
	hub := websocket.NewHub()
	go hub.Run()

	apiServer := api.NewServer(matchService, hub)

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	// MCP client for the /mcp endpoint proxies back into this server
	baseURL := fmt.Sprintf("http://%s", addr)
	mcpClient := mcp.NewClient(baseURL)

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)
	mainRouter.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpClient.GetMCPServer().HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	})

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("HTTP server listening on %s", addr)
		log.Printf("REST API: http://%s/api", addr)
		log.Printf("WebSocket: ws://%s/ws?match=<match_id>", addr)
		log.Printf("MCP endpoint: http://%s/mcp", addr)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	sig := <-stop
	log.Printf("Received signal: %v. Shutting down...", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	log.Println("Server stopped")
	return nil
}

// initializeServices wires the session and preset managers into the match
// service. It also starts a background cleanup routine for stale matches.
func initializeServices(presetDir string) (service.MatchService, error) {
	presetManager, err := config.NewManager(presetDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create preset manager: %w", err)
	}

	sessionManager := session.NewManager()

	matchService := service.NewMatchService(sessionManager, presetManager)

	go sessionCleanupRoutine(sessionManager)

	return matchService, nil
}

// sessionCleanupRoutine periodically removes matches that have not been
// accessed within the retention window.
func sessionCleanupRoutine(manager *session.Manager) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		removed := manager.CleanupExpiredSessions(24 * time.Hour)
		if removed > 0 {
			log.Printf("Cleaned up %d expired matches", removed)
		}
	}
}

// runStdioMCP runs an MCP stdio server. It tries to reuse an external API at
// the configured address; if unavailable, it starts an internal HTTP API
// bound to a random loopback port and targets that.
func runStdioMCP(cmd *cli.Command) error {
	cfg := serverConfigFromCmd(cmd)
	setupLogging(cfg.Debug)

	var baseURL string

	externalURL := fmt.Sprintf("http://%s:%d", cfg.Host, cfg.Port)
	log.Printf("Checking for external API server at %s...", externalURL)

	testClient := &http.Client{Timeout: 2 * time.Second}
	resp, err := testClient.Get(externalURL + "/health")
	if err == nil && resp.StatusCode < 500 {
		resp.Body.Close()
		log.Printf("External API server found at %s, using it for MCP", externalURL)
		baseURL = externalURL
	} else {
		log.Printf("No external API server found, starting internal HTTP server")

		matchService, err := initializeServices(cfg.PresetDir)
		if err != nil {
			return fmt.Errorf("failed to initialize services: %w", err)
		}

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("failed to get available port: %w", err)
		}

		internalAddr := fmt.Sprintf("127.0.0.1:%d", listener.Addr().(*net.TCPAddr).Port)
		log.Printf("Starting internal HTTP server on %s for MCP stdio", internalAddr)

		hub := websocket.NewHub()
		go hub.Run()

		apiServer := api.NewServer(matchService, hub)
		httpServer := &http.Server{Handler: apiServer}

		go func() {
			if err := httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
				log.Printf("Internal HTTP server error: %v", err)
			}
		}()

		// Wait a moment for the server to be ready
		time.Sleep(100 * time.Millisecond)

		baseURL = fmt.Sprintf("http://%s", internalAddr)
	}

	mcpClient := mcp.NewClient(baseURL)

	log.Println("MCP stdio server ready")
	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}

	return nil
}
