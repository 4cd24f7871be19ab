// Package mcp serves the Insights enrollment queries as MCP tools over stdio
// or streamable HTTP.
package mcp

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/doctoryes/insights-data/client"
	"github.com/doctoryes/insights-data/internal/config"
	"github.com/doctoryes/insights-data/mcp/internal/handlers"
)

// EndpointPath is where the streamable HTTP transport is mounted.
const EndpointPath = "/mcp"

const heartbeatInterval = 30 * time.Second

type toolRegisterer interface {
	RegisterTools(s *server.MCPServer) error
}

// NewServer builds an MCP server with every enrollment tool registered.
func NewServer(name string, c *client.Client) (*server.MCPServer, error) {
	s := server.NewMCPServer(
		name,
		client.Version,
		server.WithToolCapabilities(true),
	)

	regs := []struct {
		name    string
		handler toolRegisterer
	}{
		{"enrollment", handlers.NewEnrollmentHandler(c)},
	}
	for _, r := range regs {
		if err := r.handler.RegisterTools(s); err != nil {
			return nil, err
		}
		log.Debug().Str("handler", r.name).Msg("tools registered")
	}
	return s, nil
}

// NewStreamableHTTPServer wraps s in the streamable HTTP transport at EndpointPath.
func NewStreamableHTTPServer(s *server.MCPServer) *server.StreamableHTTPServer {
	return server.NewStreamableHTTPServer(
		s,
		server.WithEndpointPath(EndpointPath),
		server.WithHeartbeatInterval(heartbeatInterval),
	)
}

// RunMCPServer loads configuration from the environment and serves until the
// stdio stream ends or SIGINT/SIGTERM arrives.
func RunMCPServer() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	config.InitLogger()
	config.SetLogLevel(cfg.Level())

	log.Info().Str("base_url", cfg.BaseURL).Msg("Creating insights client")
	insights, err := client.New(cfg.BaseURL, cfg.APIKey,
		client.WithHTTPTimeout(cfg.HTTPTimeout),
		client.WithDebugLogging(cfg.Debug),
		client.WithRequestIDs(cfg.RequestIDs),
	)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create client")
		return err
	}
	defer func() {
		if err := insights.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing insights client")
		}
	}()

	s, err := NewServer(cfg.ServerName, insights)
	if err != nil {
		return err
	}

	if useStdio(cfg.MCPTransport) {
		// Stdio transport (for launched processes)
		log.Info().Msg("Starting insights MCP server (stdio transport)")
		return server.ServeStdio(s)
	}
	return serveHTTP(cfg, s)
}

func serveHTTP(cfg *config.Config, s *server.MCPServer) error {
	log.Info().Str("addr", cfg.MCPAddr).Str("path", EndpointPath).Msg("Starting insights MCP server (Streamable HTTP)")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	streamSrv := NewStreamableHTTPServer(s)
	srv := &http.Server{
		Addr:         cfg.MCPAddr,
		Handler:      streamSrv,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: 0, // SSE streams have no deadline
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err, ok := <-serveErr:
		if ok {
			log.Error().Err(err).Msg("HTTP server error")
			return err
		}
		return nil
	case sig := <-sigChan:
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	log.Info().Msg("Shutting down HTTP server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during HTTP server shutdown")
	}
	log.Info().Msg("Shutting down MCP streamable server...")
	if err := streamSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during MCP server shutdown")
	}
	log.Info().Msg("MCP server shutdown complete")
	return nil
}

// useStdio resolves the configured transport; "auto" picks stdio when stdin
// is not a terminal (launched by another process).
func useStdio(mode string) bool {
	switch mode {
	case "stdio":
		return true
	case "http":
		return false
	}
	if fileInfo, err := os.Stdin.Stat(); err == nil {
		return (fileInfo.Mode() & os.ModeCharDevice) == 0
	}
	return false
}
