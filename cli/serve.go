package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"smash/api"
	"smash/config"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const (
	// ServerReadTimeout is the HTTP server read timeout
	ServerReadTimeout = 30 * time.Second

	// ServerWriteTimeout covers the longest tool run plus the response
	ServerWriteTimeout = 5 * time.Minute

	// ServerIdleTimeout is the HTTP server idle timeout
	ServerIdleTimeout = 60 * time.Second

	// GracefulShutdownTimeout is the timeout for graceful shutdown
	GracefulShutdownTimeout = 10 * time.Second
)

func newServeCommand(a *app) *cobra.Command {
	var host, port, tempDir string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the local HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("host") {
				a.cfg.Host = host
			}
			if cmd.Flags().Changed("port") {
				a.cfg.Port = port
			}
			if cmd.Flags().Changed("temp-dir") {
				a.cfg.TempDir = tempDir
				a.tools = a.newTools()
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
	cmd.Flags().StringVar(&host, "host", "", "Address to listen on (default "+config.DefaultHost+")")
	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on")
	cmd.Flags().StringVar(&tempDir, "temp-dir", "", "Directory for uploaded files")
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	cfg := a.cfg
	log := a.logger

	// Report tool availability on startup; a missing tool only disables
	// the operations that need it.
	for _, find := range []struct {
		name string
		fn   func() (string, bool)
	}{
		{"ghostscript", a.tools.FindGhostscript},
		{"qpdf", a.tools.FindQPDF},
	} {
		if path, ok := find.fn(); ok {
			log.WithFields(logrus.Fields{"tool": find.name, "path": path}).Info("tool available")
		} else {
			log.WithField("tool", find.name).Warn("tool not found, dependent operations will fail")
		}
	}

	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	apiConfig := &api.Config{
		MaxFileSize: cfg.MaxFileSize,
		TempDir:     cfg.TempDir,
		Tools:       a.tools,
		Logger:      log,
	}
	if !isLoopback(cfg.Host) {
		log.WithField("host", cfg.Host).Warn("API is reachable from other machines and reads and writes any path it is given")
	}
	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, cfg.Port),
		Handler:      api.NewRouter(apiConfig),
		ReadTimeout:  ServerReadTimeout,
		WriteTimeout: ServerWriteTimeout,
		IdleTimeout:  ServerIdleTimeout,
	}

	sweepCtx, cancelSweep := context.WithCancel(ctx)
	defer cancelSweep()
	go api.RunSweeper(sweepCtx, apiConfig)

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(logrus.Fields{
			"addr":          srv.Addr,
			"max_file_size": cfg.MaxFileSize,
			"temp_dir":      cfg.TempDir,
		}).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), GracefulShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("server exited gracefully")
	return nil
}

func isLoopback(host string) bool {
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
