package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"azai/storage"
	"azai/web"
)

var (
	servePort   int
	serveHost   string
	serveDBPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local JSON API for normalization and stored timesheets",
	Long: `Start a local HTTP server exposing the normalization engine.

Endpoints:
- POST   /api/normalize[?persist=true]   extraction documents in, normalized results out
- POST   /api/units                      {"time_in", "time_out"} -> minutes, units, hours
- GET    /api/timesheets[?recommendation=]
- GET    /api/timesheets/:id
- DELETE /api/timesheets/:id

The server binds to localhost by default and has no authentication.`,
	Example: `
  # Start local server on default port
  azai serve

  # Start with explicit db and custom port
  azai serve --port 9090 --db ./azai.db
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadRuntime()
		if err != nil {
			return err
		}

		store, err := storage.OpenSQLite(serveDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		handler, err := web.NewServer(store, *cfg, logger)
		if err != nil {
			return err
		}

		addr, err := resolveServeAddr(serveHost, servePort)
		if err != nil {
			return err
		}
		server := &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.ListenAndServe()
		}()

		fmt.Printf("Listening on http://%s\n", addr)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-sigCh:
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				return fmt.Errorf("shutdown server: %w", err)
			}
			err := <-errCh
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVar(&servePort, "port", 8080, "HTTP port for the local API")
	serveCmd.Flags().StringVar(&serveHost, "host", "localhost", "Interface to bind")
	serveCmd.Flags().StringVar(&serveDBPath, "db", "./azai.db", "Path to local SQLite database")
}

func resolveServeAddr(host string, port int) (string, error) {
	if port < 1 || port > 65535 {
		return "", fmt.Errorf("invalid port %d (expected 1-65535)", port)
	}
	host = strings.TrimSpace(host)
	if host == "" {
		host = "localhost"
	}
	return fmt.Sprintf("%s:%d", host, port), nil
}
