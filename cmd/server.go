package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"stripper/api"
	"stripper/config"
	"stripper/logger"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var standaloneServerPort string

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Starts the HTTP API used by editor integrations",
	Long: `Starts an HTTP server exposing POST /api/strip for in-memory documents and
read-only access to the run history under /api/runs.
Press Ctrl+C to shut it down gracefully.`,
	Run: func(cmd *cobra.Command, args []string) {
		portToUse := standaloneServerPort
		if !cmd.Flags().Changed("port") {
			portToUse = config.AppConfig.Server.Port
			logger.Debug("Using server port from config: %s", portToUse)
		}
		if portToUse == "" {
			portToUse = "8779"
		}

		if openHistory() {
			logger.ServerInfo("Server Command: run history available under /api/runs")
		} else {
			logger.ServerInfo("Server Command: run history disabled; /api/runs will answer 503")
		}

		mainMux := http.NewServeMux()
		mainMux.Handle("/api/", http.StripPrefix("/api", api.NewRouter()))

		server := &http.Server{
			Addr:              ":" + portToUse,
			Handler:           mainMux,
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			logger.ServerInfo("Server Command: Shutdown signal received...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				logger.ServerError("Server Command: Graceful shutdown failed: %v", err)
			}
		}()

		logger.ServerInfo("Server Command: Listening on :%s", portToUse)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Could not start server: %v", err)
		}
		logger.ServerInfo("Server Command: Stopped.")
	},
}

func init() {
	serverCmd.Flags().StringVarP(&standaloneServerPort, "port", "p", "8779", "Port for the server to listen on (overrides config)")
	rootCmd.AddCommand(serverCmd)
}
