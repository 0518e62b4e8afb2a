package main

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

	"health_tracker/internal/app"
	"health_tracker/internal/auth"
	"health_tracker/internal/records"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	setupEnvironment()

	rootCmd := &cobra.Command{
		Use:   "health-tracker",
		Short: "Sheet-backed health tracker API",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(hashPasswordCmd())
	rootCmd.AddCommand(recordsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func runServer() error {
	cfg, err := app.Load()
	if err != nil {
		return err
	}

	ctx := context.Background()
	svc, err := app.InitializeServices(ctx, cfg)
	if err != nil {
		return err
	}
	server := svc.NewServer(cfg)

	go func() {
		if err := server.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Info().Msg("Server stopped")
	return nil
}

func hashPasswordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print a bcrypt hash for seeding the users sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cost, _ := cmd.Flags().GetInt("cost")
			hash, err := auth.HashPassword(args[0], cost)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
	cmd.Flags().Int("cost", 10, "bcrypt cost")
	return cmd
}

func recordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "records",
		Short: "Inspect sheet records",
	}

	listCmd := &cobra.Command{
		Use:   "list <sheet>",
		Short: "Print every row of a sheet, tab separated",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			svc, err := app.InitializeServices(ctx, cfg)
			if err != nil {
				return err
			}

			rows, err := svc.Store.ListAll(ctx, args[0])
			if err != nil {
				return err
			}
			printRows(cmd, rows)
			return nil
		},
	}

	cmd.AddCommand(listCmd)
	return cmd
}

func printRows(cmd *cobra.Command, rows []records.Row) {
	out := cmd.OutOrStdout()
	for _, row := range rows {
		fmt.Fprintln(out, strings.Join(row, "\t"))
	}
}
