package main

import (
	"context"
	"fmt"
	"github.com/joonho-lee-free/tkshcool/internal/api"
	"github.com/joonho-lee-free/tkshcool/internal/config"
	"github.com/joonho-lee-free/tkshcool/internal/pkg/logger"
	"github.com/joonho-lee-free/tkshcool/internal/service/auth"
	"github.com/joonho-lee-free/tkshcool/internal/service/importing"
	"github.com/spf13/cobra"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const shutdownTimeout = 10 * time.Second

var (
	configFile string
	seedFile   string
)

func main() {
	root := &cobra.Command{
		Use:           "tkschool",
		Short:         "School meal delivery calendar, invoices and exports",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			logger.Sync()
		},
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ./config.yaml if present)")
	root.PersistentFlags().StringVar(&seedFile, "seed", "", "JSON seed for the memory store")

	root.AddCommand(serveCmd(), importCmd(), tokenCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var cfg *config.Config

func setup() error {
	if err := config.Init(configFile); err != nil {
		return err
	}

	var err error
	if cfg, err = config.Load(); err != nil {
		return err
	}
	return logger.Init(cfg.LogLevel, cfg.Development())
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			st, closeStore, err := openStore(ctx, cfg, seedFile)
			if err != nil {
				return err
			}
			defer closeStore()

			svc, err := api.NewAPIService(cfg, st)
			if err != nil {
				return err
			}
			go svc.Serve(cfg.HTTPAddr)
			logger.Infof(ctx, "listening on %s (store %s)", cfg.HTTPAddr, cfg.StoreDriver)

			<-ctx.Done()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return svc.Shutdown(shutdownCtx)
		},
	}
}

func importCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import every order workbook in a directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			st, closeStore, err := openStore(ctx, cfg, seedFile)
			if err != nil {
				return err
			}
			defer closeStore()

			results, err := importing.NewImportingService(st, cfg.SchoolCollection, cfg.ImportWorkers).ImportDir(ctx, dir)
			if err != nil {
				return err
			}

			failed := 0
			for _, r := range results {
				if r.Error != "" {
					failed++
					fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s: %s\n", r.File, r.Error)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "ok   %s -> %s (%d items)\n", r.File, r.DocID, r.Items)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d workbooks failed", failed, len(results))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", ".", "directory holding *_발주서_*.xlsx workbooks")
	return cmd
}

func tokenCmd() *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an admin bearer token for the import endpoint",
		RunE: func(cmd *cobra.Command, _ []string) error {
			token, err := auth.NewService(cfg.SecretKey).IssueAdminToken(cmd.Context(), subject, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "admin", "token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}
