package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"agrosmart/config"
	"agrosmart/database"
	"agrosmart/pkg/export"
	farmerRepo "agrosmart/pkg/farmer/repository"
	farmerRepoImp "agrosmart/pkg/farmer/repositoryImp"
	farmerSvcImp "agrosmart/pkg/farmer/serviceImp"
	"agrosmart/pkg/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	rootCmd := &cobra.Command{
		Use:          "agrosmart",
		Short:        "AgroSmart farmer registry",
		SilenceUsage: true,
		RunE:         func(cmd *cobra.Command, args []string) error { return serve(cmd.Context()) },
	}
	rootCmd.AddCommand(serveCommand(), migrateCommand(), exportCommand())
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web server (default)",
		RunE:  func(cmd *cobra.Command, args []string) error { return serve(cmd.Context()) },
	}
}

func migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the schema and seed the location catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer log.Sync()
			db, err := openDB(cfg, log, true)
			if err != nil {
				return err
			}
			closeDB(db, log)
			log.Info("migration complete", zap.String("driver", cfg.DBDriver))
			return nil
		},
	}
}

func exportCommand() *cobra.Command {
	var (
		filter farmerRepo.Filter
		format string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write farmer records to a CSV, XLSX or PDF file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer log.Sync()
			db, err := openDB(cfg, log, false)
			if err != nil {
				return err
			}
			defer closeDB(db, log)

			svc := farmerSvcImp.NewFarmerService(farmerRepoImp.New(db), nil, nil, log)
			farmers, err := svc.List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			scope := "all"
			switch {
			case filter.State != "" && filter.LGA != "":
				scope = filter.State + "_" + filter.LGA
			case filter.State != "":
				scope = filter.State
			}
			file, err := export.Build(format, scope, farmers, time.Now())
			if err != nil {
				return err
			}

			if out != "" {
				if err := os.WriteFile(out, file.Body, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", out, err)
				}
				log.Info("export written", zap.String("path", out), zap.Int("rows", len(farmers)))
				return nil
			}
			_, err = cmd.OutOrStdout().Write(file.Body)
			return err
		},
	}
	cmd.Flags().StringVar(&filter.State, "state", "", "Only farmers in this state")
	cmd.Flags().StringVar(&filter.LGA, "lga", "", "Only farmers in this LGA")
	cmd.Flags().StringVar(&filter.Crop, "crop", "", "Only crops containing this text")
	cmd.Flags().StringVarP(&format, "format", "f", export.FormatCSV, "Output format: csv, xlsx, pdf")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	return cmd
}

func setup() (config.AppConfig, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, nil, err
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogJSON)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, log, nil
}

func openDB(cfg config.AppConfig, log *zap.Logger, seed bool) (*gorm.DB, error) {
	db, err := database.Open(cfg.DBDriver, cfg.DBPath, log.Named("gorm"))
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		closeDB(db, log)
		return nil, err
	}
	if seed {
		if err := database.Seed(db); err != nil {
			closeDB(db, log)
			return nil, fmt.Errorf("seed: %w", err)
		}
	}
	return db, nil
}

func closeDB(db *gorm.DB, log *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Warn("close database", zap.Error(err))
	}
}

func serve(ctx context.Context) error {
	// 1) Config + logger
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	// 2) DB: migrate, seed catalog on first start
	db, err := openDB(cfg, log, cfg.SeedCatalog)
	if err != nil {
		return err
	}
	defer closeDB(db, log)

	// 3) Echo with every component wired
	e, err := buildServer(cfg, db, log)
	if err != nil {
		return err
	}

	// 4) Run until SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening", zap.String("addr", ":"+cfg.Port), zap.String("db", cfg.DBDriver), zap.String("advisory", cfg.AdvisoryMode))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return e.Shutdown(sctx)
	})
	return g.Wait()
}
