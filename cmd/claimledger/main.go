package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/spf13/cobra"

	"github.com/claimledger-lab/claimledger/internal/blob"
	"github.com/claimledger-lab/claimledger/internal/config"
	"github.com/claimledger-lab/claimledger/internal/core/awsutil"
	"github.com/claimledger-lab/claimledger/internal/core/storage"
	"github.com/claimledger-lab/claimledger/internal/core/storage/dynamo"
	"github.com/claimledger-lab/claimledger/internal/core/storage/memory"
	"github.com/claimledger-lab/claimledger/internal/core/storage/postgres"
	"github.com/claimledger-lab/claimledger/internal/extraction"
	"github.com/claimledger-lab/claimledger/internal/fraud"
	"github.com/claimledger-lab/claimledger/internal/intake"
	"github.com/claimledger-lab/claimledger/internal/ledger"
	"github.com/claimledger-lab/claimledger/internal/lifecycle"
	"github.com/claimledger-lab/claimledger/internal/migrations"
	"github.com/claimledger-lab/claimledger/internal/notify"
	"github.com/claimledger-lab/claimledger/internal/projection"
	"github.com/claimledger-lab/claimledger/internal/server"
	"github.com/claimledger-lab/claimledger/internal/stream"
)

const defaultConfigPath = "claimledger.yaml"

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "claimledger",
		Short:         "Insurance claim intake with a lifecycle ledger",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), configPath)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath, "Path to configuration file")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), configPath)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create or migrate the ledger tables of the configured database",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd.Context(), configPath)
		},
	})

	return root
}

// loadConfig reads the config file. The default path is optional so the
// service starts from defaults and env alone.
func loadConfig(path string) (*config.Config, error) {
	if path == defaultConfigPath {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			path = ""
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		return nil, err
	}
	slog.Info("Loaded config",
		"addr", cfg.Server.Addr(),
		"database", cfg.Database.Type,
		"extraction", cfg.Extraction.Enabled,
		"fraud_endpoint", cfg.Fraud.Endpoint,
		"smtp_host", cfg.Notify.SMTPHost,
	)
	return cfg, nil
}

func runMigrate(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	switch cfg.Database.Type {
	case "postgres":
	case "dynamodb":
		client, err := newDynamoClient(ctx, cfg.Database.DynamoDB)
		if err != nil {
			return err
		}
		return dynamo.EnsureTables(ctx, client, dynamoTables(cfg.Database.DynamoDB))
	default:
		return fmt.Errorf("migrate requires database.type postgres or dynamodb, got %q", cfg.Database.Type)
	}

	db, err := postgres.Open(cfg.Database.DSN, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		return err
	}
	defer db.Close()

	if err := migrations.RunMigrations(db, true); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		return err
	}
	state, err := migrations.CurrentState(db)
	if err != nil {
		return err
	}
	fmt.Printf("schema version %d (dirty=%t)\n", state.Version, state.Dirty)
	return nil
}

func runServe(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	// 1. Storage
	var (
		store  storage.ClaimStore
		health server.HealthChecker
	)
	switch cfg.Database.Type {
	case "postgres":
		db, err := postgres.Open(cfg.Database.DSN, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)
		if err != nil {
			slog.Error("Failed to initialize database", "error", err)
			return err
		}
		if err := migrations.RunMigrations(db, cfg.Database.AutoMigrate); err != nil {
			db.Close()
			slog.Error("Failed to run database migrations", "error", err)
			return err
		}
		adapter, err := postgres.NewAdapter(db)
		if err != nil {
			db.Close()
			slog.Error("Failed to initialize claim store", "error", err)
			return err
		}
		defer adapter.Close()
		store, health = adapter, adapter
	case "dynamodb":
		client, err := newDynamoClient(ctx, cfg.Database.DynamoDB)
		if err != nil {
			return err
		}
		if cfg.Database.AutoMigrate {
			if err := dynamo.EnsureTables(ctx, client, dynamoTables(cfg.Database.DynamoDB)); err != nil {
				slog.Error("Failed to create DynamoDB tables", "error", err)
				return err
			}
		}
		dynamoStore, err := dynamo.NewStore(client, dynamoTables(cfg.Database.DynamoDB))
		if err != nil {
			return err
		}
		store, health = dynamoStore, dynamoStore
	default:
		store = memory.NewClaimStore()
		slog.Info("Using in-memory claim store; claims are lost on restart")
	}

	var (
		blobs     blob.Store
		serveOpts = server.Options{
			Mode:           cfg.Server.Mode,
			MaxConnections: cfg.Server.MaxConnections,
			CORSOrigins:    cfg.Server.CORSOrigins,
		}
	)
	switch cfg.Storage.Backend {
	case "s3":
		s3Cfg := cfg.Storage.S3
		awsCfg, err := awsutil.Load(ctx, s3Cfg.Region, s3Cfg.Endpoint)
		if err != nil {
			return err
		}
		blobs, err = blob.NewS3StoreFromConfig(awsCfg, blob.S3Config{
			Bucket:     s3Cfg.Bucket,
			Prefix:     s3Cfg.Prefix,
			PublicURL:  s3Cfg.PublicURL,
			PresignTTL: s3Cfg.PresignTTL,
		})
		if err != nil {
			slog.Error("Failed to initialize S3 document store", "error", err)
			return err
		}
	default:
		files, err := blob.NewFileStore(cfg.Storage.UploadDir, cfg.Storage.URLPrefix)
		if err != nil {
			slog.Error("Failed to initialize upload directory", "error", err)
			return err
		}
		blobs = files
		serveOpts.UploadDir, serveOpts.UploadPrefix = files.Root(), files.URLPrefix()
	}

	// 2. Adapters
	var notifier notify.Notifier = notify.LogNotifier{}
	if cfg.Notify.SMTPHost != "" {
		notifier = notify.NewSMTPNotifier(notify.SMTPConfig{
			Host:     cfg.Notify.SMTPHost,
			Port:     cfg.Notify.SMTPPort,
			From:     cfg.Notify.From,
			Username: cfg.Notify.Username,
			Password: cfg.Notify.Password,
		})
	}

	var (
		extractor extraction.Extractor
		describer extraction.Describer
	)
	if cfg.Extraction.Enabled {
		client, err := extraction.NewClient(extraction.Config{
			APIKey:        cfg.Extraction.APIKey,
			BaseURL:       cfg.Extraction.BaseURL,
			Model:         cfg.Extraction.Model,
			VisionModel:   cfg.Extraction.VisionModel,
			RatePerSecond: cfg.Extraction.RatePerSecond,
			Burst:         cfg.Extraction.Burst,
			CacheTTL:      cfg.Extraction.CacheTTL,
		})
		if err != nil {
			slog.Error("Failed to initialize extraction client", "error", err)
			return err
		}
		extractor, describer = client, client
	} else {
		slog.Info("Field extraction disabled; documents get baseline records")
	}

	var scorer fraud.Scorer
	if cfg.Fraud.Endpoint != "" {
		columns, err := fraud.LoadColumns(cfg.Fraud.ColumnsPath)
		if err != nil {
			slog.Error("Failed to load fraud model columns", "error", err)
			return err
		}
		scorer = fraud.NewHTTPScorer(cfg.Fraud.Endpoint, columns, cfg.Fraud.Threshold, cfg.Fraud.Timeout)
	} else {
		slog.Info("Fraud scoring disabled; documents get a null score")
	}

	// 3. Ledger and HTTP surfaces
	hub := stream.NewHub(0)
	ledgerSvc := ledger.NewService(store, ledger.RandomIDs{}, notifier, ledger.Options{
		DefaultCustomerID: cfg.Ledger.DefaultCustomerID,
		NotifyRecipient:   cfg.Notify.Recipient,
		NotifyTimeout:     cfg.Notify.Timeout,
		MaxInlineBytes:    cfg.Storage.MaxInlineMB << 20,
		Publisher:         hub,
	})

	lifecycleSvc := lifecycle.NewService(ledgerSvc, cfg.Server.MaxBodySizeMB)
	projectionSvc := projection.NewService(ledgerSvc)
	intakeSvc := intake.NewService(ledgerSvc, blobs, extractor, describer, scorer, intake.Options{
		Workers:        cfg.Intake.Workers,
		ExtractTimeout: cfg.Extraction.Timeout,
		ScoreTimeout:   cfg.Fraud.Timeout,
		MaxBodySizeMB:  cfg.Server.MaxBodySizeMB,
	})

	srv := server.New(cfg.Server.Addr(), health, serveOpts)
	lifecycleSvc.RegisterRoutes(srv.Engine)
	projectionSvc.RegisterRoutes(srv.Engine)
	intakeSvc.RegisterRoutes(srv.Engine)
	stream.NewService(hub, cfg.Server.CORSOrigins).RegisterRoutes(srv.Engine)

	// 4. Run until a signal arrives
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		slog.Error("Server stopped with error", "error", err)
		return err
	}

	slog.Info("Shutdown complete")
	return nil
}

func newDynamoClient(ctx context.Context, cfg config.DynamoDBConfig) (*dynamodb.Client, error) {
	awsCfg, err := awsutil.Load(ctx, cfg.Region, cfg.Endpoint)
	if err != nil {
		slog.Error("Failed to load AWS config", "error", err)
		return nil, err
	}
	return dynamodb.NewFromConfig(awsCfg), nil
}

func dynamoTables(cfg config.DynamoDBConfig) dynamo.Tables {
	return dynamo.Tables{Claims: cfg.ClaimsTable, Topics: cfg.TopicsTable}
}
