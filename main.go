package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/artist-portfolio-backend/api"
	"github.com/rpupo63/artist-portfolio-backend/config"
	"github.com/rpupo63/artist-portfolio-backend/database"
	"github.com/rpupo63/artist-portfolio-backend/models"
	"github.com/rpupo63/artist-portfolio-backend/services"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	setupLogging(cfg.Logging)
	log.Info().Str("databaseType", cfg.Database.Type).Msg("Configuration loaded")

	currentDB, done, err := openDatabase(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to database")
	}
	if done {
		return
	}

	// Both the listener and the signal handler may report; neither should block.
	errChannel := make(chan error, 2)

	server, err := api.NewServer(*cfg, currentDB, services.NewContactNotifiers(*cfg))
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing server")
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(cfg.Server.ShutdownTimeout)
}

func setupLogging(cfg config.LoggingConfig) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if strings.ToLower(cfg.Format) == "json" {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}

// openDatabase connects the configured backend. done reports that a one-shot
// generation task ran and the process should exit without serving.
func openDatabase(ctx context.Context, cfg config.DatabaseConfig) (database.Database, bool, error) {
	switch {
	case cfg.IsPostgres():
		log.Info().Msg("Connecting to postgres database...")
		db, err := database.OpenPostgres(cfg)
		if err != nil {
			return database.Database{}, false, err
		}

		// If generating models, run generation and exit
		if strings.ToLower(os.Getenv("GENERATE_MODELS")) == "true" {
			log.Info().Msg("Generating models and query helpers...")
			return database.Database{}, true, models.GenerateModels(db)
		}

		// If generating column mismatch report, run report and exit
		if strings.ToLower(os.Getenv("GENERATE_COLUMN_REPORT")) == "true" {
			log.Info().Msg("Generating column mismatch report...")
			report, err := models.GenerateColumnMismatchReport(db)
			if err != nil {
				return database.Database{}, true, err
			}
			log.Info().Int("tablesWithMismatches", len(report)).Msg("Column mismatch report complete")
			return database.Database{}, true, nil
		}

		if cfg.AutoMigrate {
			if err := models.Migrate(db); err != nil {
				return database.Database{}, false, fmt.Errorf("migrate: %w", err)
			}
		}
		return database.New(db), false, nil

	case cfg.Type == config.DatabaseMongo:
		log.Info().Msg("Connecting to mongo database...")
		client, err := database.OpenMongo(ctx, cfg)
		if err != nil {
			return database.Database{}, false, err
		}

		indexCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
		if err := database.EnsureIndexes(indexCtx, client.Database(cfg.MongoDatabase)); err != nil {
			return database.Database{}, false, fmt.Errorf("ensure indexes: %w", err)
		}
		return database.NewMongo(client, cfg.MongoDatabase), false, nil

	default:
		log.Warn().Msg("Using the in-memory store; data is lost on restart")
		return database.NewMemory(), false, nil
	}
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
