package app

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/labstack/echo"
	"github.com/rs/zerolog"

	"github.com/sigasystems/digital-negotiation-book-api/internal/controller"
	"github.com/sigasystems/digital-negotiation-book-api/internal/repo"
	"github.com/sigasystems/digital-negotiation-book-api/internal/service"
	"github.com/sigasystems/digital-negotiation-book-api/pkg/http_server"
	"github.com/sigasystems/digital-negotiation-book-api/pkg/postgres"
)

func newLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	return zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
}

func runMigrations(postgresDB *postgres.Postgres, databaseName string, log zerolog.Logger) {
	driver, err := pgmigrate.WithInstance(postgresDB.Database, &pgmigrate.Config{DatabaseName: databaseName})
	if err != nil {
		log.Fatal().Err(err).Msg("migration driver init failed")
	}

	migrations, err := migrate.NewWithDatabaseInstance("file://migrations", databaseName, driver)
	if err != nil {
		log.Fatal().Err(err).Msg("migration source init failed")
	}

	if err := migrations.Up(); err != nil {
		if err == migrate.ErrNoChange {
			log.Info().Msg("no change made by migration scripts")
		} else {
			log.Fatal().Err(err).Msg("migrations failed")
		}
	}
}

func Run() {
	log := newLogger()

	serverAddressEnv := os.Getenv("SERVER_ADDRESS")
	dbConnEnv := os.Getenv("POSTGRES_CONN")
	databaseEnv := os.Getenv("POSTGRES_DATABASE")
	jwtSecretEnv := os.Getenv("JWT_SECRET")
	if jwtSecretEnv == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	log.Info().Msg("connecting database")
	postgresDB, err := postgres.NewDB(dbConnEnv)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer postgresDB.Close()

	log.Info().Msg("running migrations")
	runMigrations(postgresDB, databaseEnv, log)

	repositories := repo.NewRepositories(postgresDB, log)
	services := service.NewServices(repositories, log)
	handler := echo.New()

	log.Info().Msg("setup routes")
	controller.SetupRoutesHandlers(handler, services, jwtSecretEnv)

	log.Info().Str("address", serverAddressEnv).Msg("starting server")
	httpServer := http_server.New(handler, serverAddressEnv)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Info().Str("signal", s.String()).Msg("got signal")
	case err = <-httpServer.Notify():
		log.Error().Err(err).Msg("server stopped")
	}

	log.Info().Msg("shutting down")
	if err := httpServer.Shutdown(); err != nil {
		log.Error().Err(err).Msg("shutdown error")

		return
	}

	log.Info().Msg("successful shutdown")
}
