package app

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"freelance-market-api/internal/controller"
	"freelance-market-api/internal/repo"
	"freelance-market-api/internal/service"
	"freelance-market-api/pkg/http_server"
	"freelance-market-api/pkg/postgres"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	"github.com/labstack/echo"
)

const defaultAddress = ":8080"

func runMigrations(pg *postgres.Postgres, databaseName string) {
	driver, err := pgmigrate.WithInstance(pg.Database, &pgmigrate.Config{DatabaseName: databaseName})
	if err != nil {
		log.Fatal(err)
	}

	migrations, err := migrate.NewWithDatabaseInstance("file://migrations", databaseName, driver)
	if err != nil {
		log.Fatal(err)
	}

	if err := migrations.Up(); err != nil {
		if err.Error() == "no change" {
			log.Println("no change made by migration scripts")
		} else {
			log.Fatal(err)
		}
	}
}

func Run() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	address := os.Getenv("SERVER_ADDRESS")
	if address == "" {
		address = defaultAddress
	}

	// The postgres backend is opt-in: without POSTGRES_CONN the service runs
	// against the in-memory store.
	var repositories *repo.Repositories
	dbConn := os.Getenv("POSTGRES_CONN")
	if dbConn == "" {
		log.Println("POSTGRES_CONN not set, using in-memory store")
		repositories = repo.NewMemoryRepositories()
	} else {
		log.Println("Connecting database...")
		postgresDB, err := postgres.NewDB(dbConn)
		if err != nil {
			log.Fatal("Error occurred while connecting to db: ", err)
		}
		defer postgresDB.Close()

		log.Println("Running migrations...")
		runMigrations(postgresDB, os.Getenv("POSTGRES_DATABASE"))

		repositories = repo.NewPostgresRepositories(postgresDB)
	}

	services := service.NewServices(repositories)
	handler := echo.New()

	log.Println("Setup routes...")
	controller.SetupRoutesHandlers(handler, services)

	log.Println("Starting server...")
	httpServer := http_server.New(handler, address)

	log.Println("Ready to process requests on " + address)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Println("Got signal: " + s.String())
	case err := <-httpServer.Notify():
		log.Println("Server error: ", err)
	}

	log.Println("Shutting down...")
	if err := httpServer.Shutdown(); err != nil {
		log.Fatal("Shutdown error: ", err)
	}

	log.Println("Successful shutdown")
}
