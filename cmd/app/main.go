package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"parcels/cmd"
	"parcels/internal/adapters/in/http"
	"parcels/internal/adapters/out/postgres"
	"parcels/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db, err := postgres.Open(configs.DSN())
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	stores := postgres.NewStores(db)
	if err = stores.Migrate(context.Background()); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	app, err := cmd.NewCompositionRoot(configs, stores, logger)
	if err != nil {
		log.Fatalf("Error building application: %v", err)
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}

	err = startWebServer(app, logger, configs.HTTPPort)
	jobManager.StopAll()
	log.Fatal(err)
}

func getConfigs() cmd.Config {
	// Variables may come from the environment alone; .env is optional.
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	config := cmd.Config{
		HTTPPort:          goDotEnvVariable("HTTP_PORT", "8080"),
		DBHost:            goDotEnvVariable("DB_HOST", "localhost"),
		DBPort:            goDotEnvVariable("DB_PORT", "5432"),
		DBUser:            goDotEnvVariable("DB_USER", ""),
		DBPassword:        goDotEnvVariable("DB_PASSWORD", ""),
		DBName:            goDotEnvVariable("DB_NAME", ""),
		DBSslMode:         goDotEnvVariable("DB_SSLMODE", "disable"),
		AuthJWTSecret:     goDotEnvVariable("AUTH_JWT_SECRET", ""),
		AuthJWTIssuer:     goDotEnvVariable("AUTH_JWT_ISSUER", ""),
		StripeSecretKey:   goDotEnvVariable("STRIPE_SECRET_KEY", ""),
		PaymentCurrency:   goDotEnvVariable("PAYMENT_CURRENCY", "usd"),
		ReconcileSchedule: goDotEnvVariable("RECONCILE_SCHEDULE", jobs.DefaultReconcileSchedule),
	}
	return config
}

func goDotEnvVariable(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func startWebServer(app cmd.CompositionRoot, logger *slog.Logger, port string) error {
	e, err := http.NewEcho(app.CreateServer(), app.CreateAuthGate(), logger)
	if err != nil {
		return err
	}

	return e.Start(fmt.Sprintf("0.0.0.0:%s", port))
}
