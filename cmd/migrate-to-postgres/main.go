// migrate-to-postgres copies recorded sessions from SQLite to PostgreSQL.
// Sessions already in PostgreSQL are skipped, so it is safe to rerun.
//
// Usage:
//
//	go run ./cmd/migrate-to-postgres \
//	    -sqlite data/tenebrae.db \
//	    -pg-host localhost \
//	    -pg-port 5432 \
//	    -pg-user tenebrae \
//	    -pg-database tenebrae
//
// The password is read from TENEBRAE_DB_PASSWORD (or a .env file) when
// -pg-password is not given.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/lawnchairsociety/tenebrae/internal/database"
)

func main() {
	// Parse command-line flags
	sqlitePath := flag.String("sqlite", "data/tenebrae.db", "Path to SQLite database")
	pgHost := flag.String("pg-host", "localhost", "PostgreSQL host")
	pgPort := flag.Int("pg-port", 5432, "PostgreSQL port")
	pgUser := flag.String("pg-user", "tenebrae", "PostgreSQL user")
	pgPassword := flag.String("pg-password", "", "PostgreSQL password (default: $TENEBRAE_DB_PASSWORD)")
	pgDatabase := flag.String("pg-database", "tenebrae", "PostgreSQL database name")
	pgSSLMode := flag.String("pg-sslmode", "disable", "PostgreSQL SSL mode")
	dryRun := flag.Bool("dry-run", false, "Show what would be migrated without making changes")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to load .env: %v", err)
	}
	if *pgPassword == "" {
		*pgPassword = os.Getenv("TENEBRAE_DB_PASSWORD")
	}

	log.Println("SQLite to PostgreSQL Session Migration")
	log.Println("======================================")

	log.Printf("Opening SQLite database: %s", *sqlitePath)
	if _, err := os.Stat(*sqlitePath); err != nil {
		log.Fatalf("SQLite database not found: %v", err)
	}
	src, err := database.Open(*sqlitePath)
	if err != nil {
		log.Fatalf("Failed to open SQLite database: %v", err)
	}
	defer src.Close()

	pgCfg := database.DefaultPostgresConfig()
	pgCfg.Host = *pgHost
	pgCfg.Port = *pgPort
	pgCfg.User = *pgUser
	pgCfg.Password = *pgPassword
	pgCfg.Database = *pgDatabase
	pgCfg.SSLMode = *pgSSLMode

	log.Printf("Opening PostgreSQL database: %s@%s:%d/%s", *pgUser, *pgHost, *pgPort, *pgDatabase)
	dst, err := database.OpenWithConfig(database.Config{
		Enabled:  true,
		Driver:   string(database.DialectPostgres),
		Postgres: pgCfg,
	})
	if err != nil {
		log.Fatalf("Failed to open PostgreSQL database: %v", err)
	}
	defer dst.Close()
	log.Printf("Destination driver: %s", dst.Dialect().DriverName())

	if *dryRun {
		log.Println("DRY RUN MODE - No changes will be made")
	}

	result, err := database.CopySessions(context.Background(), src, dst, *dryRun)
	if err != nil {
		log.Fatalf("Migration failed after %d sessions: %v", result.Copied, err)
	}

	log.Println("======================================")
	log.Printf("Migration complete! Copied %d sessions, skipped %d already present", result.Copied, result.Skipped)
	if *dryRun {
		log.Println("(DRY RUN - No actual changes were made)")
	}
}
