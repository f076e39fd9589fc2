package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"feedstudio/internal/config"
	"feedstudio/internal/repository/postgres"
)

func main() {
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed demo content")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && *dropTables {
		log.Fatalf("BLOCKED: cannot run --drop-tables in production environment")
	}

	log.Printf("Seeding database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if *dropTables {
		log.Println("Dropping all tables...")
		if err := dropAllTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("Tables dropped")
	}

	log.Println("Ensuring database schema is up to date...")
	if err := runSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("Schema ready")

	if *schemaOnly {
		return
	}

	if err := seedDemoContent(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to seed demo content: %v", err)
	}
	log.Println("Demo content seeded")
}

// runSchema creates tables if they don't exist. The UNIQUE(content_id,
// version) constraint on the versions table is what serializes concurrent
// saves; removing it would let two auto-saves write the same version number.
func runSchema(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, tablePrefix string) error {
	createContents := `
		CREATE TABLE IF NOT EXISTS ` + tables.Contents + ` (
			id UUID PRIMARY KEY,
			title TEXT NOT NULL,
			edited_body TEXT,
			original_body TEXT NOT NULL DEFAULT '',
			outline TEXT NOT NULL DEFAULT '',
			topic_slug VARCHAR(255),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createContents); err != nil {
		return err
	}

	createVersions := `
		CREATE TABLE IF NOT EXISTS ` + tables.ContentVersions + ` (
			id UUID PRIMARY KEY,
			content_id UUID NOT NULL REFERENCES ` + tables.Contents + `(id) ON DELETE RESTRICT,
			version INTEGER NOT NULL CHECK (version >= 1),
			title TEXT NOT NULL,
			body TEXT NOT NULL,
			change_type VARCHAR(32) NOT NULL,
			changes_count INTEGER NOT NULL DEFAULT 0,
			word_count INTEGER NOT NULL DEFAULT 0,
			char_count INTEGER NOT NULL DEFAULT 0,
			edited_by TEXT NOT NULL,
			session_id VARCHAR(255) NOT NULL,
			time_spent_ms BIGINT,
			changes JSONB NOT NULL DEFAULT '[]',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE(content_id, version)
		)
	`
	if _, err := pool.Exec(ctx, createVersions); err != nil {
		return err
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `content_versions_content ON ` + tables.ContentVersions + `(content_id, version DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `contents_topic ON ` + tables.Contents + `(topic_slug)`,
	}
	for _, indexSQL := range indexes {
		if _, err := pool.Exec(ctx, indexSQL); err != nil {
			return err
		}
	}

	return nil
}

// dropAllTables drops all tables in reverse order (to respect foreign keys)
func dropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	for _, table := range []string{tables.ContentVersions, tables.Contents} {
		if _, err := pool.Exec(ctx, "DROP TABLE IF EXISTS "+table+" CASCADE"); err != nil {
			return err
		}
		log.Printf("  dropped %s", table)
	}
	return nil
}

// seedDemoContent inserts one never-edited document for local development
func seedDemoContent(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	topic := "llm-tooling"
	query := `
		INSERT INTO ` + tables.Contents + ` (id, title, edited_body, original_body, outline, topic_slug, created_at, updated_at)
		VALUES ($1, $2, NULL, $3, $4, $5, $6, $6)
		ON CONFLICT (id) DO NOTHING
	`
	_, err := pool.Exec(ctx, query,
		uuid.NewString(),
		"Weekly roundup: agent frameworks",
		"<p>Draft generated from this week's feed items.</p>",
		"1. Framework releases\n2. Benchmarks\n3. Community picks",
		topic,
		time.Now().UTC(),
	)
	return err
}
