// Package tagstore implements the external tag store over PostgreSQL.
package tagstore

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/lib/pq"

	"github.com/matcatalog/tag-matching/internal/tags"
)

// Postgres is the PostgreSQL-backed tag store. The server-side matching
// procedure is the match_tags SQL function; tag listings and decision logs
// use plain tables. Schema management is out of scope here.
type Postgres struct {
	db *sql.DB
}

// Connect opens a connection from PG* environment variables and verifies it.
func Connect() (*Postgres, error) {
	host := getEnvOrDefault("PGHOST", "localhost")
	port := getEnvOrDefault("PGPORT", "5432")
	user := getEnvOrDefault("PGUSER", "matcatalog")
	password := getEnvOrDefault("PGPASSWORD", "matcatalog")
	dbname := getEnvOrDefault("PGDATABASE", "matcatalog")
	sslmode := getEnvOrDefault("PGSSLMODE", "disable")

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)

	return &Postgres{db: db}, nil
}

// New wraps an existing connection, mainly for tests.
func New(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// Close closes the underlying connection.
func (p *Postgres) Close() error {
	return p.db.Close()
}

// Ping verifies connectivity.
func (p *Postgres) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

// ListTags returns the full tag list for a category.
func (p *Postgres) ListTags(ctx context.Context, category string) ([]tags.Tag, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT t.id, t.name, t.normalized_name, t.synonyms, t.confidence_threshold
		FROM tag t
		JOIN tag_category c ON c.id = t.category_id
		WHERE c.name = $1
		ORDER BY t.normalized_name
	`, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags for category %q: %w", category, err)
	}
	defer rows.Close()

	var result []tags.Tag
	for rows.Next() {
		var tag tags.Tag
		var synonyms pq.StringArray
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.NormalizedName, &synonyms, &tag.ConfidenceThreshold); err != nil {
			return nil, fmt.Errorf("failed to scan tag row: %w", err)
		}
		tag.Synonyms = synonyms
		result = append(result, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tag rows: %w", err)
	}

	return result, nil
}

// MatchTags invokes the server-side match_tags procedure.
func (p *Postgres) MatchTags(ctx context.Context, text, category string, minConfidence float64) ([]tags.MatchResult, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT tag_id, tag_name, confidence_score, matching_method
		FROM match_tags($1, $2, $3)
	`, text, category, minConfidence)
	if err != nil {
		return nil, fmt.Errorf("match_tags procedure failed: %w", err)
	}
	defer rows.Close()

	var result []tags.MatchResult
	for rows.Next() {
		var m tags.MatchResult
		if err := rows.Scan(&m.TagID, &m.TagName, &m.ConfidenceScore, &m.MatchingMethod); err != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read match rows: %w", err)
	}

	return result, nil
}

// AppendDecisionLog records a matching decision and returns its id.
func (p *Postgres) AppendDecisionLog(ctx context.Context, entry tags.DecisionLogEntry) (int64, error) {
	var id int64
	err := p.db.QueryRowContext(ctx, `
		INSERT INTO tag_match_decision (
			material_id, extracted_text, matched_tag_id,
			confidence_score, matching_method, category_name, decided_at
		) VALUES ($1, $2, $3, $4, $5, $6, now())
		RETURNING id
	`, entry.MaterialID, entry.ExtractedText, entry.MatchedTagID,
		entry.ConfidenceScore, entry.MatchingMethod, entry.CategoryName).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert decision log entry: %w", err)
	}

	return id, nil
}

// getEnvOrDefault returns environment variable or default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
