package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"countries/internal/country/models"
	"countries/pkg/platform/sentinel"
	"countries/pkg/platform/tx"
)

// Schema creates the countries table. Documents live in a JSONB column next
// to the normalized name.
const Schema = `
CREATE TABLE IF NOT EXISTS countries (
	name_ci    TEXT PRIMARY KEY,
	doc        JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const uniqueViolation = "23505"

// PostgresStore persists country documents in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate applies Schema.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("migrate countries: %w", translatePostgres(err))
	}
	return nil
}

func (s *PostgresStore) FindAll(ctx context.Context) ([]*models.Country, error) {
	return s.query(ctx, `SELECT doc FROM countries ORDER BY name_ci`)
}

func (s *PostgresStore) SearchByPrefix(ctx context.Context, query string, limit int) ([]*models.Country, error) {
	prefix := models.NormalizeName(query)
	if prefix == "" {
		return []*models.Country{}, nil
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	return s.query(ctx,
		`SELECT doc FROM countries WHERE name_ci LIKE $1 ESCAPE '\' ORDER BY name_ci LIMIT $2`,
		escapeLike(prefix)+"%", limit)
}

func (s *PostgresStore) query(ctx context.Context, q string, args ...any) ([]*models.Country, error) {
	rows, err := tx.Use(ctx, s.db).QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query countries: %w", translatePostgres(err))
	}
	defer rows.Close()

	out := []*models.Country{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan country: %w", err)
		}
		c, err := decodeDoc(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate countries: %w", translatePostgres(err))
	}
	return out, nil
}

func (s *PostgresStore) FindByName(ctx context.Context, name string) (*models.Country, error) {
	return s.findByKey(ctx, models.NormalizeName(name), false)
}

func (s *PostgresStore) findByKey(ctx context.Context, key string, forUpdate bool) (*models.Country, error) {
	q := `SELECT doc FROM countries WHERE name_ci = $1`
	if forUpdate {
		q += ` FOR UPDATE`
	}
	var raw []byte
	err := tx.Use(ctx, s.db).QueryRowContext(ctx, q, key).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find country by name: %w", translatePostgres(err))
	}
	return decodeDoc(raw)
}

func (s *PostgresStore) UpdateFields(ctx context.Context, name string, update models.CountryUpdate) (*models.Country, error) {
	var updated *models.Country
	err := tx.Run(ctx, s.db, func(ctx context.Context) error {
		current, err := s.findByKey(ctx, models.NormalizeName(name), true)
		if err != nil {
			return err
		}
		oldKey := current.Key()
		update.Apply(current)

		raw, err := json.Marshal(current)
		if err != nil {
			return fmt.Errorf("encode country: %w", err)
		}
		_, err = tx.Use(ctx, s.db).ExecContext(ctx,
			`UPDATE countries SET name_ci = $1, doc = $2, updated_at = now() WHERE name_ci = $3`,
			current.Key(), raw, oldKey)
		if err != nil {
			return fmt.Errorf("update country: %w", translatePostgres(err))
		}
		updated = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *PostgresStore) Insert(ctx context.Context, country *models.Country) error {
	raw, err := json.Marshal(country)
	if err != nil {
		return fmt.Errorf("encode country: %w", err)
	}
	_, err = tx.Use(ctx, s.db).ExecContext(ctx,
		`INSERT INTO countries (name_ci, doc) VALUES ($1, $2)`, country.Key(), raw)
	if err != nil {
		return fmt.Errorf("insert country: %w", translatePostgres(err))
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", sentinel.ErrUnavailable, err)
	}
	return nil
}

func decodeDoc(raw []byte) (*models.Country, error) {
	var c models.Country
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("malformed country document: %w", err)
	}
	return &c, nil
}

// escapeLike makes every character of s match literally in a LIKE pattern.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func translatePostgres(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, sql.ErrConnDone) {
		return fmt.Errorf("%w: %v", sentinel.ErrUnavailable, err)
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", sentinel.ErrUnavailable, err)
	}
	return err
}
