// Package store persists validation outcomes to PostgreSQL. Persistence
// is best-effort: a store failure is logged and never changes the report
// returned to the caller.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/rezonia/mydata-validator/internal/model"
	"github.com/rezonia/mydata-validator/internal/validation"
)

// Store wraps a pgx connection pool for the validation log
type Store struct {
	pool *pgxpool.Pool
}

// New connects to PostgreSQL and prepares the pool. The decimal codec is
// registered on every connection so NUMERIC columns round-trip through
// shopspring/decimal.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolConfig.MaxConns = 5
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Close releases the connection pool
func (s *Store) Close() {
	s.pool.Close()
}

// LogValidation records one validation outcome. Clean and Warned count as
// valid for submission; only Rejected is invalid.
func (s *Store) LogValidation(ctx context.Context, hash string, inv *model.Invoice, report *validation.Report) error {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	// NetAmount/GrossAmount bind through the decimal codec registered in New
	_, err = s.pool.Exec(ctx, `
		INSERT INTO validation_logs (invoice_hash, issuer_vat, invoice_series, invoice_aa, total_net, total_gross, is_valid, report_json)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		hash,
		inv.Issuer.VatNumber,
		inv.Header.Series,
		inv.Header.AA,
		inv.Totals.NetAmount,
		inv.Totals.GrossAmount,
		report.Valid(),
		reportJSON,
	)
	if err != nil {
		return fmt.Errorf("insert validation log: %w", err)
	}
	return nil
}

// IssuerTotals sums the logged net and gross amounts of an issuer's valid
// invoices. COALESCE returns zero when the issuer has no logged invoices.
func (s *Store) IssuerTotals(ctx context.Context, issuerVat string) (net, gross decimal.Decimal, err error) {
	const query = `
	SELECT
	    COALESCE(SUM(total_net),   0) AS net,
	    COALESCE(SUM(total_gross), 0) AS gross
	FROM validation_logs
	WHERE issuer_vat = $1
	  AND is_valid`

	err = s.pool.QueryRow(ctx, query, issuerVat).Scan(&net, &gross)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("query issuer totals: %w", err)
	}
	return net, gross, nil
}
