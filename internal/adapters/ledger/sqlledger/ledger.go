package sqlledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/bnema/whatsavings/internal/domain"
	"github.com/bnema/whatsavings/internal/ports"
)

const (
	defaultMaxOpenConns    = 25
	defaultMaxIdleConns    = 10
	defaultConnMaxLifetime = 5 * time.Minute
)

type Config struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Ledger is the append-only savings table shared with the dashboard.
type Ledger struct {
	db      *sql.DB
	dialect Dialect
}

var (
	_ ports.Ledger       = (*Ledger)(nil)
	_ ports.LedgerReader = (*Ledger)(nil)
)

func Open(ctx context.Context, cfg Config) (*Ledger, error) {
	dialect, err := ParseDialect(cfg.Driver)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, fmt.Errorf("%w: ledger dsn is required", domain.ErrInvalidConfig)
	}

	db, err := sql.Open(dialect.driverName(), cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s ledger: %w", dialect, err)
	}

	db.SetMaxOpenConns(orDefault(cfg.MaxOpenConns, defaultMaxOpenConns))
	db.SetMaxIdleConns(orDefault(cfg.MaxIdleConns, defaultMaxIdleConns))
	lifetime := cfg.ConnMaxLifetime
	if lifetime <= 0 {
		lifetime = defaultConnMaxLifetime
	}
	db.SetConnMaxLifetime(lifetime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s ledger: %w", dialect, err)
	}

	return &Ledger{db: db, dialect: dialect}, nil
}

func New(db *sql.DB, dialect Dialect) *Ledger {
	return &Ledger{db: db, dialect: dialect}
}

func (l *Ledger) Close() error {
	if l == nil || l.db == nil {
		return nil
	}

	return l.db.Close()
}

func (l *Ledger) Dialect() Dialect {
	return l.dialect
}

func (l *Ledger) EnsureSchema(ctx context.Context) error {
	for _, statement := range l.dialect.schema() {
		if _, err := l.db.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("ensure %s schema: %w", tableName, err)
		}
	}

	return nil
}

func (l *Ledger) Insert(ctx context.Context, record domain.DepositRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	bounded := record.Bounded()
	query := l.dialect.rebind(`INSERT INTO savings (saved_at, amount, src, raw_text) VALUES (?, ?, ?, ?)`)
	if _, err := l.db.ExecContext(ctx, query, bounded.SavedAtString(), bounded.Amount, bounded.Source, bounded.RawText); err != nil {
		return fmt.Errorf("insert into %s: %w", tableName, err)
	}

	return nil
}

func (l *Ledger) Total(ctx context.Context, from time.Time, to time.Time) (int64, error) {
	query := l.dialect.rebind(`SELECT COALESCE(SUM(amount), 0) FROM savings WHERE saved_at BETWEEN ? AND ?`)

	var raw sql.NullString
	if err := l.db.QueryRowContext(ctx, query, formatBound(from), formatBound(to)).Scan(&raw); err != nil {
		return 0, fmt.Errorf("sum %s: %w", tableName, err)
	}

	return parseSum(raw)
}

func (l *Ledger) DailyTotals(ctx context.Context, from time.Time, to time.Time) ([]domain.DailyTotal, error) {
	query := l.dialect.rebind(`SELECT DATE(saved_at) AS d, COALESCE(SUM(amount), 0) AS s
FROM savings
WHERE saved_at BETWEEN ? AND ?
GROUP BY DATE(saved_at)
ORDER BY d`)

	rows, err := l.db.QueryContext(ctx, query, formatBound(from), formatBound(to))
	if err != nil {
		return nil, fmt.Errorf("query daily %s: %w", tableName, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var totals []domain.DailyTotal
	for rows.Next() {
		var day any
		var sum sql.NullString
		if err := rows.Scan(&day, &sum); err != nil {
			return nil, fmt.Errorf("scan daily %s: %w", tableName, err)
		}

		parsedDay, err := parseDay(day)
		if err != nil {
			return nil, err
		}
		total, err := parseSum(sum)
		if err != nil {
			return nil, err
		}

		totals = append(totals, domain.DailyTotal{Day: parsedDay, Total: total})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate daily %s: %w", tableName, err)
	}

	return totals, nil
}

func formatBound(at time.Time) string {
	return at.In(domain.WIB).Format(domain.SavedAtLayout)
}

// parseSum accepts the integer, decimal and text renderings the three drivers
// use for SUM over a BIGINT column.
func parseSum(raw sql.NullString) (int64, error) {
	if !raw.Valid || raw.String == "" {
		return 0, nil
	}

	value, err := decimal.NewFromString(raw.String)
	if err != nil {
		return 0, fmt.Errorf("parse ledger sum %q: %w", raw.String, err)
	}

	return value.IntPart(), nil
}

// parseDay normalizes DATE(saved_at), which arrives as time.Time from pgx,
// []byte from mysql and a string from sqlite.
func parseDay(raw any) (time.Time, error) {
	var text string
	switch value := raw.(type) {
	case time.Time:
		return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, domain.WIB), nil
	case []byte:
		text = string(value)
	case string:
		text = value
	case nil:
		return time.Time{}, errors.New("ledger day is null")
	default:
		return time.Time{}, fmt.Errorf("unexpected ledger day type %T", raw)
	}

	if len(text) > len(domain.DateLayout) {
		text = text[:len(domain.DateLayout)]
	}

	day, err := time.ParseInLocation(domain.DateLayout, text, domain.WIB)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse ledger day %q: %w", text, err)
	}

	return day, nil
}

func orDefault(value int, fallback int) int {
	if value <= 0 {
		return fallback
	}

	return value
}
