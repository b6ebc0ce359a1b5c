package sqlledger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bnema/whatsavings/internal/domain"
)

type Dialect string

const (
	DialectMySQL    Dialect = "mysql"
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

const tableName = "savings"

func ParseDialect(raw string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "mysql", "mariadb":
		return DialectMySQL, nil
	case "postgres", "postgresql", "pgx":
		return DialectPostgres, nil
	case "sqlite", "sqlite3":
		return DialectSQLite, nil
	default:
		return "", fmt.Errorf("%w: unsupported ledger driver %q", domain.ErrInvalidConfig, raw)
	}
}

func (d Dialect) driverName() string {
	switch d {
	case DialectPostgres:
		return "pgx"
	case DialectSQLite:
		return "sqlite"
	default:
		return "mysql"
	}
}

func (d Dialect) schema() []string {
	switch d {
	case DialectPostgres:
		return []string{
			`CREATE TABLE IF NOT EXISTS savings (
	id BIGSERIAL PRIMARY KEY,
	saved_at TIMESTAMP NOT NULL,
	amount BIGINT NOT NULL,
	src VARCHAR(32) NOT NULL,
	raw_text VARCHAR(255) NOT NULL
)`,
			`CREATE INDEX IF NOT EXISTS idx_savings_saved_at ON savings (saved_at)`,
		}
	case DialectSQLite:
		return []string{
			`CREATE TABLE IF NOT EXISTS savings (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	saved_at TEXT NOT NULL,
	amount INTEGER NOT NULL,
	src TEXT NOT NULL,
	raw_text TEXT NOT NULL
)`,
			`CREATE INDEX IF NOT EXISTS idx_savings_saved_at ON savings (saved_at)`,
		}
	default:
		return []string{
			`CREATE TABLE IF NOT EXISTS savings (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	saved_at DATETIME NOT NULL,
	amount BIGINT NOT NULL,
	src VARCHAR(32) NOT NULL,
	raw_text VARCHAR(255) NOT NULL,
	INDEX idx_savings_saved_at (saved_at)
)`,
		}
	}
}

// rebind rewrites "?" placeholders into the "$n" form postgres expects.
func (d Dialect) rebind(query string) string {
	if d != DialectPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$")
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}
