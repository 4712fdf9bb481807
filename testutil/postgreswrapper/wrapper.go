package postgreswrapper

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/config"
	"github.com/AntonStoeckl/library-circulation-go/journal/postgresjournal"
)

const (
	envAdapterType = "ADAPTER_TYPE"
	envDSN         = "POSTGRES_TEST_DSN"

	typePGXPool = "pgx.pool"
	typeSQLDB   = "sql.db"
	typeSQLXDB  = "sqlx.db"
)

// Wrapper gives a test a Journal on its own table and removes the table on Close.
type Wrapper interface {
	Journal() *postgresjournal.Journal
	AdapterType() string
	Close()
}

type wrapper struct {
	journal     *postgresjournal.Journal
	adapterType string
	exec        func(ctx context.Context, statement string) error
	closeDB     func()
	tableName   string
}

func (w *wrapper) Journal() *postgresjournal.Journal {
	return w.journal
}

func (w *wrapper) AdapterType() string {
	return w.adapterType
}

func (w *wrapper) Close() {
	_ = w.exec(context.Background(), "DROP TABLE IF EXISTS "+w.tableName) // best effort
	w.closeDB()
}

// New opens the journal and creates its table. It registers Close with t.Cleanup.
func New(t testing.TB, options ...postgresjournal.Option) Wrapper {
	t.Helper()

	ctx := context.Background()
	dsn := os.Getenv(envDSN)
	if dsn == "" {
		dsn = config.DefaultPostgresDSN
	}

	tableName := "journal_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	options = append([]postgresjournal.Option{postgresjournal.WithTableName(tableName)}, options...)
	pool := config.DefaultPostgresPool()

	w := &wrapper{tableName: tableName}
	var err error

	switch adapterType := strings.ToLower(os.Getenv(envAdapterType)); adapterType {
	case typePGXPool, "":
		var db *pgxpool.Pool
		db, err = config.NewPGXPool(ctx, dsn, pool)
		skipUnreachable(t, err)

		w.adapterType = typePGXPool
		w.closeDB = db.Close
		w.exec = func(ctx context.Context, statement string) error {
			_, execErr := db.Exec(ctx, statement)
			return execErr
		}
		w.journal, err = postgresjournal.NewJournalFromPGXPool(db, options...)

	case typeSQLDB:
		var db *sql.DB
		db, err = config.OpenSQLDB(ctx, dsn, pool)
		skipUnreachable(t, err)

		w.adapterType = typeSQLDB
		w.closeDB = func() { _ = db.Close() }
		w.exec = func(ctx context.Context, statement string) error {
			_, execErr := db.ExecContext(ctx, statement)
			return execErr
		}
		w.journal, err = postgresjournal.NewJournalFromSQLDB(db, options...)

	case typeSQLXDB:
		var db *sqlx.DB
		db, err = config.OpenSQLX(ctx, dsn, pool)
		skipUnreachable(t, err)

		w.adapterType = typeSQLXDB
		w.closeDB = func() { _ = db.Close() }
		w.exec = func(ctx context.Context, statement string) error {
			_, execErr := db.ExecContext(ctx, statement)
			return execErr
		}
		w.journal, err = postgresjournal.NewJournalFromSQLX(db, options...)

	default:
		panic(fmt.Sprintf("unsupported adapter type from env: %s", adapterType))
	}

	require.NoError(t, err, "creating journal")
	require.NoError(t, w.journal.CreateTable(ctx), "creating journal table")
	t.Cleanup(w.Close)

	return w
}

func skipUnreachable(t testing.TB, err error) {
	t.Helper()

	if err != nil {
		t.Skipf("postgres not reachable: %v", err)
	}
}
