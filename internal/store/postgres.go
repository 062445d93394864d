package store

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ukaji3/sheetimport-go/pkg/sheetimport"
	"github.com/ukaji3/sheetimport-go/pkg/sheetimport/importer"
)

// DBTX is the query interface of *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Connect opens a connection pool and verifies it with a ping.
func Connect(ctx context.Context, url string) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

// Postgres looks up prior records in a table by key column. Table columns
// are matched to record fields by name; columns without field are ignored.
type Postgres struct {
	db     DBTX
	table  string
	key    string
	fields map[string]importer.Kind
	query  string
}

// NewPostgres returns a lookup reading table, matching keyColumn.
func NewPostgres(db DBTX, table, keyColumn string, fields []importer.RecordField) *Postgres {
	p := &Postgres{
		db:     db,
		table:  table,
		key:    keyColumn,
		fields: make(map[string]importer.Kind, len(fields)),
	}
	for _, f := range fields {
		p.fields[f.Name] = f.Kind
	}
	p.query = fmt.Sprintf("SELECT * FROM %s WHERE %s::text = $1 LIMIT 1",
		pgx.Identifier(strings.Split(table, ".")).Sanitize(),
		pgx.Identifier{keyColumn}.Sanitize())
	return p
}

// Find returns the record whose key column equals key, or nil.
func (p *Postgres) Find(ctx context.Context, key string) (*importer.Record, error) {
	rows, err := p.db.Query(ctx, p.query, key)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", p.table, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}

	values, err := rows.Values()
	if err != nil {
		return nil, err
	}

	rec := importer.NewRecord()
	for i, fd := range rows.FieldDescriptions() {
		kind, ok := p.fields[fd.Name]
		if !ok || i >= len(values) {
			continue
		}
		if err := rec.Scan(fd.Name, kind, values[i]); err != nil {
			return nil, err
		}
	}
	slog.Debug("found prior record", "table", p.table, "key", key, "fields", rec.Len())
	return rec, nil
}

var _ sheetimport.Lookup[importer.Record] = (*Postgres)(nil)
