package store

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/sheetimport-go/pkg/sheetimport/importer"
)

// fakeRows serves a single result set.
type fakeRows struct {
	fields []pgconn.FieldDescription
	data   [][]any
	pos    int
	closed bool
}

func (r *fakeRows) Close()                                       { r.closed = true }
func (r *fakeRows) Err() error                                   { return nil }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return r.fields }
func (r *fakeRows) Next() bool {
	if r.pos >= len(r.data) {
		return false
	}
	r.pos++
	return true
}
func (r *fakeRows) Scan(dest ...any) error { return errors.New("not supported") }
func (r *fakeRows) Values() ([]any, error) { return r.data[r.pos-1], nil }
func (r *fakeRows) RawValues() [][]byte    { return nil }
func (r *fakeRows) Conn() *pgx.Conn        { return nil }

type fakeDB struct {
	rows  *fakeRows
	err   error
	sql   string
	args  []any
	calls int
}

func (db *fakeDB) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	db.calls++
	db.sql, db.args = sql, args
	if db.err != nil {
		return nil, db.err
	}
	return db.rows, nil
}

var productFields = []importer.RecordField{
	{Name: "sku", Kind: importer.KindString},
	{Name: "price", Kind: importer.KindDecimal},
	{Name: "since", Kind: importer.KindDate},
}

func TestPostgresFind(t *testing.T) {
	rows := &fakeRows{
		fields: []pgconn.FieldDescription{{Name: "sku"}, {Name: "price"}, {Name: "since"}, {Name: "internal_id"}},
		data: [][]any{{
			"A-1",
			pgtype.Numeric{Int: big.NewInt(950), Exp: -2, Valid: true},
			time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			int64(77),
		}},
	}
	db := &fakeDB{rows: rows}
	p := NewPostgres(db, "products", "sku", productFields)

	rec, err := p.Find(context.Background(), "A-1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.True(t, rows.closed)
	assert.Equal(t, `SELECT * FROM "products" WHERE "sku"::text = $1 LIMIT 1`, db.sql)
	assert.Equal(t, []any{"A-1"}, db.args)

	assert.Equal(t, "A-1", rec.Get("sku"))
	assert.Equal(t, "9.50", importer.FormatDecimal(rec.Get("price").(pgtype.Numeric)))
	assert.Equal(t, pgtype.Date{Time: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Valid: true}, rec.Get("since"))
	assert.Nil(t, rec.Get("internal_id"), "columns without field are ignored")
}

func TestPostgresFind_NotFoundAndErrors(t *testing.T) {
	p := NewPostgres(&fakeDB{rows: &fakeRows{}}, "products", "sku", productFields)
	rec, err := p.Find(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, rec)

	boom := errors.New("boom")
	p = NewPostgres(&fakeDB{err: boom}, "products", "sku", productFields)
	_, err = p.Find(context.Background(), "A-1")
	assert.ErrorIs(t, err, boom)
}

func TestMemory(t *testing.T) {
	m := NewMemory[importer.Record]()
	rec := importer.NewRecord()
	m.Put("A-1", rec)

	got, err := m.Find(context.Background(), "A-1")
	require.NoError(t, err)
	assert.Same(t, rec, got)

	got, err = m.Find(context.Background(), "A-2")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, 1, m.Len())
}

func TestPostgresQuery_QualifiedTable(t *testing.T) {
	tests := []struct {
		table string
		want  string
	}{
		{"products", `SELECT * FROM "products" WHERE "sku"::text = $1 LIMIT 1`},
		{"public.products", `SELECT * FROM "public"."products" WHERE "sku"::text = $1 LIMIT 1`},
		{`odd"name`, `SELECT * FROM "odd""name" WHERE "sku"::text = $1 LIMIT 1`},
	}
	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			db := &fakeDB{rows: &fakeRows{}}
			_, err := NewPostgres(db, tt.table, "sku", productFields).Find(context.Background(), "x")
			require.NoError(t, err)
			assert.Equal(t, tt.want, db.sql)
		})
	}
}
