package importer

import (
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/sheetimport-go/pkg/sheetimport/models"
)

type invoice struct {
	Number   string
	Customer pgtype.Text
	Qty      pgtype.Int8
	Amount   pgtype.Numeric
	Paid     pgtype.Bool
	Due      pgtype.Date
	Rate     pgtype.Float8
}

var invoiceSchema = MustSchema(
	StringField("number", func(r *invoice) *string { return &r.Number }),
	TextField("customer", func(r *invoice) *pgtype.Text { return &r.Customer }),
	IntField("qty", func(r *invoice) *pgtype.Int8 { return &r.Qty }),
	DecimalField("amount", func(r *invoice) *pgtype.Numeric { return &r.Amount }),
	BoolField("paid", func(r *invoice) *pgtype.Bool { return &r.Paid }),
	DateField("due", func(r *invoice) *pgtype.Date { return &r.Due }),
	FloatField("rate", func(r *invoice) *pgtype.Float8 { return &r.Rate }),
)

var invoiceDiff = []string{"customer", "qty", "amount", "paid", "due"}

func decimal(s string) pgtype.Numeric {
	n, err := ParseDecimal(s)
	if err != nil {
		panic(err)
	}
	return n
}

func sampleInvoice() *invoice {
	return &invoice{
		Number:   "INV-1",
		Customer: pgtype.Text{String: "ACME", Valid: true},
		Qty:      pgtype.Int8{Int64: 3, Valid: true},
		Amount:   decimal("10.0"),
		Paid:     pgtype.Bool{Bool: false, Valid: true},
		Due:      pgtype.Date{Time: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), Valid: true},
	}
}

func TestElement_NewWithoutPrior(t *testing.T) {
	e := NewElement(0, invoiceSchema, invoiceDiff)
	e.SetValue(sampleInvoice())

	deltas, ok, err := e.PropertyDeltas()
	require.NoError(t, err)
	assert.False(t, ok, "deltas are absent without prior record")
	assert.Nil(t, deltas)

	assert.False(t, e.IsNew())
	assert.False(t, e.IsModified())
	assert.False(t, e.IsUnmodified())
	_, err = e.State()
	assert.ErrorIs(t, err, ErrNotReconciled)

	e.SetReconciled(true)
	assert.True(t, e.IsNew())
	assert.False(t, e.IsModified())
	assert.False(t, e.IsUnmodified())
	state, err := e.State()
	require.NoError(t, err)
	assert.Equal(t, StateNew, state)
}

func TestElement_Unmodified(t *testing.T) {
	e := NewElement(1, invoiceSchema, invoiceDiff)
	e.SetValue(sampleInvoice())
	e.Reconcile(sampleInvoice())

	deltas, ok, err := e.PropertyDeltas()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotNil(t, deltas, "computed-empty is an empty list, not absent")
	assert.Empty(t, deltas)
	assert.True(t, e.IsUnmodified())
	assert.False(t, e.IsModified())
	assert.False(t, e.IsNew())
}

func TestElement_DecimalComparesNumerically(t *testing.T) {
	old := sampleInvoice()
	old.Amount = decimal("10.0")
	cur := sampleInvoice()
	cur.Amount = decimal("10.00")

	e := NewElement(0, invoiceSchema, invoiceDiff)
	e.SetValue(cur)
	e.Reconcile(old)

	deltas, ok, err := e.PropertyDeltas()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Empty(t, deltas)
	assert.True(t, e.IsUnmodified())
}

func TestElement_AbsentToPresentIsAChange(t *testing.T) {
	old := sampleInvoice()
	old.Amount = pgtype.Numeric{}
	cur := sampleInvoice()
	cur.Amount = decimal("5")

	e := NewElement(0, invoiceSchema, invoiceDiff)
	e.SetValue(cur)
	e.Reconcile(old)

	deltas, ok, err := e.PropertyDeltas()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []models.PropertyDelta{{Field: "amount", OldValue: "", NewValue: "5"}}, deltas)
	assert.True(t, e.IsModified())
}

func TestElement_DeltasFollowDiffFieldOrder(t *testing.T) {
	old := sampleInvoice()
	cur := sampleInvoice()
	cur.Due = pgtype.Date{Time: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), Valid: true}
	cur.Customer = pgtype.Text{}
	cur.Number = "INV-2"   // not a diff field
	cur.Rate.Float64 = 0.5 // not a diff field

	e := NewElement(0, invoiceSchema, invoiceDiff)
	e.SetValue(cur)
	e.Reconcile(old)

	deltas, _, err := e.PropertyDeltas()
	require.NoError(t, err)
	assert.Equal(t, []models.PropertyDelta{
		{Field: "customer", OldValue: "ACME", NewValue: ""},
		{Field: "due", OldValue: "2024-05-01", NewValue: "2024-06-01"},
	}, deltas)
}

func TestElement_FaultBlocksSelection(t *testing.T) {
	e := NewElement(0, invoiceSchema, invoiceDiff)
	e.PutFault(ValidationFailed{Field: "x", Reason: "bad"})
	e.SetSelected(true)
	assert.False(t, e.Selected())
	assert.True(t, e.IsFaulty())

	e.RemoveFault("x")
	assert.False(t, e.IsFaulty())
	assert.False(t, e.Selected(), "a selection attempted while faulty is not remembered")
	e.SetSelected(true)
	assert.True(t, e.Selected())

	e.PutFault(ReferenceNotFound{Field: "customer", Ref: "ACME"})
	assert.False(t, e.Selected(), "a later fault hides the selection")
}

func TestElement_ReassignValueRecomputesDeltas(t *testing.T) {
	e := NewElement(0, invoiceSchema, invoiceDiff)
	e.SetValue(sampleInvoice())
	e.Reconcile(sampleInvoice())
	require.True(t, e.IsUnmodified())

	changed := sampleInvoice()
	changed.Qty = pgtype.Int8{Int64: 4, Valid: true}
	e.SetValue(changed)

	assert.True(t, e.Reconciled(), "reassignment keeps the reconciled flag")
	deltas, ok, err := e.PropertyDeltas()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []models.PropertyDelta{{Field: "qty", OldValue: "3", NewValue: "4"}}, deltas)
	assert.True(t, e.IsModified())

	e.SetOldValue(nil)
	_, ok, _ = e.PropertyDeltas()
	assert.False(t, ok)
	assert.True(t, e.IsNew())
}

func TestElement_MissingAccessor(t *testing.T) {
	e := NewElement(0, invoiceSchema, []string{"qty", "nope"})
	e.SetValue(sampleInvoice())
	e.Reconcile(sampleInvoice())

	_, _, err := e.PropertyDeltas()
	var missing *MissingAccessorError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "nope", missing.Field)

	assert.False(t, e.IsModified())
	assert.False(t, e.IsUnmodified())
	_, err = e.State()
	assert.Error(t, err)
}

func TestElement_AdditionalDeltasAndFormatter(t *testing.T) {
	extra := WithAdditionalDeltas(func(value, old *invoice) []models.PropertyDelta {
		if value.Number == old.Number {
			return nil
		}
		return []models.PropertyDelta{{Field: "number", OldValue: old.Number, NewValue: value.Number}}
	})
	upper := WithValueFormatter(func(f Field[invoice], rec *invoice) string {
		return "<" + f.Format(rec) + ">"
	})

	old := sampleInvoice()
	cur := sampleInvoice()
	cur.Number = "INV-9"
	cur.Paid = pgtype.Bool{Bool: true, Valid: true}

	e := NewElement(0, invoiceSchema, invoiceDiff, extra, upper)
	e.SetValue(cur)
	e.Reconcile(old)

	deltas, _, err := e.PropertyDeltas()
	require.NoError(t, err)
	assert.Equal(t, []models.PropertyDelta{
		{Field: "paid", OldValue: "<false>", NewValue: "<true>"},
		{Field: "number", OldValue: "INV-1", NewValue: "INV-9"},
	}, deltas)
}

func TestElement_Faults(t *testing.T) {
	e := NewElement(0, invoiceSchema, invoiceDiff)
	e.PutFault(BindingFailed{Field: "qty", Value: "x", Reason: "not an integer"})
	e.PutFault(ReferenceNotFound{Field: "customer", Ref: "ACME"})
	e.PutFault(ValidationFailed{Field: "qty", Reason: "must be positive"})

	faults := e.Faults()
	require.Len(t, faults, 2)
	assert.Equal(t, ValidationFailed{Field: "qty", Reason: "must be positive"}, faults[0], "overwrite keeps position")
	assert.Equal(t, "customer", faults[1].Key())

	f, ok := e.Fault("customer")
	require.True(t, ok)
	assert.Equal(t, `customer: reference "ACME" not found`, f.Message())

	e.RemoveFault("missing")
	assert.Len(t, e.Faults(), 2)

	state, err := e.State()
	require.NoError(t, err)
	assert.Equal(t, StateFaulty, state, "faulty takes precedence over reconciliation")
}

func TestElement_DiffFieldsAreCopied(t *testing.T) {
	fields := []string{"qty"}
	e := NewElement(0, invoiceSchema, fields)
	fields[0] = "amount"
	assert.Equal(t, []string{"qty"}, e.DiffFields())
}

func TestFormatDecimal(t *testing.T) {
	tests := []struct {
		n    pgtype.Numeric
		want string
	}{
		{pgtype.Numeric{}, ""},
		{pgtype.Numeric{Int: big.NewInt(5), Exp: -3, Valid: true}, "0.005"},
		{pgtype.Numeric{Int: big.NewInt(-1234), Exp: -2, Valid: true}, "-12.34"},
		{pgtype.Numeric{Int: big.NewInt(12), Exp: 2, Valid: true}, "1200"},
		{pgtype.Numeric{NaN: true, Valid: true}, "NaN"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDecimal(tt.n))
	}
}

func TestDecimalEqual(t *testing.T) {
	assert.True(t, decimalEqual(decimal("10.0"), decimal("10.00")))
	assert.True(t, decimalEqual(decimal("1200"), pgtype.Numeric{Int: big.NewInt(12), Exp: 2, Valid: true}))
	assert.False(t, decimalEqual(decimal("10.01"), decimal("10")))
	assert.False(t, decimalEqual(pgtype.Numeric{}, decimal("0")))
	assert.True(t, decimalEqual(pgtype.Numeric{}, pgtype.Numeric{}))
}
