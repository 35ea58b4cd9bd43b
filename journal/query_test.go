package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTransaction(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	ts := time.Date(2024, 4, 10, 9, 0, 0, 0, time.UTC)
	want := sampleRecord("01HV0000000000000000000001", ts)
	require.NoError(t, j.RecordTransaction(want))

	got, err := j.GetTransaction(want.ID)
	require.NoError(t, err)

	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Symbol, got.Symbol)
	assert.Equal(t, want.Kind, got.Kind)
	assert.Equal(t, want.Quantity, got.Quantity)
	assert.True(t, want.UnitPrice.Equal(got.UnitPrice))
	assert.True(t, want.Amount.Equal(got.Amount))
	assert.True(t, want.CashAfter.Equal(got.CashAfter))
	assert.True(t, want.Time.Equal(got.Time))
}

func TestGetTransactionNotFound(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	_, err := j.GetTransaction("nonexistent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestListBetween(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	require.NoError(t, j.RecordTransaction(sampleRecord("late", day.Add(15*time.Hour))))
	require.NoError(t, j.RecordTransaction(sampleRecord("early", day.Add(9*time.Hour))))
	require.NoError(t, j.RecordTransaction(sampleRecord("before", day.Add(-time.Minute))))
	require.NoError(t, j.RecordTransaction(sampleRecord("after", day.Add(24*time.Hour))))

	recs, err := j.ListBetween(day, day.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "early", recs[0].ID)
	assert.Equal(t, "late", recs[1].ID)
}

func TestListBetweenEmpty(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	recs, err := j.ListBetween(time.Now().Add(-time.Hour), time.Now())
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestListBySymbol(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	ts := time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)
	tcs := sampleRecord("A", ts)
	sbin := sampleRecord("B", ts.Add(time.Minute))
	sbin.Symbol = "SBIN"
	tcsSell := sampleRecord("C", ts.Add(2*time.Minute))
	tcsSell.Kind = "SELL"

	for _, r := range []TransactionRecord{tcs, sbin, tcsSell} {
		require.NoError(t, j.RecordTransaction(r))
	}

	recs, err := j.ListBySymbol("TCS")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "BUY", recs[0].Kind)
	assert.Equal(t, "SELL", recs[1].Kind)
}
