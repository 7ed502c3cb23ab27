package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mariscos-pos/models"
)

var (
	beer    = models.Product{ID: 1, Name: "Corona 1/2", Price: 45.00}
	ceviche = models.Product{ID: 2, Name: "Ceviche Med", Price: 120.00}
	mojarra = models.Product{ID: 3, Name: "Mojarra frita", VariablePrice: true}
)

func price(v float64) *float64 { return &v }

func TestOpenIsIdempotent(t *testing.T) {
	l := New()
	l.Open("3", "Mesa 3")
	_, err := l.AddLine("3", beer, nil)
	require.NoError(t, err)

	again := l.Open("3", "Mesa 3")
	assert.Len(t, again.Lines, 1, "re-opening must return the existing order unchanged")
	assert.Equal(t, 45.00, again.Total)
}

func TestAddLineFixedPriceMerges(t *testing.T) {
	l := New()
	l.Open("1", "Mesa 1")

	first, err := l.AddLine("1", beer, nil)
	require.NoError(t, err)
	second, err := l.AddLine("1", beer, nil)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 2, second.Quantity)

	snap, _ := l.Get("1")
	assert.Len(t, snap.Lines, 1)
	assert.Equal(t, 90.00, snap.Total)
}

func TestAddLineVariablePriceNeverMerges(t *testing.T) {
	l := New()
	l.Open("1", "Mesa 1")

	a, err := l.AddLine("1", mojarra, price(250))
	require.NoError(t, err)
	b, err := l.AddLine("1", mojarra, price(300))
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	snap, _ := l.Get("1")
	assert.Len(t, snap.Lines, 2)
	assert.Equal(t, 550.00, snap.Total)
}

func TestAddLineVariablePriceValidation(t *testing.T) {
	l := New()
	l.Open("1", "Mesa 1")

	_, err := l.AddLine("1", mojarra, nil)
	assert.ErrorIs(t, err, ErrPriceRequired)

	_, err = l.AddLine("1", mojarra, price(-10))
	assert.ErrorIs(t, err, ErrInvalidPrice)

	snap, _ := l.Get("1")
	assert.Empty(t, snap.Lines, "a rejected add must not create a line")
}

func TestAddLineNoOpenOrder(t *testing.T) {
	l := New()
	_, err := l.AddLine("9", beer, nil)
	assert.ErrorIs(t, err, ErrNoOpenOrder)
}

func TestRunningTotalInvariant(t *testing.T) {
	l := New()
	l.Open("2", "Mesa 2")

	_, err := l.AddLine("2", beer, nil)
	require.NoError(t, err)
	_, err = l.AddLine("2", beer, nil)
	require.NoError(t, err)
	_, err = l.AddLine("2", ceviche, nil)
	require.NoError(t, err)
	v, err := l.AddLine("2", mojarra, price(300))
	require.NoError(t, err)
	require.NoError(t, l.AdjustQuantity("2", v.ID, +1))
	_, err = l.EditLine("2", v.ID, nil, price(280))
	require.NoError(t, err)

	snap, _ := l.Get("2")
	want := 0.0
	for _, li := range snap.Lines {
		want += float64(li.Quantity) * li.UnitPrice
	}
	assert.Equal(t, want, snap.Total)
	assert.Equal(t, 770.00, snap.Total) // 2*45 + 120 + 2*280
}

func TestAdjustQuantityRemovesLineAtZero(t *testing.T) {
	l := New()
	l.Open("1", "Mesa 1")
	li, err := l.AddLine("1", beer, nil)
	require.NoError(t, err)

	require.NoError(t, l.AdjustQuantity("1", li.ID, -1))

	snap, _ := l.Get("1")
	assert.Empty(t, snap.Lines)
	assert.Equal(t, 0.00, snap.Total)

	assert.ErrorIs(t, l.AdjustQuantity("1", li.ID, +1), ErrLineNotFound)
}

func TestEditLine(t *testing.T) {
	l := New()
	l.Open("1", "Mesa 1")
	li, err := l.AddLine("1", beer, nil)
	require.NoError(t, err)

	name := "Corona 1/2 (sin alcohol)"
	edited, err := l.EditLine("1", li.ID, &name, price(50))
	require.NoError(t, err)
	assert.Equal(t, name, edited.Name)
	assert.Equal(t, 50.00, edited.UnitPrice)

	_, err = l.EditLine("1", li.ID, nil, price(-1))
	assert.ErrorIs(t, err, ErrInvalidPrice)

	empty := ""
	_, err = l.EditLine("1", li.ID, &empty, nil)
	assert.ErrorIs(t, err, ErrInvalidName)

	snap, _ := l.Get("1")
	assert.Equal(t, 50.00, snap.Total, "rejected edits must leave the line untouched")
}

func TestEditLineRejectedEditIsAllOrNothing(t *testing.T) {
	l := New()
	l.Open("1", "Mesa 1")
	li, err := l.AddLine("1", beer, nil)
	require.NoError(t, err)

	name := "Victoria 1/2"
	_, err = l.EditLine("1", li.ID, &name, price(-5))
	assert.ErrorIs(t, err, ErrInvalidPrice)

	snap, _ := l.Get("1")
	require.Len(t, snap.Lines, 1)
	assert.Equal(t, "Corona 1/2", snap.Lines[0].Name,
		"a rejected price must not let the name edit through")
	assert.Equal(t, 45.00, snap.Lines[0].UnitPrice)

	empty := ""
	_, err = l.EditLine("1", li.ID, &empty, price(50))
	assert.ErrorIs(t, err, ErrInvalidName)

	snap, _ = l.Get("1")
	assert.Equal(t, 45.00, snap.Lines[0].UnitPrice,
		"a rejected name must not let the price edit through")
}

func TestCloseIfEmpty(t *testing.T) {
	l := New()
	l.Open("5", "Mesa 5")
	_, err := l.AddLine("5", beer, nil)
	require.NoError(t, err)

	assert.ErrorIs(t, l.CloseIfEmpty("5"), ErrTableOccupied)
	assert.True(t, l.Occupied("5"), "failed close must leave the table occupied")

	li := mustSnapshot(t, l, "5").Lines[0]
	require.NoError(t, l.AdjustQuantity("5", li.ID, -1))
	require.NoError(t, l.CloseIfEmpty("5"))
	assert.False(t, l.Occupied("5"))

	assert.ErrorIs(t, l.CloseIfEmpty("5"), ErrNoOpenOrder)
}

func TestTransfer(t *testing.T) {
	l := New()
	l.Open("1", "Mesa 1")
	_, err := l.AddLine("1", ceviche, nil)
	require.NoError(t, err)

	l.Open("2", "Mesa 2")
	assert.ErrorIs(t, l.Transfer("1", "2", "Mesa 2"), ErrTableOccupied)

	require.NoError(t, l.Transfer("1", "4", "Mesa 4"))
	assert.False(t, l.Occupied("1"))

	snap, ok := l.Get("4")
	require.True(t, ok)
	assert.Equal(t, "Mesa 4", snap.Label)
	assert.Equal(t, 120.00, snap.Total)

	assert.ErrorIs(t, l.Transfer("9", "10", "Mesa 10"), ErrNoOpenOrder)
}

func TestTakeoutTab(t *testing.T) {
	l := New()
	snap := l.Open("takeout", "Para llevar")
	assert.Equal(t, "Para llevar", snap.Label)
	assert.True(t, l.Occupied("takeout"))
}

func mustSnapshot(t *testing.T, l *Ledger, key string) Snapshot {
	t.Helper()
	snap, ok := l.Get(key)
	require.True(t, ok)
	return snap
}
