package idx_test

import (
	"testing"
	"time"

	"github.com/croftworks/credstore/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	a := idx.New()
	require.Len(t, a.String(), 26)
	require.NotEqual(t, a, idx.New())
}

func TestOrdering(t *testing.T) {
	a := idx.NewAt(time.Unix(1, 0).UTC())
	b := idx.NewAt(time.Unix(2, 0).UTC())

	// Attempt ids sort lexicographically by creation time.
	require.Less(t, a.String(), b.String())
}

func TestSameTimestampStillOrdered(t *testing.T) {
	tm := time.Unix(1, 0).UTC()

	a := idx.NewAt(tm)
	b := idx.NewAt(tm)

	// The monotonic entropy source keeps ids ordered within one millisecond.
	require.Less(t, a.String(), b.String())
}
