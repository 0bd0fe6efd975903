package idx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/mobli/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestNewCarriesCreationTime(t *testing.T) {
	before := time.Now().UTC()
	id := idx.New()

	require.Len(t, id.String(), 26)
	require.WithinDuration(t, before, id.Time(), time.Second)
}

func TestMonotonicWithinMillisecond(t *testing.T) {
	tm := time.Unix(1700000000, 0).UTC()

	a := idx.NewAt(tm)
	b := idx.NewAt(tm)

	require.Less(t, a.String(), b.String())
	require.WithinDuration(t, tm, a.Time(), time.Millisecond)
}

func TestTimeOfInvalidID(t *testing.T) {
	require.True(t, idx.ID("").Time().IsZero())
	require.True(t, idx.ID("not-a-ulid").Time().IsZero())
}
