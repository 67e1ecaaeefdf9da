package gossip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tos-network/crds/crds"
)

func TestValueBroadcastNeverInvalidates(t *testing.T) {
	b := &valueBroadcast{msg: []byte("payload")}
	other := &valueBroadcast{msg: []byte("other")}

	assert.False(t, b.Invalidates(other))
	assert.Equal(t, []byte("payload"), b.Message())

	// Finished is a no-op; it must not panic.
	b.Finished()
}

func TestOutcomeLabel(t *testing.T) {
	assert.Equal(t, "old_value", outcomeLabel(crds.ErrOldValue))
	assert.Equal(t, "duplicate_value", outcomeLabel(crds.ErrDuplicateValue))
	assert.Equal(t, "resource_error", outcomeLabel(crds.ErrResourceError))
}
