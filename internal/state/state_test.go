package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerToggle(t *testing.T) {
	t.Parallel()

	m := NewManager("sec-1")
	defer m.Shutdown()

	assert.False(t, m.Expanded().Has(0))

	m.Toggle(0)
	assert.True(t, m.Expanded().Has(0))
	assert.False(t, m.Expanded().Has(1), "toggling one region must not affect another")

	m.Toggle(0)
	assert.False(t, m.Expanded().Has(0))
}

func TestManagerSnapshotIsolation(t *testing.T) {
	t.Parallel()

	m := NewManager("sec-1")
	defer m.Shutdown()

	m.Toggle(2)
	snapshot := m.Expanded()
	m.Toggle(2)

	assert.True(t, snapshot.Has(2), "snapshot must not observe later toggles")
	assert.False(t, m.Expanded().Has(2))
}

func TestManagerExpandAll(t *testing.T) {
	t.Parallel()

	m := NewManager("sec-1")
	defer m.Shutdown()

	m.ExpandAll(3)
	set := m.Expanded()
	for i := 0; i < 3; i++ {
		assert.True(t, set.Has(i))
	}
	assert.False(t, set.Has(3))
}

func TestManagerPublishesToggleEvents(t *testing.T) {
	t.Parallel()

	m := NewManager("sec-842")
	defer m.Shutdown()

	ch := m.Subscribe(t.Context())
	m.Toggle(1)

	select {
	case event := <-ch:
		require.Equal(t, EventRegionToggled, event.Type)
		assert.Equal(t, "sec-842", event.Payload.SectionID)
		assert.Equal(t, 1, event.Payload.Region)
		assert.True(t, event.Payload.Expanded)
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timeout waiting for toggle event")
	}
}
