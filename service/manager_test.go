package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerCreateAndGet(t *testing.T) {
	m := NewManager(Deps{Generator: &stubGenerator{}, SeedSamples: true})

	s := m.Create(context.Background())
	require.NotEmpty(t, s.ID())
	assert.Len(t, s.Snapshot().Contracts, 2)

	got, ok := m.Get(s.ID())
	require.True(t, ok)
	assert.Same(t, s, got)

	_, ok = m.Get("unknown")
	assert.False(t, ok)
	assert.Equal(t, 1, m.Len())
}

func TestManagerSweep(t *testing.T) {
	now := fixedNow
	m := NewManager(Deps{Generator: &stubGenerator{}, Now: func() time.Time { return now }})

	idle := m.Create(context.Background())
	now = now.Add(3 * time.Hour)
	active := m.Create(context.Background())

	removed := m.Sweep(now, 2*time.Hour)
	assert.Equal(t, 1, removed)

	_, ok := m.Get(idle.ID())
	assert.False(t, ok)
	_, ok = m.Get(active.ID())
	assert.True(t, ok)

	assert.Zero(t, m.Sweep(now, 0))
}

func TestManagerSweepSkipsBusy(t *testing.T) {
	gen := &stubGenerator{release: make(chan struct{}), reply: "ok"}
	now := fixedNow
	m := NewManager(Deps{Generator: gen, SeedSamples: true, Now: func() time.Time { return now }})

	s := m.Create(context.Background())
	require.NoError(t, s.SubmitQuery(context.Background(), "What is the term?"))

	assert.Zero(t, m.Sweep(now.Add(5*time.Hour), time.Hour))

	close(gen.release)
	m.Wait()
	assert.Equal(t, 1, m.Sweep(now.Add(5*time.Hour), time.Hour))
}
