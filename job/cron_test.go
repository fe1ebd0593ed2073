package job

import (
	"context"
	"testing"
	"time"

	"contractai/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartCronJobInvalidSpec(t *testing.T) {
	_, err := StartCronJob(service.NewManager(service.Deps{}), "every now and then", time.Hour)
	assert.ErrorContains(t, err, "invalid sweep spec")
}

func TestStartCronJob(t *testing.T) {
	c, err := StartCronJob(service.NewManager(service.Deps{}), "0 */10 * * * *", time.Hour)
	require.NoError(t, err)
	defer c.Stop()

	assert.Len(t, c.Entries(), 1)
}

func TestSweepSessions(t *testing.T) {
	now := time.Now().Add(-3 * time.Hour)
	m := service.NewManager(service.Deps{Now: func() time.Time { return now }})
	m.Create(context.Background())

	SweepSessions(m, 2*time.Hour)()
	assert.Zero(t, m.Len())
}
