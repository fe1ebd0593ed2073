package job

import (
	"fmt"
	"log/slog"
	"time"

	"contractai/service"

	"github.com/robfig/cron/v3"
)

// StartCronJob 定时回收空闲会话，返回的 cron 由调用方 Stop
func StartCronJob(manager *service.Manager, spec string, ttl time.Duration) (*cron.Cron, error) {
	c := cron.New(cron.WithSeconds())

	_, err := c.AddFunc(spec, SweepSessions(manager, ttl))
	if err != nil {
		return nil, fmt.Errorf("invalid sweep spec %q: %w", spec, err)
	}

	c.Start()
	slog.Info("session sweeper started", "spec", spec, "idle_ttl", ttl)
	return c, nil
}

// SweepSessions 单次回收任务
func SweepSessions(manager *service.Manager, ttl time.Duration) func() {
	return func() {
		removed := manager.Sweep(time.Now(), ttl)
		if removed > 0 {
			slog.Info("[Cron] idle sessions removed", "count", removed, "remaining", manager.Len())
		}
	}
}
