package cron

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// IdleReaper stops sessions that have not moved for longer than idle.
type IdleReaper interface {
	ReapIdle(idle time.Duration) int
}

// StartSessionReaper checks for idle voice sessions every minute.
func StartSessionReaper(r IdleReaper, idle time.Duration, logger *zap.Logger) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc("@every 1m", func() {
		if n := r.ReapIdle(idle); n > 0 {
			logger.Info("Stopped idle voice sessions", zap.Int("count", n))
		}
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}
