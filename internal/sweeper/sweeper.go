// Package sweeper wires up the cron job that periodically clears expired
// password-reset tokens.
package sweeper

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/techBikashRepo/jobbee-api/internal/model"
	"github.com/techBikashRepo/jobbee-api/pkg/database"
)

// Sweeper wraps robfig/cron and manages the maintenance loop.
type Sweeper struct {
	cron *cron.Cron
	spec string
	log  *zap.Logger
}

// New creates a Sweeper firing on the given cron spec, e.g. "@every 1h".
func New(spec string, log *zap.Logger) *Sweeper {
	return &Sweeper{
		cron: cron.New(),
		spec: spec,
		log:  log,
	}
}

// Start registers the job and starts the scheduler. One sweep runs
// immediately so restarts don't leave stale tokens around for a full
// interval.
func (s *Sweeper) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.sweep); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info("Sweeper started", zap.String("spec", s.spec))

	go s.sweep()
	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Sweeper) Stop() {
	s.cron.Stop()
	s.log.Info("Sweeper stopped")
}

func (s *Sweeper) sweep() {
	result := database.GetDB().
		Model(&model.User{}).
		Where("reset_password_token <> '' AND reset_password_expire < ?", time.Now()).
		Updates(map[string]interface{}{
			"reset_password_token":  "",
			"reset_password_expire": nil,
		})
	if result.Error != nil {
		s.log.Error("Sweep failed", zap.Error(result.Error))
		return
	}
	if result.RowsAffected > 0 {
		s.log.Info("Cleared expired reset tokens", zap.Int64("count", result.RowsAffected))
	}
}
