package lockdown

import (
	"time"

	"github.com/roylee0704/gron"
	"nightlock/internal/lockdown/interfaces"
	"nightlock/internal/providers"
	"nightlock/internal/services"
	"nightlock/internal/structures"
)

// Scheduler owns the daemon's timers: the 1 Hz tick that drives every
// time-based evaluation in the state machine, and the periodic full
// snapshot. The machine itself holds no ambient timers, so tests can feed
// it synthetic ticks.
type Scheduler struct {
	config  *structures.Config
	logger  providers.Logger
	service services.LockdownServiceInterface
	streak  services.StreakServiceInterface
	metrics providers.MetricsProviderInterface
	cron    *gron.Cron
}

func (s *Scheduler) Init() {
	s.cron = gron.New()

	s.cron.AddFunc(gron.Every(1*time.Second), func() {
		s.service.Tick(time.Now())
	})

	s.cron.AddFunc(gron.Every(s.config.Persistence.SaveInterval), func() {
		start := time.Now()
		if err := s.service.Persist(); err != nil {
			s.logger.Errorf(providers.TypeApp, "Error while persisting session: %s", err)
			return
		}
		if err := s.streak.Persist(); err != nil {
			s.logger.Errorf(providers.TypeApp, "Error while persisting streak: %s", err)
			return
		}
		s.metrics.ObservePersistenceDuration(time.Since(start))
		s.logger.Debugf(providers.TypeApp, "Snapshot persisted")
	})

	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Restore() error {
	if err := s.streak.Restore(); err != nil {
		return err
	}
	return s.service.Restore()
}

func (s *Scheduler) Persist() error {
	start := time.Now()
	s.logger.Infof(providers.TypeApp, "Persisting state...")
	if err := s.service.Persist(); err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting session: %s", err)
		return err
	}
	if err := s.streak.Persist(); err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting streak: %s", err)
		return err
	}
	s.metrics.ObservePersistenceDuration(time.Since(start))
	return nil
}

func NewScheduler(
	config *structures.Config,
	logger providers.Logger,
	service services.LockdownServiceInterface,
	streak services.StreakServiceInterface,
	metrics providers.MetricsProviderInterface,
) interfaces.SchedulerInterface {
	return &Scheduler{
		config:  config,
		logger:  logger,
		service: service,
		streak:  streak,
		metrics: metrics,
	}
}
