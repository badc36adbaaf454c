package scheduler

import (
	"errors"
	"fmt"
	"time"

	"github.com/consolenews/newsletter-service/internal/config"
	apperrors "github.com/consolenews/newsletter-service/internal/errors"
	"github.com/consolenews/newsletter-service/internal/service/dispatch"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// CycleRunner is the dispatcher surface the cron trigger invokes.
type CycleRunner interface {
	RunScheduledCycle() (*dispatch.CycleResult, error)
}

// Scheduler owns the process-wide cron lifecycle for newsletter sending.
type Scheduler struct {
	cronEngine *cron.Cron
	dispatcher CycleRunner
	cfg        config.CronConfig
	log        *logrus.Logger
}

func New(cfg config.CronConfig, dispatcher CycleRunner, log *logrus.Logger) *Scheduler {
	return &Scheduler{
		dispatcher: dispatcher,
		cfg:        cfg,
		log:        log,
	}
}

// Start registers the weekly job when the cron feature flag is enabled. The
// schedule is evaluated in the configured time zone.
func (s *Scheduler) Start() error {
	if !s.cfg.Enabled {
		s.log.Info("newsletter cron service disabled")
		return nil
	}

	location, err := time.LoadLocation(s.cfg.Timezone)
	if err != nil {
		return fmt.Errorf("load cron timezone %q: %w", s.cfg.Timezone, err)
	}

	s.cronEngine = cron.New(cron.WithLocation(location))
	if _, err := s.cronEngine.AddFunc(s.cfg.WeeklySchedule, s.runCycle); err != nil {
		return fmt.Errorf("register weekly newsletter job: %w", err)
	}

	s.cronEngine.Start()
	s.log.WithFields(logrus.Fields{
		"schedule": s.cfg.WeeklySchedule,
		"timezone": s.cfg.Timezone,
	}).Info("weekly newsletter cron configured")
	return nil
}

// runCycle never lets a cycle failure escape into the cron engine.
func (s *Scheduler) runCycle() {
	s.log.Info("starting weekly newsletter send")

	res, err := s.dispatcher.RunScheduledCycle()
	if err != nil {
		if errors.Is(err, apperrors.ErrCycleRunning) {
			s.log.Warn("previous newsletter cycle still running, skipping this trigger")
			return
		}
		s.log.WithError(err).Error("weekly newsletter cycle failed")
		return
	}

	s.log.WithFields(logrus.Fields{
		"newsletters": res.NewslettersProcessed,
		"emails_sent": res.EmailsSent,
	}).Info("weekly newsletter sent")
}

// Stop drains the cron engine, waiting for a running job to finish.
func (s *Scheduler) Stop() {
	if s.cronEngine == nil {
		return
	}
	<-s.cronEngine.Stop().Done()
	s.log.Info("newsletter scheduler stopped")
}
