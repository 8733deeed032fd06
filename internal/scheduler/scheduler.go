package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/sahilk27/wattwise/internal/config"
	"github.com/sahilk27/wattwise/internal/repository/mongodb"
	"github.com/sahilk27/wattwise/internal/service/ledger"
	"github.com/sahilk27/wattwise/pkg/clients/webhook"
)

// Scheduler runs the nightly usage digest. It sits outside the ledger core
// and calls it the same way the HTTP layer does.
type Scheduler struct {
	cron      *cron.Cron
	ledgerSvc *ledger.Service
	users     mongodb.UserRepository
	webhook   *webhook.Client
	cfg       config.DigestConfig
	logger    *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.DigestConfig, ledgerSvc *ledger.Service, users mongodb.UserRepository, client *webhook.Client, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:      cron.New(),
		ledgerSvc: ledgerSvc,
		users:     users,
		webhook:   client,
		cfg:       cfg,
		logger:    logger,
	}
}

// Start registers and starts the digest job.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.sendDigests); err != nil {
		s.logger.Error("failed to schedule usage digest", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) sendDigests() {
	s.logger.Info("generating usage digests")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	usernames, err := s.users.ListUsernames(ctx)
	if err != nil {
		s.logger.Error("failed to list users for digest", zap.Error(err))
		return
	}

	sent := 0
	for _, username := range usernames {
		records, err := s.ledgerSvc.GetRange(ctx, username, s.cfg.WindowDays)
		if err != nil {
			s.logger.Error("failed to load digest window", zap.String("username", username), zap.Error(err))
			continue
		}
		if len(records) == 0 {
			continue
		}

		digest := webhook.Digest{
			Username:    username,
			WindowDays:  s.cfg.WindowDays,
			Summary:     ledger.Summarize(records),
			GeneratedAt: time.Now(),
		}

		if err := s.webhook.PostDigest(ctx, digest); err != nil {
			s.logger.Error("failed to deliver digest", zap.String("username", username), zap.Error(err))
			continue
		}
		sent++
	}

	s.logger.Info("usage digests delivered", zap.Int("sent", sent), zap.Int("users", len(usernames)))
}
