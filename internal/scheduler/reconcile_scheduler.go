package scheduler

import (
	"github.com/dalil-mashhad/dalil-backend/internal/app/service"
	"github.com/dalil-mashhad/dalil-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// ReconcileScheduler periodically rebuilds the rating and likes caches.
type ReconcileScheduler struct {
	cron      *cron.Cron
	spec      string
	reconcile service.ReconcileService
}

func NewReconcileScheduler(spec string, reconcile service.ReconcileService) *ReconcileScheduler {
	return &ReconcileScheduler{
		cron:      cron.New(),
		spec:      spec,
		reconcile: reconcile,
	}
}

// Start registers the job and starts the cron runner. An invalid spec is returned as an error.
func (s *ReconcileScheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, s.run)
	if err != nil {
		logger.Error("Failed to add cron job for cache reconcile", err, map[string]interface{}{
			"spec": s.spec,
		})
		return err
	}

	s.cron.Start()
	logger.Info("Reconcile scheduler started", map[string]interface{}{
		"spec": s.spec,
	})
	return nil
}

func (s *ReconcileScheduler) run() {
	logger.Info("Starting scheduled cache reconcile", nil)

	if _, err := s.reconcile.ReconcileAll(); err != nil {
		logger.Error("Scheduled cache reconcile finished with errors", err)
		return
	}
	logger.Info("Scheduled cache reconcile finished", nil)
}

func (s *ReconcileScheduler) Stop() {
	logger.Info("Stopping reconcile scheduler...", nil)
	<-s.cron.Stop().Done()
	logger.Info("Reconcile scheduler stopped", nil)
}
