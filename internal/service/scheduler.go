package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the analysis pipeline at a fixed interval, the background
// equivalent of a "repeat analysis every N minutes" loop. Because every run
// is atomic (one lot load, one price fetch, one transactional snapshot
// append), stopping the scheduler between or during runs can never leave a
// partial snapshot behind.
type Scheduler struct {
	analysisService *AnalysisService
	interval        time.Duration
	cron            *cron.Cron
}

// NewScheduler creates a new Scheduler. An interval of 0 disables it.
func NewScheduler(analysisService *AnalysisService, interval time.Duration) *Scheduler {
	return &Scheduler{
		analysisService: analysisService,
		interval:        interval,
		cron:            cron.New(),
	}
}

// Run starts the periodic analysis and blocks until ctx is cancelled, then
// waits for any in-flight run to finish before returning. When the scheduler
// is disabled it just waits for cancellation.
func (s *Scheduler) Run(ctx context.Context) error {
	if s.interval <= 0 {
		<-ctx.Done()
		return nil
	}

	_, err := s.cron.AddFunc(fmt.Sprintf("@every %s", s.interval), func() {
		report, err := s.analysisService.Analyze(ctx, false)
		if err != nil {
			log.Printf("Scheduled analysis failed: %v", err)
			return
		}
		log.Printf("Scheduled analysis completed: %d coins, %d alerts", len(report.Rows), len(report.Alerts))
	})
	if err != nil {
		return fmt.Errorf("failed to schedule analysis: %w", err)
	}

	log.Printf("Starting analysis scheduler (every %s)", s.interval)
	s.cron.Start()

	<-ctx.Done()

	// Stop scheduling and wait for a running job to complete.
	<-s.cron.Stop().Done()
	log.Println("Analysis scheduler stopped")

	return nil
}
