package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"EquityLens/internal/notifier"
	"EquityLens/internal/pipeline"
	"EquityLens/internal/recorder"
)

// Scheduler runs periodic analyses for the configured tickers and pushes
// reports to the notifier.
type Scheduler struct {
	Cron     *cron.Cron
	Pipeline *pipeline.Pipeline
	Notifier notifier.Notifier
	Recorder recorder.Recorder
	Tickers  []string
	Opts     pipeline.Options
	Ctx      context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, p *pipeline.Pipeline, n notifier.Notifier, rec recorder.Recorder,
	tickers []string, opts pipeline.Options) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Pipeline: p,
		Notifier: n,
		Recorder: rec,
		Tickers:  tickers,
		Opts:     opts,
		Ctx:      ctx,
	}
}

// Register registers the recurring analysis task.
func (s *Scheduler) Register(analysisCron string) error {
	if _, err := s.Cron.AddFunc(analysisCron, s.analysisTask); err != nil {
		return fmt.Errorf("register analysis task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the analysis task immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.analysisTask()
}

func (s *Scheduler) analysisTask() {
	log.Printf("[INFO] running scheduled analysis for %d tickers", len(s.Tickers))
	for _, ticker := range s.Tickers {
		s.analyzeOne(ticker)
	}
}

func (s *Scheduler) analyzeOne(ticker string) {
	analysis, err := s.Pipeline.Analyze(s.Ctx, ticker, s.Opts)
	if err != nil {
		log.Printf("[ERROR] analyze %s: %v", ticker, err)
		s.trySend(notifier.FormatError(ticker, err))
		return
	}

	s.trySend(notifier.FormatAnalysis(analysis))

	raw, err := json.Marshal(analysis)
	if err != nil {
		log.Printf("[ERROR] marshal analysis %s: %v", ticker, err)
		return
	}
	runID := uuid.NewString()
	if err := recorder.RecordAnalysis(s.Recorder, runID, analysis, string(raw)); err != nil {
		log.Printf("[ERROR] record analysis %s: %v", ticker, err)
	}
}

// HandleCommand processes a user command and returns a reply. Analysis
// commands reply asynchronously through the notifier.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}
	switch fields[0] {
	case "/analyze":
		if len(fields) < 2 {
			return "Usage: /analyze TICKER"
		}
		go s.analyzeOne(strings.ToUpper(fields[1]))
		return fmt.Sprintf("Analyzing %s…", strings.ToUpper(fields[1]))
	case "/run":
		go s.analysisTask()
		return "Running full analysis…"
	case "/tickers":
		return "Watching: " + strings.Join(s.Tickers, ", ")
	default:
		return "Commands:\n• /analyze TICKER\n• /run\n• /tickers"
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
