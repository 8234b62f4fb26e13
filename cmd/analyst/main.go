package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"EquityLens/internal/aggregate"
	"EquityLens/internal/backtest"
	"EquityLens/internal/config"
	"EquityLens/internal/notifier"
	"EquityLens/internal/pipeline"
	"EquityLens/internal/provider"
	"EquityLens/internal/recorder"
	"EquityLens/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	var (
		tickerFlag = flag.String("ticker", "", "analyze one ticker and print JSON to stdout")
		watchFlag  = flag.Bool("watch", false, "run on a schedule and push reports to Telegram")
		yearsFlag  = flag.Int("years", 0, "years of price history (overrides config)")
		indFlag    = flag.String("indicators", "", "comma-separated indicator keys (default all)")
	)
	flag.Parse()

	// .env is optional; real env vars win either way.
	if err := godotenv.Load(); err == nil {
		log.Println("[INFO] loaded .env")
	}

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	opts := pipeline.Options{Years: cfg.Analysis.Years, Indicators: cfg.Analysis.Indicators}
	if *yearsFlag > 0 {
		opts.Years = *yearsFlag
	}
	if *indFlag != "" {
		opts.Indicators = nil
		for _, k := range strings.Split(*indFlag, ",") {
			if k = strings.TrimSpace(k); k != "" {
				opts.Indicators = append(opts.Indicators, k)
			}
		}
	}

	p := buildPipeline(cfg)

	switch {
	case *tickerFlag != "":
		runOnce(p, strings.ToUpper(*tickerFlag), opts)
	case *watchFlag:
		runWatch(cfg, p, opts)
	default:
		fmt.Fprintln(os.Stderr, "usage: analyst -ticker AAPL | analyst -watch")
		flag.PrintDefaults()
		os.Exit(2)
	}
}

func buildPipeline(cfg *config.Config) *pipeline.Pipeline {
	prices := provider.NewYahoo(cfg.Proxy)
	log.Printf("[INFO] price source: %s", prices.Name())

	var fundamentals provider.FundamentalsProvider
	if cfg.Providers.FinancialDatasetsKey != "" {
		fd := provider.NewFData(cfg.Providers.FinancialDatasetsKey, cfg.Proxy)
		fundamentals = fd
		log.Printf("[INFO] fundamentals source: %s", fd.Name())
	} else {
		log.Println("[WARN] no fundamentals API key, running technical-only analysis")
	}

	engine := backtest.NewEngine(cfg.Analysis.Commission)
	advisor := aggregate.NewAdvisor(cfg.Anthropic.APIKey, cfg.Anthropic.Model)

	return pipeline.New(prices, fundamentals, engine, advisor)
}

func runOnce(p *pipeline.Pipeline, ticker string, opts pipeline.Options) {
	analysis, err := p.Analyze(context.Background(), ticker, opts)
	if err != nil {
		log.Fatalf("[FATAL] analyze %s: %v", ticker, err)
	}
	out, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		log.Fatalf("[FATAL] marshal analysis: %v", err)
	}
	fmt.Println(string(out))
}

func runWatch(cfg *config.Config, p *pipeline.Pipeline, opts pipeline.Options) {
	if err := cfg.ValidateWatch(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	tn := notifier.NewTelegram(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(ctx, p, tn, rec, cfg.Analysis.Tickers, opts)
	if err := sched.Register(cfg.Schedule.AnalysisCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Println("[INFO] Telegram polling started")

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing analysis now")
		go sched.RunNow()
	}

	log.Println("[INFO] EquityLens is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] EquityLens stopped")
}
