package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"time"

	"familyfinance/internal/analytics"
	"familyfinance/internal/backend"
	"familyfinance/internal/cli"
	"familyfinance/internal/config"
	"familyfinance/internal/core"
	"familyfinance/internal/log"
	"familyfinance/internal/period"
	"familyfinance/internal/services"
)

func main() {
	envFile := flag.String("env", ".env", "dotenv file to load before reading configuration")
	periodFlag := flag.String("period", "", "report period: week, month or year (default REPORT_PERIOD)")
	refFlag := flag.String("ref", "", "reference date, YYYY-MM-DD (default today)")
	periodsBack := flag.Int("periods-back", 0, "savings series length (default SAVINGS_PERIODS_BACK)")
	top := flag.Int("top", 0, "top expense categories (default TOP_CATEGORIES_LIMIT)")
	flag.Parse()

	cli.LoadEnvFile(*envFile)
	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"))
	cfg := cli.LoadAndValidateConfig(logger)

	opts := analytics.DashboardOptions{
		Period:             period.Month,
		Reference:          core.RecordDay(time.Now()),
		SavingsPeriodsBack: cfg.SavingsPeriodsBack,
		TopCategoriesLimit: cfg.TopCategoriesLimit,
	}

	kindName := cfg.ReportPeriod
	if *periodFlag != "" {
		kindName = *periodFlag
	}
	if k, ok := period.ParseKind(kindName); ok {
		opts.Period = k
	} else {
		logger.Warn("Unknown period, using month", log.FieldPeriod, kindName)
	}

	if *refFlag != "" {
		ref, err := core.ParseDate(*refFlag)
		if err != nil {
			logger.Error("Invalid reference date", log.FieldReference, *refFlag, log.FieldError, err)
			os.Exit(2)
		}
		opts.Reference = ref
	}
	if *periodsBack > 0 {
		opts.SavingsPeriodsBack = *periodsBack
	}
	if *top > 0 {
		opts.TopCategoriesLimit = *top
	}

	os.Exit(run(logger, cfg, opts))
}

func run(logger *log.Logger, cfg *config.Config, opts analytics.DashboardOptions) int {
	ctx, stop := cli.SignalContext(context.Background())
	defer stop()

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", log.FieldError, err)
		return 1
	}

	result, err := backend.NewFactory(logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		logger.Error("Failed to initialize backend", log.FieldError, err, "backend", backendCfg.Type)
		return 1
	}
	defer func() {
		if err := result.Close(); err != nil {
			logger.Error("Backend cleanup failed", log.FieldError, err)
		}
	}()

	report, err := services.NewDashboardService(result.Reader, logger).BuildDashboard(ctx, opts)
	if err != nil {
		logger.Error("Failed to build dashboard", log.FieldError, err)
		return 1
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		logger.Error("Failed to write report", log.FieldOperation, log.OpRender, log.FieldError, err)
		return 1
	}
	return 0
}
