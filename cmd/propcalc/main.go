package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/88scooper/propcalc/internal/config"
	"github.com/88scooper/propcalc/internal/report"
	"github.com/88scooper/propcalc/pkg/constants"
	"github.com/88scooper/propcalc/pkg/irr"
	"github.com/88scooper/propcalc/pkg/ltt"
	"github.com/88scooper/propcalc/pkg/metrics"
	"github.com/88scooper/propcalc/pkg/schedule"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info" // Default to info level
	}

	// Parse log level
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	// Determine output format
	format := loggingConfig.Format
	if format == "" {
		format = "json" // Default to JSON for production
	}

	// Configure encoder
	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	// Configure output file if specified
	if loggingConfig.OutputFile != "" {
		// Ensure the directory exists
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		// Test if we can create/write to the file
		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

// buildScheduleSources loads any lender payment-history files referenced by
// the configuration and registers them as authoritative schedule sources.
func buildScheduleSources(logger *zap.Logger, conf *config.Configuration) (*schedule.SourceRegistry, error) {
	registry := schedule.NewSourceRegistry(logger)
	for _, property := range conf.Properties {
		if property.Mortgage == nil || property.PaymentHistoryFile == "" {
			continue
		}
		file, err := os.Open(property.PaymentHistoryFile)
		if err != nil {
			return nil, fmt.Errorf("property %s: opening payment history: %w", property.Name, err)
		}
		history, err := schedule.ParsePaymentHistory(file)
		_ = file.Close()
		if err != nil {
			return nil, fmt.Errorf("property %s: parsing payment history: %w", property.Name, err)
		}
		if validation := schedule.Validate(history); !validation.IsValid {
			logger.Warn("payment history failed validation: "+validation.Warning,
				zap.String("op", "main"),
				zap.String("property", property.Name),
			)
		}
		registry.Register(property.Mortgage.LenderReference, schedule.NewAuthoritativeRecordSource(history))
	}
	return registry, nil
}

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	// Initialize logging based on config and CLI override
	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty // Default to pretty format
	}
	if outputFormat != constants.OutputFormatPretty && outputFormat != constants.OutputFormatCSV {
		logger.Fatal(fmt.Sprintf("invalid output format %s", outputFormat),
			zap.String("op", "main"),
		)
	}

	// Validate configuration and display any warnings
	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	// Resolve the analysis anchor date once so every property sees the
	// same "today".
	asOf, err := conf.Analysis.AsOfTime()
	if err != nil {
		logger.Fatal("failed to resolve analysis date",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	// Load authoritative payment histories.
	registry, err := buildScheduleSources(logger, conf)
	if err != nil {
		logger.Fatal("failed to load payment histories",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	engine := metrics.NewEngine(logger, registry)
	reports, err := computeReports(logger, conf, engine, registry, asOf)
	if err != nil {
		logger.Fatal("failed to compute property reports",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	// Handle output.
	switch outputFormat {
	case constants.OutputFormatPretty:
		report.PrettyFormat(reports)
	case constants.OutputFormatCSV:
		report.CsvFormat(reports)
	}
}

// computeReports runs the full metric set for every configured property.
func computeReports(logger *zap.Logger, conf *config.Configuration, engine *metrics.Engine,
	registry *schedule.SourceRegistry, asOf time.Time) ([]report.PropertyReport, error) {
	marginalRate := conf.Analysis.MarginalTaxRate / constants.PercentageMultiplier

	var reports []report.PropertyReport
	for _, property := range conf.Properties {
		fin, err := property.Financials()
		if err != nil {
			return nil, err
		}

		r := report.PropertyReport{
			Name:    property.Name,
			Metrics: engine.Summarize(fin, marginalRate, asOf),
		}

		// IRR projection, when the inputs allow one.
		cashFlows, err := irr.BuildCashFlows(engine, fin, irr.ProjectionOptions{
			Years:               conf.Analysis.HoldingYearsOrDefault(),
			ExitCapRate:         conf.Analysis.ExitCapRate,
			SellingCostsPercent: conf.Analysis.SellingCostsPercent,
		}, asOf)
		if err != nil {
			logger.Debug(fmt.Sprintf("skipping IRR for %s: %v", property.Name, err),
				zap.String("op", "main.computeReports"),
			)
			r.Warnings = append(r.Warnings, fmt.Sprintf("IRR unavailable: %v", err))
		} else {
			result, err := irr.Solve(cashFlows, irr.Options{})
			if err != nil {
				r.Warnings = append(r.Warnings, fmt.Sprintf("IRR unavailable: %v", err))
			} else {
				r.IRR = &result
			}
		}

		// Land transfer tax.
		closingDate, err := property.ClosingDateTime()
		if err != nil {
			return nil, err
		}
		r.LTT = ltt.Calculate(property.PurchasePrice, property.City, property.Province,
			closingDate, property.LTTOverride)
		if r.LTT.Warning != "" {
			r.Warnings = append(r.Warnings, r.LTT.Warning)
		}

		// Schedule summary.
		if fin.Mortgage != nil {
			sched, err := registry.Resolve(*fin.Mortgage, asOf)
			if err != nil {
				r.Warnings = append(r.Warnings, fmt.Sprintf("schedule unavailable: %v", err))
			} else {
				summary := &report.ScheduleSummary{
					PaymentCount:     sched.TotalPaymentCount,
					TotalInterest:    sched.TotalInterest,
					FinalPaymentDate: sched.FinalPaymentDate,
				}
				if next, ok := sched.NextPayment(asOf); ok {
					summary.NextPaymentDate = next.PaymentDate
					summary.NextPayment = next.TotalPayment
				}
				r.Schedule = summary
				if validation := schedule.Validate(sched); !validation.IsValid {
					r.Warnings = append(r.Warnings, validation.Warning)
				}
			}
		}

		reports = append(reports, r)
	}
	return reports, nil
}
