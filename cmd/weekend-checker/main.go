package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/username/weekend-checker/internal/calendar"
	"github.com/username/weekend-checker/internal/checker"
	"github.com/username/weekend-checker/internal/config"
	"github.com/username/weekend-checker/internal/history"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	configPath string
	logLevel   string
	cfg        *config.Config
	logger     = zap.NewNop()
)

func main() {
	rootCmd := newRootCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "weekend-checker",
		Short:         "Проверка выходных и праздничных дней",
		Long:          "Checks whether a DD/MM/YYYY date is a day off in the production calendar and keeps a history of queries",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			level := cfg.Log.Level
			if logLevel != "" {
				level = logLevel
			}

			if cfg.Log.File != "" {
				logger = initFileLogger(cfg.Log.File, level)
			} else {
				logger = initLogger(level)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override log level (debug, info, warn, error)")

	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(shellCmd())
	rootCmd.AddCommand(historyCmd())
	rootCmd.AddCommand(holidaysCmd())
	rootCmd.AddCommand(formatCmd())

	return rootCmd
}

// app holds the components built from config for one command run
type app struct {
	checker *checker.Checker
	store   history.Store
}

func (a *app) Close() error {
	return a.store.Close()
}

func initializeApp(cfg *config.Config) (*app, error) {
	holidays, err := loadHolidays(cfg)
	if err != nil {
		return nil, err
	}

	cal := calendar.New(cfg.Calendar.Policy(), holidays, logger)

	store, err := history.Open(cfg.History.Backend, cfg.History.Path, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open history store: %w", err)
	}

	recorder := history.NewRecorder(store, logger, history.WithKey(cfg.History.Key))

	logger.Debug("Checker initialized",
		zap.Int("reference_year", cfg.Calendar.ReferenceYear),
		zap.Int("holidays", holidays.Len()),
		zap.String("history_backend", cfg.History.Backend))

	return &app{
		checker: checker.New(cal, recorder, logger),
		store:   store,
	}, nil
}

func loadHolidays(cfg *config.Config) (*calendar.HolidaySet, error) {
	year := cfg.Calendar.ReferenceYear

	if cfg.Calendar.HolidaysFile != "" {
		set, err := calendar.LoadHolidayFile(cfg.Calendar.HolidaysFile, year, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to load holidays: %w", err)
		}
		return set, nil
	}

	if year != calendar.DefaultReferenceYear {
		return nil, errors.New("calendar.holidays_file is required when reference_year is not 2026")
	}
	return calendar.DefaultHolidays(), nil
}

// withApp builds the app, runs fn and closes the store
func withApp(fn func(a *app) error) error {
	a, err := initializeApp(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Warn("Failed to close history store", zap.Error(err))
		}
	}()
	return fn(a)
}

func parseLevel(level string) zapcore.Level {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.WarnLevel
	}
	return zapLevel
}

func initLogger(level string) *zap.Logger {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(parseLevel(level))
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	return l
}

func initFileLogger(logFile string, level string) *zap.Logger {
	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		parseLevel(level),
	)

	return zap.New(core)
}
