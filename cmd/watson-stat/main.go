package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/username/watson-stat/internal/calendar"
	"github.com/username/watson-stat/internal/config"
	"github.com/username/watson-stat/internal/frames"
	"github.com/username/watson-stat/internal/report"
	"github.com/username/watson-stat/pkg/dateutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "watson-stat [flags] operation frames start-date [end-date]",
		Short: "Working time balance from a Watson frames log",
		Long: "Compare the time logged in a Watson frames file against a per-weekday target.\n\n" +
			"operation   " + strings.Join(report.Operations(), " or ") + "\n" +
			"frames      path of the frames file\n" +
			"start-date  first evaluated day, YYYY-MM-DD\n" +
			"end-date    evaluation stops before this day, YYYY-MM-DD, today if omitted",
		Args:          cobra.RangeArgs(3, 4),
		ValidArgs:     report.Operations(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := report.ParseOperation(args[0])
			if err != nil {
				return err
			}

			cfg, err := config.Load(configPath, cmd.Flags())
			if err != nil {
				return err
			}

			logger, err := newLogger(cfg.Log, stderr)
			if err != nil {
				return err
			}
			defer logger.Sync()

			startDate, err := dateutil.ParseDate(args[2])
			if err != nil {
				return fmt.Errorf("start date: %w", err)
			}
			endDate := dateutil.Today()
			if len(args) == 4 {
				endDate, err = dateutil.ParseDate(args[3])
				if err != nil {
					return fmt.Errorf("end date: %w", err)
				}
			}

			logger.Debug("Evaluating frames",
				zap.String("operation", string(op)),
				zap.String("frames", args[1]),
				zap.String("start", dateutil.Key(startDate)),
				zap.String("end", dateutil.Key(endDate)),
				zap.Float64s("working_hours", targetsSlice(cfg.WorkingHours.Targets())))

			cal := calendar.Build(startDate, endDate, calendar.Targets(cfg.WorkingHours.Targets()), logger)

			entries, err := frames.Load(args[1])
			if err != nil {
				return err
			}

			return report.NewGenerator(time.Local, logger).Generate(stdout, op, cal, entries)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.StringVarP(&configPath, "config", "c", "", "Config file path (optional)")
	for i, day := range config.Weekdays {
		def := 8.0
		if i >= 5 {
			def = 0
		}
		flags.Float64(config.FlagName(day), def, "Working hours on "+day)
	}
	flags.String("log-file", "", "Write JSON logs to this file with rotation instead of stderr")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")

	return cmd
}

func newLogger(cfg config.LogConfig, stderr io.Writer) (*zap.Logger, error) {
	level, err := cfg.GetLevel()
	if err != nil {
		return nil, err
	}
	if cfg.File != "" {
		return initFileLogger(cfg.File, level), nil
	}
	return initLogger(level, stderr), nil
}

func initLogger(level zapcore.Level, stderr io.Writer) *zap.Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(stderr),
		level,
	)

	return zap.New(core)
}

func initFileLogger(logFile string, level zapcore.Level) *zap.Logger {
	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100,  // MB
		MaxBackups: 3,    // Keep max 3 old log files
		MaxAge:     28,   // days
		Compress:   true, // Compress old logs with gzip
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		level,
	)

	return zap.New(core)
}

func targetsSlice(targets [7]float64) []float64 {
	return targets[:]
}
