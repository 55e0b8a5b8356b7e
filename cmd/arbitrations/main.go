package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/arbys/arbitrations/internal/config"
	"github.com/arbys/arbitrations/internal/logging"
	intOtel "github.com/arbys/arbitrations/internal/otel"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel/metric"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

const usageHeader = `Usage: arbitrations [flags] <command> [args]

Commands:
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one CLI invocation and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	flags := newFlagSet(stderr)
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}
	if err := bindFlags(flags); err != nil {
		fmt.Fprintf(stderr, "error binding flags: %v\n", err)
		return 2
	}

	configDir, _ := flags.GetString("config-dir")
	if err := config.Load(configDir); err != nil {
		fmt.Fprintf(stderr, "error loading config: %v\n", err)
		return 1
	}

	positional := flags.Args()
	command := "help"
	if len(positional) > 0 {
		command = positional[0]
	}

	now, err := resolveNow(flags)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 2
	}

	logs, cleanup := setupLogging(command, now, stderr)
	defer cleanup()

	a := newApp(logs.logger, logs.meterProvider(), now, stdout)
	a.limit, _ = flags.GetInt("limit")
	a.compress, _ = flags.GetBool("compress")
	a.outputDir, _ = flags.GetString("out")

	d, err := a.dispatcher()
	if err != nil {
		logs.logger.Error("Failed to create dispatcher", "error", err)
		return 1
	}

	if len(positional) == 0 || !d.HasHandler(command) {
		if len(positional) > 0 {
			fmt.Fprintf(stderr, "unknown command %q\n\n", command)
		}
		fmt.Fprint(stderr, usageHeader+d.Usage()+"\nFlags:\n"+flags.FlagUsages())
		return 2
	}

	if err := a.dispatch(d, command, positional[1:]); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func newFlagSet(stderr io.Writer) *pflag.FlagSet {
	flags := pflag.NewFlagSet("arbitrations", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.SetInterspersed(true)

	flags.String("config-dir", ".", "directory containing "+config.FileName)
	flags.String("log-level", "", "log level (DEBUG, INFO, WARN, ERROR)")
	flags.String("logs-dir", "", "directory for run log files, stderr when empty")
	flags.String("lang", "", "dictionary language tag, e.g. en or de")
	flags.String("schedule", "", "path of the raw schedule CSV")
	flags.Bool("skip-header", false, "treat the first CSV record as a header")
	flags.String("source", "", "reference data source: file, sqlite or postgres")
	flags.String("regions", "", "path of the region export JSON")
	flags.String("dictionary", "", "path of the dictionary JSON")
	flags.String("db-path", "", "SQLite reference database path")

	flags.Int("limit", 0, "maximum number of upcoming entries, 0 for all")
	flags.Bool("compress", false, "gzip the JSON output")
	flags.String("out", "", "write the JSON export into this directory instead of stdout")
	flags.String("now", "", "evaluate queries at this RFC3339 instant instead of the current time")
	return flags
}

// flagKeys maps CLI flags onto configuration keys.
var flagKeys = map[string]string{
	"log-level":   "logLevel",
	"logs-dir":    "logsDir",
	"lang":        "lang",
	"schedule":    "schedule.path",
	"skip-header": "schedule.skipHeader",
	"source":      "refs.source",
	"regions":     "refs.regionsPath",
	"dictionary":  "refs.dictionaryPath",
	"db-path":     "db.path",
}

func bindFlags(flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		if err := viper.BindPFlag(key, flags.Lookup(name)); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func resolveNow(flags *pflag.FlagSet) (time.Time, error) {
	raw, _ := flags.GetString("now")
	if raw == "" {
		return time.Now(), nil
	}
	now, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --now %q: %w", raw, err)
	}
	return now, nil
}

type runLogging struct {
	manager  *logging.SlogManager
	logger   *slog.Logger
	provider *intOtel.Provider
}

func (l *runLogging) meterProvider() metric.MeterProvider {
	if l.provider != nil {
		return l.provider.MeterProvider()
	}
	return nil
}

// setupLogging writes to a per-run file under logsDir, or to stderr when no
// logs directory is configured, and bridges records to OTel when enabled.
func setupLogging(command string, runStart time.Time, stderr io.Writer) (*runLogging, func()) {
	l := &runLogging{manager: logging.NewSlogManager()}
	l.manager.Setup(stderr, config.GetString("logLevel"), nil)
	l.logger = l.manager.Logger()

	var out io.Writer = stderr
	var logFile *os.File

	logsDir := config.GetString("logsDir")
	if logsDir != "" {
		if err := os.MkdirAll(logsDir, 0755); err != nil {
			l.logger.Error("Failed to create logs directory", "error", err, "path", logsDir)
		} else {
			path := logging.LogFilePath(logsDir, command, runStart)
			f, err := os.OpenFile(filepath.Clean(path), os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
			if err != nil {
				l.logger.Error("Failed to create/open log file!", "error", err, "path", path)
			} else {
				logFile = f
				out = f
			}
		}
	}

	otelCfg := config.GetOTelConfig()
	if otelCfg.Enabled {
		var otelWriter io.Writer
		if logFile != nil {
			otelWriter = logFile
		}
		provider, err := intOtel.New(intOtel.Config{
			Enabled:      otelCfg.Enabled,
			ServiceName:  otelCfg.ServiceName,
			BatchTimeout: otelCfg.BatchTimeout,
			LogWriter:    otelWriter,
			Endpoint:     otelCfg.Endpoint,
			Insecure:     otelCfg.Insecure,
		})
		if err != nil {
			l.logger.Error("Failed to initialize OTel provider", "error", err)
		} else {
			l.provider = provider
		}
	}

	var otelLogProvider *sdklog.LoggerProvider
	if l.provider != nil {
		otelLogProvider = l.provider.LoggerProvider()
	}
	l.manager.Setup(out, config.GetString("logLevel"), otelLogProvider)
	l.logger = l.manager.Logger()

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := l.manager.Flush(ctx); err != nil {
			l.logger.Warn("Failed to flush logs", "error", err)
		}
		if l.provider != nil {
			if err := l.provider.Shutdown(ctx); err != nil {
				l.logger.Warn("Failed to shut down OTel provider", "error", err)
			}
		}
		if logFile != nil {
			logFile.Close()
		}
	}
	return l, cleanup
}
