// Package main is the entry point for the bootcfg tool. It resolves
// boot-time configuration keys through the device-tree / property /
// bootconfig / kernel-cmdline fallback chain and can dump the parsed
// contents of the textual sources.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Project-PixelStar/system-core/internal/bootconfig"
	"github.com/Project-PixelStar/system-core/internal/cmdline"
	"github.com/Project-PixelStar/system-core/internal/config"
	"github.com/Project-PixelStar/system-core/internal/hostinfo"
	"github.com/Project-PixelStar/system-core/internal/resolver"
)

var (
	// version is set at build time via -ldflags.
	version = "dev"

	configPath  = flag.String("config", "", "Path to configuration file (empty: embedded defaults)")
	showVersion = flag.Bool("version", false, "Show version and exit")
	key         = flag.String("key", "", "Boot configuration key to resolve (androidboot. prefix implied)")
	dump        = flag.Bool("dump", false, "Dump all bootconfig and kernel cmdline pairs")
	dtDir       = flag.Bool("dt-dir", false, "Print the resolved device-tree directory")
	info        = flag.Bool("info", false, "Print kernel and platform information as JSON")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("bootcfg %s\n", version)
		os.Exit(0)
	}

	// Load configuration; with no -config flag, discover a file in the
	// standard locations.
	path := *configPath
	if path == "" {
		path = config.Locate()
	}
	cfg, err := config.LoadLayered(embeddedConfig, path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg)
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	r := resolver.New(resolver.Options{
		BootconfigPath: cfg.Paths.Bootconfig,
		CmdlinePath:    cfg.Paths.Cmdline,
		DTFallbackDir:  cfg.Paths.DTFallbackDir,
		Logger:         logger,
	})

	switch {
	case *key != "":
		value, ok := r.Resolve(*key)
		if !ok {
			logger.Error("Key not found in any source", zap.String("key", *key))
			os.Exit(1)
		}
		fmt.Println(value)
	case *dtDir:
		fmt.Println(r.DeviceTreeDir())
	case *info:
		printHostInfo()
	case *dump:
		dumpSources(cfg, logger)
	default:
		flag.Usage()
		os.Exit(2)
	}
}

// dumpSources prints every key/value pair parsed from the bootconfig blob
// and the kernel command line, in source order.
func dumpSources(cfg *config.Config, logger *zap.Logger) {
	fmt.Println("# bootconfig")
	bootconfig.ImportFile(cfg.Paths.Bootconfig, func(k, v string) {
		fmt.Printf("%s=%s\n", k, v)
	})

	fmt.Println("# kernel cmdline")
	raw, err := os.ReadFile(cfg.Paths.Cmdline)
	if err != nil {
		logger.Warn("Kernel cmdline not readable", zap.Error(err))
		return
	}
	for _, p := range cmdline.Parse(strings.TrimSuffix(string(raw), "\n")) {
		fmt.Printf("%s=%s\n", p.Key, p.Value)
	}
}

// printHostInfo prints kernel and platform metadata as indented JSON.
func printHostInfo() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	data, err := json.MarshalIndent(hostinfo.Collect(ctx), "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode host info: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}

// initLogger creates a zap logger based on the configuration.
// It outputs to stderr (human-readable) and optionally a JSON log file,
// keeping stdout clean for resolved values.
func initLogger(cfg *config.Config) *zap.Logger {
	var level zapcore.Level
	switch cfg.Logging.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(os.Stderr),
		level,
	)

	cores := []zapcore.Core{consoleCore}

	// File output (structured JSON, if configured)
	if cfg.Logging.File != "" {
		file, err := os.OpenFile(cfg.Logging.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640)
		if err == nil {
			fileCore := zapcore.NewCore(
				zapcore.NewJSONEncoder(encoderConfig),
				zapcore.AddSync(file),
				level,
			)
			cores = append(cores, fileCore)
		}
	}

	return zap.New(zapcore.NewTee(cores...))
}
