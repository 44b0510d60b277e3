package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os/signal"
	"strings"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"intlpipe/pkg/codegen"
	"intlpipe/pkg/compiler"
	"intlpipe/pkg/logging"
	"intlpipe/pkg/pipeline"
)

func main() {
	configPath := flag.String("config", "", "config file path (default: intlpipe.yaml in the working directory)")
	roots := flag.String("roots", "", "comma-separated directories to compile and watch (overrides config)")
	locale := flag.String("locale", "", "target locale for compiled artifacts (overrides config)")
	format := flag.String("format", "", "artifact format: jsona or toml (overrides config)")
	once := flag.Bool("once", false, "compile every file and exit without watching")
	rescan := flag.String("rescan", "", "cron spec for periodic full rescans while watching (e.g. \"@every 10m\")")
	flag.Parse()

	initConfig(*configPath)

	logger := logging.New(logging.Config{
		Level:      viper.GetString("log.level"),
		Path:       viper.GetString("log.file"),
		MaxSizeMB:  viper.GetInt("log.max_size_mb"),
		MaxBackups: viper.GetInt("log.max_backups"),
		MaxAgeDays: viper.GetInt("log.max_age_days"),
		Compress:   viper.GetBool("log.compress"),
	})
	defer logger.Sync()

	cfg := resolveConfig(*roots, *locale, *format, *once)
	if len(cfg.Roots) == 0 {
		logger.Fatal("no roots configured; pass -roots or set roots in the config file")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db := compiler.NewDatabase()
	service := compiler.New(compiler.WithDatabase(db))

	dispatcherOpts := []pipeline.DispatcherOption{
		pipeline.WithLocale(cfg.Locale),
		pipeline.WithFormat(cfg.Format),
		pipeline.WithLogger(logger),
	}
	if cfg.Keys {
		dispatcherOpts = append(dispatcherOpts,
			pipeline.WithKeyGenerator(codegen.NewGenerator(cfg.KeysPackage), db))
	}
	dispatcher := pipeline.NewDispatcher(service, dispatcherOpts...)

	opts := cfg.Options()
	opts.Logger = logger
	runner := pipeline.NewRunner(dispatcher, opts)

	if opts.Watch && *rescan != "" {
		scheduler := cron.New()
		if _, err := scheduler.AddFunc(*rescan, func() {
			if err := runner.Rescan(ctx); err != nil {
				logger.Error("scheduled rescan failed", zap.Error(err))
			}
		}); err != nil {
			logger.Fatal("invalid rescan spec", zap.String("spec", *rescan), zap.Error(err))
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	logger.Info("starting",
		zap.Strings("roots", cfg.Roots),
		zap.String("locale", cfg.Locale),
		zap.String("format", cfg.Format),
		zap.Bool("watch", opts.Watch))

	if err := runner.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Fatal("pipeline failed", zap.Error(err))
	}
	logger.Info("exiting")
}

func initConfig(path string) {
	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName("intlpipe")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}
	viper.SetEnvPrefix("INTLPIPE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatalf("failed to read config: %v", err)
	}
}

// resolveConfig merges viper-provided config with flag overrides.
func resolveConfig(roots, locale, format string, once bool) pipeline.Config {
	cfg := pipeline.Config{
		Roots:       viper.GetStringSlice("roots"),
		DenyDirs:    viper.GetStringSlice("deny_dirs"),
		Locale:      viper.GetString("locale"),
		Format:      viper.GetString("format"),
		Keys:        viper.GetBool("keys"),
		KeysPackage: viper.GetString("keys_package"),
	}
	if viper.IsSet("watch") {
		watch := viper.GetBool("watch")
		cfg.Watch = &watch
	}
	if roots != "" {
		cfg.Roots = splitList(roots)
	}
	if locale != "" {
		cfg.Locale = locale
	}
	if format != "" {
		cfg.Format = format
	}
	if once {
		watch := false
		cfg.Watch = &watch
	}
	cfg.ApplyDefaults()
	return cfg
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
