package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"
	zaplogfmt "github.com/sykesm/zap-logfmt"
	"github.com/thecodeteam/goodbye"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/simplesurance/ghreceiver/internal/cfg"
	"github.com/simplesurance/ghreceiver/internal/dispatch"
	"github.com/simplesurance/ghreceiver/internal/health"
	"github.com/simplesurance/ghreceiver/internal/logfields"
	"github.com/simplesurance/ghreceiver/internal/payload"
	"github.com/simplesurance/ghreceiver/internal/processor"
	"github.com/simplesurance/ghreceiver/internal/provider/github"
)

const appName = "ghreceiver"

var logger *zap.Logger

// Version is set via a ldflag on compilation
var Version = "unknown"

func exitOnErr(msg string, err error) {
	if err == nil {
		return
	}

	fmt.Fprintln(os.Stderr, "ERROR:", msg+", error:", err.Error())
	os.Exit(1)
}

func panicHandler() {
	if r := recover(); r != nil {
		logger.Info(
			"panic caught , terminating gracefully",
			zap.String("panic", fmt.Sprintf("%v", r)),
			zap.StackSkip("stacktrace", 1),
		)

		ctx, cancelFn := context.WithTimeout(context.Background(), time.Minute)
		defer cancelFn()

		goodbye.Exit(ctx, 1)
	}
}

// startServer starts srv in a go-routine and registers a shutdown hook for
// it. If certFile and keyFile are set, it serves https.
func startServer(srv *http.Server, certFile, keyFile string) {
	proto := "http"
	if certFile != "" || keyFile != "" {
		proto = "https"
	}

	goodbye.Register(func(context.Context, os.Signal) {
		const shutdownTimeout = 30 * time.Second
		ctx, cancelFn := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelFn()

		logger.Debug(
			fmt.Sprintf("terminating %s server", proto),
			logfields.Event(proto+"_server_terminating"),
			zap.Duration("shutdown_timeout", shutdownTimeout),
		)

		err := srv.Shutdown(ctx)
		if err != nil {
			logger.Warn(
				fmt.Sprintf("shutting down %s server failed", proto),
				logfields.Event(proto+"_server_termination_failed"),
				zap.Error(err),
			)
		}
	})

	go func() {
		defer panicHandler()

		logger.Info(
			fmt.Sprintf("%s server started", proto),
			logfields.Event(proto+"_server_started"),
			zap.String("listenAddr", srv.Addr),
		)

		var err error
		if proto == "https" {
			err = srv.ListenAndServeTLS(certFile, keyFile)
		} else {
			err = srv.ListenAndServe()
		}

		if errors.Is(err, http.ErrServerClosed) {
			logger.Info(
				fmt.Sprintf("%s server terminated", proto),
				logfields.Event(proto+"_server_terminated"),
			)
			return
		}

		logger.Fatal(
			fmt.Sprintf("%s server terminated unexpectedly", proto),
			logfields.Event(proto+"_server_terminated_unexpectedly"),
			zap.Error(err),
		)
	}()
}

func newServer(listenAddr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              listenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       time.Minute,
		WriteTimeout:      time.Minute,
	}
}

type arguments struct {
	Verbose     *bool
	ConfigFile  *string
	ShowVersion *bool
	GenCfgFile  *bool
}

var args arguments

const defConfigFile = "/etc/ghreceiver/config.toml"

func mustParseCommandlineParams() {
	args = arguments{
		Verbose: pflag.BoolP(
			"verbose",
			"v",
			false,
			"enable verbose logging",
		),
		ConfigFile: pflag.StringP(
			"cfg-file",
			"c",
			defConfigFile,
			"path to the ghreceiver configuration file",
		),
		ShowVersion: pflag.Bool(
			"version",
			false,
			"print the version and exit",
		),
		GenCfgFile: pflag.Bool(
			"gen-cfg",
			false,
			"print a configuration file with default values and exit",
		),
	}

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTION]\nReceive, verify and process GitHub webhook events.\n", appName)
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		pflag.PrintDefaults()
	}

	pflag.Parse()
}

func mustParseCfg() *cfg.Config {
	// we use exitOnErr in this function instead of logger.Fatal() because
	// the logger is not initialized yet

	file, err := os.Open(*args.ConfigFile)
	exitOnErr("could not open configuration files", err)
	defer file.Close()

	config, err := cfg.Load(file)
	if err != nil {
		exitOnErr(fmt.Sprintf("could not load configuration file: %s", *args.ConfigFile), err)
	}

	return config
}

func initLogFmtLogger(config *cfg.Config, logLevel zapcore.Level) *zap.Logger {
	cfg := zapEncoderConfig(config)

	logger := zap.New(zapcore.NewCore(
		zaplogfmt.NewEncoder(cfg),
		os.Stdout,
		logLevel),
	)

	return logger
}

func zapEncoderConfig(config *cfg.Config) zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()

	cfg.LevelKey = "loglevel"
	cfg.TimeKey = config.LogTimeKey
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeDuration = zapcore.StringDurationEncoder

	return cfg
}

func mustInitZapFormatLogger(config *cfg.Config, logLevel zapcore.Level) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Sampling = nil
	cfg.EncoderConfig = zapEncoderConfig(config)
	cfg.OutputPaths = []string{"stdout"}
	cfg.Encoding = config.LogFormat
	cfg.Level = zap.NewAtomicLevelAt(logLevel)

	logger, err := cfg.Build()
	exitOnErr("could not initialize logger", err)

	return logger
}

func mustInitLogger(config *cfg.Config) {
	var logLevel zapcore.Level
	if *args.Verbose {
		logLevel = zapcore.DebugLevel
	} else {
		if err := (&logLevel).Set(config.LogLevel); err != nil {
			fmt.Fprintf(os.Stderr, "can not set log level to %q: %s \n", config.LogLevel, err)
			os.Exit(2)
		}
	}

	switch config.LogFormat {
	case "logfmt":
		logger = initLogFmtLogger(config, logLevel)
	case "console", "json":
		logger = mustInitZapFormatLogger(config, logLevel)
	default:
		fmt.Fprintf(os.Stderr, "unsupported log-format argument: %q\n", config.LogFormat)
		os.Exit(2)
	}

	logger = logger.Named("main")
	zap.ReplaceGlobals(logger)

	goodbye.Register(func(context.Context, os.Signal) {
		if err := logger.Sync(); err != nil {
			fmt.Fprintf(os.Stderr, "flushing logs failed: %s\n", err)
		}
	})
}

func hide(in string) string {
	if in == "" {
		return in
	}

	return "**hidden**"
}

func newRouter(config *cfg.Config, gh *github.Provider, healthHandler *health.Handler) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)

	router.Post(config.HTTPGithubWebhookEndpoint, gh.HTTPHandler)
	logger.Info(
		"registered github webhook event http endpoint",
		logfields.Event("github_http_handler_registered"),
		zap.String("endpoint", config.HTTPGithubWebhookEndpoint),
	)

	if config.HTTPHealthEndpoint != "" {
		router.Get(config.HTTPHealthEndpoint, healthHandler.HealthHandler)
		logger.Info(
			"registered health-check http endpoint",
			logfields.Event("health_http_handler_registered"),
			zap.String("endpoint", config.HTTPHealthEndpoint),
		)
	}

	if config.HTTPPingEndpoint != "" {
		router.Get(config.HTTPPingEndpoint, healthHandler.PingHandler)
		logger.Info(
			"registered ping http endpoint",
			logfields.Event("ping_http_handler_registered"),
			zap.String("endpoint", config.HTTPPingEndpoint),
		)
	}

	if config.HTTPMetricsEndpoint != "" {
		router.Handle(config.HTTPMetricsEndpoint, promhttp.Handler())
		logger.Info(
			"registered prometheus metrics http endpoint",
			logfields.Event("metrics_http_handler_registered"),
			zap.String("endpoint", config.HTTPMetricsEndpoint),
		)
	}

	return router
}

func main() {
	defer panicHandler()

	defer goodbye.Exit(context.Background(), 1)
	goodbye.Notify(context.Background())

	mustParseCommandlineParams()

	if *args.ShowVersion {
		fmt.Printf("%s %s\n", appName, Version)
		os.Exit(0) // nolint:gocritic // defer functions won't run
	}

	if *args.GenCfgFile {
		if err := cfg.Default().Marshal(os.Stdout); err != nil {
			exitOnErr("generating configuration file failed", err)
		}
		os.Exit(0) // nolint:gocritic // defer functions won't run
	}

	config := mustParseCfg()

	mustInitLogger(config)

	logger.Info(
		"loaded cfg file",
		logfields.Event("cfg_loaded"),
		zap.String("cfg_file", *args.ConfigFile),
		zap.String("http_server_listen_addr", config.HTTPListenAddr),
		zap.String("https_server_listen_addr", config.HTTPSListenAddr),
		zap.String("github_webhook_endpoint", config.HTTPGithubWebhookEndpoint),
		zap.String("github_webhook_secret", hide(config.GithubWebHookSecret)),
		zap.Int64("max_body_size", config.MaxBodySize),
		zap.String("health_endpoint", config.HTTPHealthEndpoint),
		zap.String("ping_endpoint", config.HTTPPingEndpoint),
		zap.String("metrics_endpoint", config.HTTPMetricsEndpoint),
		zap.String("log_format", config.LogFormat),
		zap.String("log_time_key", config.LogTimeKey),
		zap.String("log_level", config.LogLevel),
	)

	if config.GithubWebHookSecret == "" {
		logger.Warn(
			"github webhook secret is not configured, all webhook requests will be rejected",
			logfields.Event("github_webhook_secret_missing"),
			zap.String("env_var", cfg.EnvGithubWebhookSecret),
		)
	}

	goodbye.Register(func(_ context.Context, sig os.Signal) {
		logger.Info(fmt.Sprintf("terminating, received signal %s", sig.String()))
	})

	dispatcher := dispatch.New(dispatch.WithSink(processor.New()))

	gh := github.New(
		dispatcher,
		github.WithPayloadSecret(config.GithubWebHookSecret),
		github.WithMaxBodySize(config.MaxBodySize),
	)

	healthHandler := health.NewHandler(Version, gh.SecretConfigured, payload.SupportedEvents())

	router := newRouter(config, gh, healthHandler)

	if config.HTTPListenAddr != "" {
		startServer(newServer(config.HTTPListenAddr, router), "", "")
	}

	if config.HTTPSListenAddr != "" {
		startServer(
			newServer(config.HTTPSListenAddr, router),
			config.HTTPSCertFile,
			config.HTTPSKeyFile,
		)
	}

	select {}
}
