package server

import (
	"flag"
	"net/http"

	"github.com/iov-one/tokenswap/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagBind     = "bind"
	flagDebug    = "debug"
	flagMetrics  = "metrics"
	flagLogLevel = "log_level"
)

// StartOptions are the options of the start command.
type StartOptions struct {
	Bind     string
	Debug    bool
	Metrics  string
	LogLevel string
}

func parseStartFlags(args []string) (StartOptions, error) {
	var opts StartOptions
	startFlags := flag.NewFlagSet("start", flag.ContinueOnError)
	startFlags.StringVar(&opts.Bind, flagBind, "tcp://localhost:26658", "address server listens on")
	startFlags.BoolVar(&opts.Debug, flagDebug, false, "call stack returned on error")
	startFlags.StringVar(&opts.Metrics, flagMetrics, "", "address of the prometheus endpoint, disabled when empty")
	startFlags.StringVar(&opts.LogLevel, flagLogLevel, "info", "minimal log level: debug, info, error or none")
	if err := startFlags.Parse(args); err != nil {
		return opts, errors.Wrap(errors.ErrInput, err.Error())
	}
	return opts, nil
}

// AppGenerator lets us lazily initialize app, using home dir
// and logger potentially initialized with other flags
type AppGenerator func(home string, logger log.Logger, debug bool, reg prometheus.Registerer) (abci.Application, error)

// StartCmd initializes the application and serves it over the ABCI socket
// until the process receives a termination signal.
func StartCmd(gen AppGenerator, logger log.Logger, home string, args []string) error {
	opts, err := parseStartFlags(args)
	if err != nil {
		return err
	}
	logger, err = filterLogger(logger, opts.LogLevel)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	app, err := gen(home, logger, opts.Debug, reg)
	if err != nil {
		return err
	}

	if opts.Metrics != "" {
		go serveMetrics(logger, opts.Metrics, reg)
	}

	logger.Info("Starting ABCI app", "bind", opts.Bind)
	svr, err := server.NewServer(opts.Bind, "socket", app)
	if err != nil {
		return errors.Wrap(err, "cannot create listener")
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return errors.Wrap(err, "cannot start server")
	}

	// Wait forever
	cmn.TrapSignal(func() {
		svr.Stop()
	})
	return nil
}

func serveMetrics(logger log.Logger, addr string, reg *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	logger.Info("Serving metrics", "bind", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("metrics server stopped", "err", err)
	}
}

// filterLogger limits the output of the logger to the given level.
func filterLogger(logger log.Logger, level string) (log.Logger, error) {
	var opt log.Option
	switch level {
	case "debug":
		opt = log.AllowDebug()
	case "info":
		opt = log.AllowInfo()
	case "error":
		opt = log.AllowError()
	case "none":
		opt = log.AllowNone()
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown log level %q", level)
	}
	return log.NewFilter(logger, opt), nil
}
