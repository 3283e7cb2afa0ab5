package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/toyz/ejbmeta/internal/assembler"
	"github.com/toyz/ejbmeta/internal/config"
	"github.com/toyz/ejbmeta/internal/descriptor"
	"github.com/toyz/ejbmeta/internal/metrics"
	"github.com/toyz/ejbmeta/internal/registry"
	"github.com/toyz/ejbmeta/internal/utils"
	"github.com/toyz/ejbmeta/pkg/inspect"
	"github.com/toyz/ejbmeta/pkg/inspect/adapters"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	config  string
	verbose bool
	quiet   bool
	bean    string
	serve   bool
	files   []string
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("ejbmeta", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.config, "config", "", "Configuration file (defaults to ./ejbmeta.yaml when present)")
	fs.BoolVar(&opts.verbose, "verbose", false, "Show lifecycle interceptors and timing details")
	fs.BoolVar(&opts.quiet, "quiet", false, "Only show errors")
	fs.StringVar(&opts.bean, "bean", "", "Only report the named bean")
	fs.BoolVar(&opts.serve, "serve", false, "Serve the inspection API after deploying")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: ejbmeta [options] <descriptor.yaml...>\n\n")
		fmt.Fprintf(stderr, "Resolves the transaction, concurrency, security and interceptor metadata\n")
		fmt.Fprintf(stderr, "of every bean method in one or more deployment descriptors.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  ejbmeta shop.yaml                      # Report every bean\n")
		fmt.Fprintf(stderr, "  ejbmeta -bean OrderBean shop.yaml      # Report one bean\n")
		fmt.Fprintf(stderr, "  ejbmeta -serve shop.yaml billing.yaml  # Deploy both and serve the API\n")
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	opts.files = fs.Args()
	if len(opts.files) == 0 {
		fmt.Fprintf(stderr, "Error: at least one descriptor is required\n\n")
		fs.Usage()
		return nil, flag.ErrHelp
	}
	return opts, nil
}

// run deploys every descriptor, prints the report and optionally serves the
// inspection API until ctx is done. It returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return 2
	}

	level := utils.DiagnosticInfo
	switch {
	case opts.quiet:
		level = utils.DiagnosticError
	case opts.verbose:
		level = utils.DiagnosticVerbose
	}
	diag := utils.NewDiagnosticSystemTo(level, stdout, stderr)

	cfg, err := config.Load(opts.config)
	if err != nil {
		diag.Error("%v", err)
		return 1
	}
	log := cfg.Log.NewLogger()
	log.SetOutput(stderr)

	var (
		recorder  metrics.Recorder = metrics.NewNoOpCollector()
		collector *metrics.Collector
	)
	if cfg.Metrics.Enabled {
		collector = metrics.NewCollector(cfg.Metrics.Namespace)
		recorder = collector
	}

	reg := registry.NewDeploymentRegistry()
	asm, err := assembler.New(cfg, log, recorder, reg)
	if err != nil {
		diag.Error("%v", err)
		return 1
	}

	loader := descriptor.NewLoader()
	failed := 0
	for _, file := range opts.files {
		diag.Verbose("loading %s", file)
		jar, err := loader.Load(file)
		if err == nil {
			_, err = asm.Deploy(jar)
		}
		if err != nil {
			diag.Error("%s: %v", file, err)
			failed++
		}
	}

	report(diag, reg, opts.bean)
	if failed > 0 {
		return 1
	}

	if opts.serve {
		if err := serve(ctx, cfg, reg, collector, log, diag); err != nil {
			diag.Error("%v", err)
			return 1
		}
	}
	return 0
}

func serve(ctx context.Context, cfg *config.Config, reg registry.DeploymentRegistry, collector *metrics.Collector, log *logrus.Logger, diag *utils.DiagnosticSystem) error {
	ws, err := adapters.New(cfg.Server.Framework)
	if err != nil {
		return err
	}

	var handler http.Handler
	if collector != nil {
		handler = collector.Handler()
	}
	inspect.NewAPI(reg, handler, log).Register(ws)

	errCh := make(chan error, 1)
	go func() {
		errCh <- ws.Start(cfg.Server.Addr)
	}()
	diag.Success("serving %d application(s) on %s with %s", reg.Len(), cfg.Server.Addr, ws.Name())

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return ws.Stop(shutdown)
}
