package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/venusengine/venus/config"
	"github.com/venusengine/venus/engine"
	"github.com/venusengine/venus/logging"
)

func run() error {
	cfg, err := config.Parse(os.Args[0], os.Args[1:], os.Stderr)
	if err != nil {
		return err
	}

	logger := logging.New(os.Stderr, cfg.Debug.LogLevel, uuid.New())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := engine.Build(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer rt.Close()

	return rt.Run(ctx)
}

func main() {
	runtime.LockOSThread()

	err := run()
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("%+v\n", err)
	}
}
