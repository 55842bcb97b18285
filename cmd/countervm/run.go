// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/profiler"
	"github.com/ava-labs/avalanchego/utils/ulimit"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ava-labs/countervm/config"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/logger"
	"github.com/ava-labs/countervm/rpc"
	"github.com/ava-labs/countervm/server"
	"github.com/ava-labs/countervm/storage"
	"github.com/ava-labs/countervm/trace"
	"github.com/ava-labs/countervm/vm"
)

const (
	dbNamespace     = "db"
	shutdownTimeout = 30 * time.Second
)

var allowedHosts = []string{"*"}

func runFunc(*cobra.Command, []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("%w: cannot load config", err)
	}
	logConfig, err := cfg.GetLoggingConfig()
	if err != nil {
		return err
	}
	logFactory := logger.NewFactory(logConfig)
	defer logFactory.Close()
	log, err := logFactory.Make(consts.Name)
	if err != nil {
		return err
	}
	if err := ulimit.Set(ulimit.DefaultFDLimit, log); err != nil {
		return fmt.Errorf("%w: failed to set fd limit correctly", err)
	}

	var genesisBytes []byte
	if len(genesisFile) > 0 {
		genesisBytes, err = os.ReadFile(genesisFile)
		if err != nil {
			return fmt.Errorf("%w: cannot read genesis", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return run(ctx, log, cfg, genesisBytes)
}

func run(ctx context.Context, log logging.Logger, cfg *config.Config, genesisBytes []byte) error {
	tracer, err := trace.New(cfg.GetTraceConfig())
	if err != nil {
		return err
	}
	defer func() {
		if err := tracer.Close(); err != nil {
			log.Warn("failed to close tracer", zap.Error(err))
		}
	}()

	if profilerConfig := cfg.GetContinuousProfilerConfig(); profilerConfig.Enabled {
		p := profiler.NewContinuous(profilerConfig.Dir, profilerConfig.Freq, profilerConfig.MaxNumFiles)
		defer p.Shutdown()
		go func() {
			if err := p.Dispatch(); err != nil {
				log.Warn("continuous profiler stopped", zap.Error(err))
			}
		}()
		log.Info("started continuous profiler", zap.String("dir", profilerConfig.Dir))
	}

	db, dbGatherer, err := storage.New(cfg.Pebble, cfg.DataDir, dbNamespace)
	if err != nil {
		return fmt.Errorf("%w: cannot open database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Warn("failed to close database", zap.Error(err))
		}
	}()

	v, vmGatherer, err := vm.New(ctx, log, tracer, db, genesisBytes, vm.Config{
		AuthVerificationCores: cfg.AuthVerificationCores,
		RecentResultsSize:     cfg.RecentResultsSize,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := v.Close(); err != nil {
			log.Warn("failed to close vm", zap.Error(err))
		}
	}()

	// Create server
	listener, err := net.Listen("tcp", cfg.GetHTTPAddress())
	if err != nil {
		return fmt.Errorf("%w: cannot create listener", err)
	}
	srv := server.New(log, listener, server.NewDefaultHTTPConfig(), cfg.HTTPAllowedOrigins, allowedHosts, shutdownTimeout)

	handler, err := rpc.NewJSONRPCHandler(rpc.Name, rpc.NewJSONRPCServer(v))
	if err != nil {
		return err
	}
	if err := srv.AddRoute(handler, rpc.Name, ""); err != nil {
		return err
	}
	ws, pubsubServer := rpc.NewWebSocketServer(v, cfg.StreamingBacklogSize)
	defer pubsubServer.Close()
	v.AddListener(ws)
	if err := srv.AddRoute(pubsubServer, rpc.Name, "/ws"); err != nil {
		return err
	}
	gatherer := prometheus.Gatherers{vmGatherer, dbGatherer}
	if err := srv.AddRoute(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}), "metrics", ""); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Dispatch(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("triggering server shutdown")
		return srv.Shutdown()
	})
	log.Info("node started",
		zap.String("address", cfg.GetHTTPAddress()),
		zap.Stringer("chainID", v.ChainID()),
	)
	err = g.Wait()
	log.Info("server exited",
		zap.Uint64("executed", v.ExecutedTxs()),
		zap.Error(err),
	)
	return err
}
