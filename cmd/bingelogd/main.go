// Command bingelogd is the tracking daemon. It owns the catalog files,
// the per-user list files, and the image cache, and serves the tracking
// API over a Unix socket until it receives a signal or an IPC shutdown
// request.
package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"strings"
	"syscall"

	"bingelog/internal/config"
	"bingelog/internal/daemon"
	"bingelog/internal/ipc"
	"bingelog/internal/logging"
)

func main() {
	socketFlag := flag.String("socket", "", "path to the IPC socket")
	configFlag := flag.String("config", "", "configuration file path")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, _, _, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		log.Fatalf("ensure directories: %v", err)
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	d, err := daemon.New(cfg, logger)
	if err != nil {
		log.Fatalf("create daemon: %v", err)
	}
	defer d.Close()

	if err := d.Start(ctx); err != nil {
		logger.Error("daemon start failed", logging.Error(err))
		return
	}

	socketPath := strings.TrimSpace(*socketFlag)
	if socketPath == "" {
		socketPath = cfg.SocketPath()
	}
	ipcServer, err := ipc.NewServer(ctx, socketPath, d, logger, cancel)
	if err != nil {
		logger.Error("start IPC server failed", logging.Error(err))
		return
	}
	defer ipcServer.Close()
	ipcServer.Serve()

	<-ctx.Done()
	logger.Info("bingelogd shutting down")
}
