package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/servimart/servimart/config"
	"github.com/servimart/servimart/internal/app"
	"github.com/servimart/servimart/internal/restapi"
	"github.com/servimart/servimart/internal/webserver"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	configFile = flag.String("c", "/etc/servimart.yml", "config file path")
	showVer    = flag.Bool("v", false, "print version and exit")
	initDB     = flag.Bool("initdb", false, "drop and recreate the database schema, then exit")
)

var version = "dev"

func main() {
	flag.Parse()

	if *showVer {
		fmt.Printf("servimart %s\n", version)
		return
	}

	cfg := config.LoadConfig(*configFile)
	if err := cfg.InitDirs(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create work directories: %v\n", err)
		os.Exit(1)
	}

	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initDB {
		application.InitDb()
		zap.L().Info("database initialized")
		return
	}

	server := webserver.Init(cfg, application.DB())
	restapi.Init(cfg,
		application.Accounts(),
		application.Catalog(),
		application.Orders(),
		application.Reviews())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Start(ctx)
	})
	g.Go(func() error {
		application.StartBackgroundJobs(ctx)
		<-ctx.Done()
		return nil
	})

	if err := g.Wait(); err != nil {
		zap.L().Error("server exited with error", zap.Error(err))
		os.Exit(1)
	}
	zap.L().Info("server stopped")
}
