package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/talkincode/taskrest/config"
	"github.com/talkincode/taskrest/internal/adminapi"
	"github.com/talkincode/taskrest/internal/app"
	"github.com/talkincode/taskrest/internal/repository"
	"github.com/talkincode/taskrest/internal/service"
	"github.com/talkincode/taskrest/internal/webserver"
)

const Version = "1.0.0"

var (
	h        = flag.Bool("h", false, "help usage")
	showVer  = flag.Bool("v", false, "show version")
	conffile = flag.String("c", "", "config yaml file")
	initdb   = flag.Bool("initdb", false, "drop and recreate all tables, then exit")
	migrate  = flag.Bool("migrate", false, "migrate the database schema, then exit")
)

func main() {
	flag.Parse()

	if *h {
		flag.Usage()
		return
	}
	if *showVer {
		fmt.Println("taskrest " + Version)
		return
	}

	cfg := config.MustLoadConfig(*conffile)

	application := app.NewApplication(cfg)
	if err := application.Init(cfg); err != nil {
		log.Fatalf("init failed: %v", err)
	}
	defer application.Release()

	if *initdb {
		application.InitDb()
		zap.L().Info("database initialized")
		return
	}
	if *migrate {
		zap.L().Info("database migrated")
		return
	}

	if err := run(cfg, application.Connections()); err != nil {
		zap.L().Error("server stopped with error", zap.Error(err))
		application.Release()
		os.Exit(1)
	}
}

func run(cfg *config.AppConfig, conns repository.ConnectionProvider) error {
	products := repository.NewProductStore()
	srv := webserver.NewWebServer(cfg)
	adminapi.Init(srv, adminapi.Services{
		Products:     service.NewProductManager(conns, products),
		OrderDetails: service.NewOrderDetailManager(conns, repository.NewOrderDetailStore(products)),
		Categories:   service.NewCategoryManager(conns, repository.NewCategoryStore()),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		<-gctx.Done()
		zap.L().Info("shutting down web server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
