// cmd/customers/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	_ "go.uber.org/automaxprocs"

	"github.com/unclebandit/omikuji-web/internal/config"
	"github.com/unclebandit/omikuji-web/internal/db"
	"github.com/unclebandit/omikuji-web/internal/handler"
	"github.com/unclebandit/omikuji-web/internal/logger"
	"github.com/unclebandit/omikuji-web/internal/repository"
	"github.com/unclebandit/omikuji-web/internal/secrets"
	"github.com/unclebandit/omikuji-web/internal/server"
	"github.com/unclebandit/omikuji-web/internal/service"
	"github.com/unclebandit/omikuji-web/internal/version"
)

var showVersion = flag.Bool("version", false, "print version information and exit")

func main() {
	flag.Parse()
	if *showVersion {
		fmt.Println(version.Info("customers", "Customer listing web service").String())
		return
	}

	rt, err := config.Load(config.CustomerService)
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	l := logger.New(logger.Config{Service: rt.Service, Env: rt.Env, Level: rt.LogLevel})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sm, err := secrets.NewClient(ctx, rt.AWSRegion)
	if err != nil {
		l.Fatalf("failed to create secrets client: %v", err)
	}
	dsn, err := db.ResolveDSN(ctx, rt, sm)
	if err != nil {
		l.Fatalf("failed to resolve database credentials: %v", err)
	}
	l.Infof("database target: %s", db.SanitizeDSN(dsn))

	customerRepo := &repository.CustomerRepository{Opener: db.PQConnector{DSN: dsn}}
	customerService := &service.CustomerService{CustomerRepo: customerRepo}
	customerHandler := handler.NewCustomerHandler(customerService, l)

	l.Infof("🚀 customer service starting on %s", rt.Addr)
	if err := server.Run(ctx, rt.Addr, handler.NewCustomerRouter(customerHandler, l), l); err != nil {
		l.Fatalf("server failed: %v", err)
	}
}
