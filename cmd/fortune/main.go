// cmd/fortune/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	_ "go.uber.org/automaxprocs"

	"github.com/unclebandit/omikuji-web/internal/config"
	"github.com/unclebandit/omikuji-web/internal/db"
	"github.com/unclebandit/omikuji-web/internal/handler"
	"github.com/unclebandit/omikuji-web/internal/logger"
	"github.com/unclebandit/omikuji-web/internal/queue"
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
		fmt.Println(version.Info("fortune", "Daily fortune web service").String())
		return
	}

	rt, err := config.Load(config.FortuneService)
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	l := logger.New(logger.Config{Service: rt.Service, Env: rt.Env, Level: rt.LogLevel})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Credentials are read once here and live for the whole process.
	sm, err := secrets.NewClient(ctx, rt.AWSRegion)
	if err != nil {
		l.Fatalf("failed to create secrets client: %v", err)
	}
	dsn, err := db.ResolveDSN(ctx, rt, sm)
	if err != nil {
		l.Fatalf("failed to resolve database credentials: %v", err)
	}
	l.Infof("database target: %s", db.SanitizeDSN(dsn))

	events, closeEvents := newDrawQueue(rt, l)
	defer closeEvents()

	repo := &repository.FortuneRepository{Dialer: db.PGXConnector{DSN: dsn, Logger: l}}
	fortuneService := service.NewFortuneService(repo, events, l)
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := fortuneService.Close(flushCtx); err != nil {
			l.Warnf("draw events not flushed: %v", err)
		}
	}()
	fortuneHandler := handler.NewFortuneHandler(fortuneService, l)

	l.Infof("🚀 fortune service starting on %s", rt.Addr)
	if err := server.Run(ctx, rt.Addr, handler.NewFortuneRouter(fortuneHandler, l), l); err != nil {
		l.Fatalf("server failed: %v", err)
	}
}

// newDrawQueue prefers RabbitMQ and falls back to the in-memory queue, which
// only logs draws. Draw publishing never blocks startup.
func newDrawQueue(rt config.Runtime, l logrus.FieldLogger) (queue.Queue, func()) {
	if rt.AMQPURL != "" {
		q, err := queue.NewAMQPQueue(rt.AMQPURL, l)
		if err == nil {
			return q, func() { _ = q.Close() }
		}
		l.Warnf("⚠️ draw events fall back to in-memory queue: %v", err)
	}

	q := queue.NewInMemoryQueue(l)
	if err := queue.StartDrawLogSubscriber(q, l); err != nil {
		l.Warnf("⚠️ failed to start draw log subscriber: %v", err)
	}
	return q, func() {}
}
