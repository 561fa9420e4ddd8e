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
	"github.com/unclebandit/omikuji-web/internal/logger"
	"github.com/unclebandit/omikuji-web/internal/queue"
	"github.com/unclebandit/omikuji-web/internal/repository"
	"github.com/unclebandit/omikuji-web/internal/secrets"
	"github.com/unclebandit/omikuji-web/internal/service"
	"github.com/unclebandit/omikuji-web/internal/version"
)

var showVersion = flag.Bool("version", false, "print version information and exit")

func main() {
	flag.Parse()
	if *showVersion {
		fmt.Println(version.Info("worker", "Fortune draw history worker").String())
		return
	}

	rt, err := config.Load(config.DrawWorker)
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	l := logger.New(logger.Config{Service: rt.Service, Env: rt.Env, Level: rt.LogLevel})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var sm secrets.Client
	if rt.UsesSecretsStore() {
		client, err := secrets.NewClient(ctx, rt.AWSRegion)
		if err != nil {
			l.Fatalf("failed to create secrets client: %v", err)
		}
		sm = client
	}
	dsn, err := db.ResolveDSN(ctx, rt, sm)
	if err != nil {
		l.Fatalf("failed to resolve database credentials: %v", err)
	}

	pool, err := db.OpenPool(ctx, dsn, l)
	if err != nil {
		l.Fatalf("%v", err)
	}
	defer pool.Close()

	q, err := queue.NewAMQPQueue(rt.AMQPURL, l)
	if err != nil {
		l.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer q.Close()

	worker := service.NewDrawWorker(&repository.DrawRepository{DB: pool}, l)
	if err := q.Subscribe(queue.DrawTopic, worker.Handle); err != nil {
		l.Fatalf("failed to subscribe to %s: %v", queue.DrawTopic, err)
	}

	l.Info("worker running, waiting for draw events...")
	select {
	case <-ctx.Done():
		l.Info("worker stopping")
	case err := <-q.Done():
		// Exits non-zero; a supervisor restarts the worker with a fresh connection.
		l.Fatalf("queue consumer lost: %v", err)
	}
}
