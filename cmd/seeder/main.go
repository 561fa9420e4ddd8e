// cmd/seeder/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	_ "go.uber.org/automaxprocs"

	"github.com/unclebandit/omikuji-web/internal/config"
	"github.com/unclebandit/omikuji-web/internal/db"
	"github.com/unclebandit/omikuji-web/internal/logger"
	"github.com/unclebandit/omikuji-web/internal/secrets"
	"github.com/unclebandit/omikuji-web/internal/version"
)

var (
	showVersion = flag.Bool("version", false, "print version information and exit")
	seedDir     = flag.String("dir", "seed", "directory holding the seed SQL files")
)

// Order matters: the schema must exist before the data files run.
var seedFiles = []string{
	"schema.sql",
	"results.sql",
	"customers.sql",
}

func main() {
	flag.Parse()
	if *showVersion {
		fmt.Println(version.Info("seeder", "Fortune database seeder").String())
		return
	}

	rt, err := config.Load(config.SeederTool)
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}
	l := logger.New(logger.Config{Service: rt.Service, Env: rt.Env, Level: rt.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

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

	conn, err := db.OpenPool(ctx, dsn, l)
	if err != nil {
		l.Fatalf("%v", err)
	}
	defer conn.Close()

	for _, name := range seedFiles {
		file := filepath.Join(*seedDir, name)
		content, err := os.ReadFile(file)
		if err != nil {
			l.Fatalf("failed to read %s: %v", file, err)
		}

		if _, err := conn.ExecContext(ctx, string(content)); err != nil {
			l.Fatalf("failed to execute %s: %v", file, err)
		}
		l.Infof("seeded: %s", file)
	}

	l.Info("database seeding completed successfully")
}
