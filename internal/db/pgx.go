package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"
)

// PGXConnector dials one pgx connection per call with a fixed connect timeout.
type PGXConnector struct {
	DSN    string
	Logger logrus.FieldLogger
}

func (c PGXConnector) Connect(ctx context.Context) (*pgx.Conn, error) {
	cfg, err := pgx.ParseConfig(c.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	cfg.ConnectTimeout = ConnectTimeout
	if c.Logger != nil {
		cfg.Tracer = &queryTracer{log: c.Logger}
	}

	conn, err := pgx.ConnectConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return conn, nil
}

// queryTracer forwards failed queries to the logger at debug level.
// SQL text is not logged.
type queryTracer struct {
	log logrus.FieldLogger
}

func (t *queryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, _ pgx.TraceQueryStartData) context.Context {
	return ctx
}

func (t *queryTracer) TraceQueryEnd(_ context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	if data.Err != nil {
		t.log.WithError(data.Err).WithField("command_tag", data.CommandTag.String()).Debug("postgres query failed")
	}
}
