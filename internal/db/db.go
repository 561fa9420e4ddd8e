// internal/db/db.go
package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/unclebandit/omikuji-web/internal/config"
	"github.com/unclebandit/omikuji-web/internal/secrets"
)

// ConnectTimeout bounds a single connection attempt in the fortune service.
const ConnectTimeout = 5 * time.Second

// DSN builds a postgres URL. Credentials are escaped by url.UserPassword.
func DSN(c config.Database, creds secrets.Credentials) string {
	q := url.Values{}
	q.Set("sslmode", c.SSLMode)
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(creds.Username, creds.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     "/" + c.Name,
		RawQuery: q.Encode(),
	}
	return u.String()
}

// ResolveDSN returns DATABASE_URL when configured, otherwise fetches the
// credentials from the secrets store and assembles the DSN.
func ResolveDSN(ctx context.Context, rt config.Runtime, sm secrets.Client) (string, error) {
	if !rt.UsesSecretsStore() {
		return rt.Database.URL, nil
	}
	creds, err := secrets.Fetch(ctx, sm, rt.Database.SecretName)
	if err != nil {
		return "", err
	}
	return DSN(rt.Database, creds), nil
}

// PQConnector opens a fresh lib/pq handle limited to one connection.
// The caller owns the handle and must Close it when the request is done.
type PQConnector struct {
	DSN string
}

func (c PQConnector) Open(ctx context.Context) (*sql.DB, error) {
	conn, err := sql.Open("postgres", c.DSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(0)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return conn, nil
}

// OpenPool opens a long-lived pooled handle for the worker and seeder.
func OpenPool(ctx context.Context, dsn string, logger logrus.FieldLogger) (*sql.DB, error) {

	pool, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, ConnectTimeout)
	defer cancel()
	if err := pool.PingContext(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	logger.Infof("connected to database: dsn=%s", SanitizeDSN(dsn))
	return pool, nil
}

// SanitizeDSN masks the password for logging.
func SanitizeDSN(dsn string) string {
	parsed, err := url.Parse(dsn)
	if err != nil {
		return "<unparseable dsn>"
	}
	if parsed.User != nil {
		if _, ok := parsed.User.Password(); ok {
			parsed.User = url.UserPassword(parsed.User.Username(), "***")
		}
	}
	return parsed.String()
}
