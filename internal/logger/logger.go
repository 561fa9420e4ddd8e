package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Config captures runtime metadata used to annotate logs.
type Config struct {
	Service string
	Env     string
	Level   string
}

// New builds a logger writing to stdout.
func New(cfg Config) logrus.FieldLogger {
	return NewWithWriter(os.Stdout, cfg)
}

// NewWithWriter is New with an explicit sink. Unknown levels fall back to info.
func NewWithWriter(w io.Writer, cfg Config) logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:    true,
		DisableColors:    true,
		QuoteEmptyFields: true,
	})

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	return l.WithFields(logrus.Fields{
		"service": cfg.Service,
		"env":     cfg.Env,
	})
}

// Discard is handy in tests.
func Discard() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
