package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"gpsclock/internal/config"
	"gpsclock/internal/web"
)

// newLogger builds the process logger from config. Lines are also kept in
// logs for the status API.
func newLogger(cfg config.LogConfig, logs *web.LogBuffer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	l := logrus.New()
	l.SetLevel(level)
	if cfg.Format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	var out io.Writer = os.Stderr
	if logs != nil {
		out = io.MultiWriter(os.Stderr, logs)
	}
	l.SetOutput(out)
	return l, nil
}
