package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Options struct {
	Level      string
	File       string // empty: stdout only
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Setup configures the logrus standard logger and returns it.
// An unknown level falls back to info.
func Setup(o Options) *logrus.Logger {
	l := logrus.StandardLogger()
	configure(l, o, os.Stdout)
	return l
}

func configure(l *logrus.Logger, o Options, stdout io.Writer) {
	l.SetFormatter(&logrus.JSONFormatter{})

	lvl, err := logrus.ParseLevel(strings.TrimSpace(o.Level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	if o.File == "" {
		l.SetOutput(stdout)
	} else {
		l.SetOutput(io.MultiWriter(stdout, &lumberjack.Logger{
			Filename:   o.File,
			MaxSize:    o.MaxSizeMB,
			MaxBackups: o.MaxBackups,
			MaxAge:     o.MaxAgeDays,
			Compress:   true,
		}))
	}
	if err != nil {
		l.WithField("level", o.Level).Warn("unknown log level, using info")
	}
}
