package logger

import (
	"io"
	"os"
	"path/filepath"

	fiberLogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Options struct {
	Level string
	Debug bool
	// Dir enables a rotating app.log next to stdout when set.
	Dir string
}

// New configures the standard logrus logger and returns it together with the writer it logs to.
func New(opts Options) (*logrus.Logger, io.Writer, error) {
	out, err := newWriter(opts.Dir)
	if err != nil {
		return nil, nil, err
	}

	log := logrus.StandardLogger()
	log.SetOutput(out)

	if opts.Debug {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		log.WithField("level", opts.Level).Warn("Invalid log level, using info")
		level = logrus.InfoLevel
	}
	if opts.Debug && level < logrus.DebugLevel {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)

	return log, out, nil
}

func newWriter(logDir string) (io.Writer, error) {
	if logDir == "" {
		return os.Stdout, nil
	}
	if err := os.MkdirAll(logDir, os.ModePerm); err != nil {
		return nil, err
	}

	logFile := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, "app.log"),
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}

	return io.MultiWriter(os.Stdout, logFile), nil
}

// AccessLogConfig is the fiber access log format, written to the same sink as the app log.
func AccessLogConfig(out io.Writer) fiberLogger.Config {
	return fiberLogger.Config{
		Output:     out,
		Format:     "${time} | ${status} | ${latency} | ${method} | ${path} | ${locals:requestid} | ${error}\n",
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
	}
}
