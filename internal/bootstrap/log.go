package bootstrap

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/natefinch/lumberjack"
	"github.com/sirupsen/logrus"
	"github.com/synctv-org/authd/cmd/flags"
	"github.com/synctv-org/authd/internal/conf"
	"github.com/synctv-org/authd/utils"
	"github.com/zijiren233/go-colorable"
)

var logFile *lumberjack.Logger

func setLog(l *logrus.Logger) {
	if flags.Dev {
		l.SetLevel(logrus.DebugLevel)
		l.SetReportCaller(true)
	} else {
		l.SetLevel(logrus.InfoLevel)
		l.SetReportCaller(false)
	}
}

var logCallerIgnoreFuncs = map[string]struct{}{
	"github.com/synctv-org/authd/server/middlewares.NewLog.func1": {},
}

func callerPrettyfier(f *runtime.Frame) (function string, file string) {
	if _, ok := logCallerIgnoreFuncs[f.Function]; ok {
		return "", ""
	}
	return f.Function, fmt.Sprintf("%s:%d", f.File, f.Line)
}

func InitLog(ctx context.Context) (err error) {
	setLog(logrus.StandardLogger())
	if !flags.Dev && conf.Conf.Log.Level != "" {
		lvl, err := logrus.ParseLevel(conf.Conf.Log.Level)
		if err != nil {
			return fmt.Errorf("log: %w", err)
		}
		logrus.SetLevel(lvl)
	}
	if conf.Conf.Log.Enable {
		if !filepath.IsAbs(conf.Conf.Log.FilePath) {
			conf.Conf.Log.FilePath = filepath.Join(flags.DataDir, conf.Conf.Log.FilePath)
		}
		conf.Conf.Log.FilePath, err = utils.OptFilePath(conf.Conf.Log.FilePath)
		if err != nil {
			return fmt.Errorf("log: log file path error: %w", err)
		}
		logFile = &lumberjack.Logger{
			Filename:   conf.Conf.Log.FilePath,
			MaxSize:    conf.Conf.Log.MaxSize,
			MaxBackups: conf.Conf.Log.MaxBackups,
			MaxAge:     conf.Conf.Log.MaxAge,
			Compress:   conf.Conf.Log.Compress,
		}
		if err := logFile.Rotate(); err != nil {
			return fmt.Errorf("log: rotate log file error: %w", err)
		}
		// dev mode colors stdout; keep escape codes out of the file
		var w io.Writer = logFile
		if flags.Dev {
			w = colorable.NewNonColorableWriter(logFile)
		}
		if flags.Dev || flags.LogStd {
			logrus.SetOutput(io.MultiWriter(os.Stdout, w))
			logrus.Infof("log: enable log to stdout and file: %s", conf.Conf.Log.FilePath)
		} else {
			logrus.SetOutput(w)
			logrus.Infof("log: disable log to stdout, only log to file: %s", conf.Conf.Log.FilePath)
		}
	}
	switch conf.Conf.Log.LogFormat {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat:  time.DateTime,
			CallerPrettyfier: callerPrettyfier,
		})
	default:
		if conf.Conf.Log.LogFormat != "text" {
			logrus.Warnf("unknown log format: %s, use default: text", conf.Conf.Log.LogFormat)
		}
		logrus.SetFormatter(&logrus.TextFormatter{
			DisableColors:    !flags.Dev,
			ForceQuote:       flags.Dev,
			DisableQuote:     !flags.Dev,
			DisableSorting:   true,
			FullTimestamp:    true,
			TimestampFormat:  time.DateTime,
			QuoteEmptyFields: true,
			CallerPrettyfier: callerPrettyfier,
		})
	}
	log.SetOutput(logrus.StandardLogger().Writer())
	return nil
}

// RotateLog starts a new log file. It is a no-op when file logging is off.
func RotateLog() error {
	if logFile == nil {
		return nil
	}
	return logFile.Rotate()
}

func InitStdLog(ctx context.Context) error {
	logrus.StandardLogger().SetOutput(os.Stdout)
	log.SetOutput(os.Stdout)
	setLog(logrus.StandardLogger())
	return nil
}

func InitDiscardLog(ctx context.Context) error {
	logrus.StandardLogger().SetOutput(io.Discard)
	log.SetOutput(io.Discard)
	return nil
}
