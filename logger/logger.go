package logger

import (
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/Scalingo/sclng-repo-ranker/config"
	"github.com/sirupsen/logrus"
)

// Setup will configure logrus logger from the LOGS section of the config
// Setup is called once at startup, before the first request is served
func Setup(cfg config.Config) {
	logrus.SetLevel(StringToLogrusLogType(cfg.Logs.Level))
	logrus.SetReportCaller(cfg.Logs.ReportCaller)

	if cfg.Logs.OutputLogsAsJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{
			CallerPrettyfier: shortCaller,
		})
		return
	}

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:    true,
		CallerPrettyfier: shortCaller,
	})
}

// shortCaller keeps the package/file:line of the caller instead of the full build path
func shortCaller(frame *runtime.Frame) (string, string) {
	function := frame.Function
	if i := strings.LastIndex(function, "/"); i >= 0 {
		function = function[i+1:]
	}

	file := filepath.Base(filepath.Dir(frame.File)) + "/" + filepath.Base(frame.File) + ":" + strconv.Itoa(frame.Line)
	return function, file
}

// StringToLogrusLogType will convert string to the right logrus level
// unknown values fall back to error level
func StringToLogrusLogType(logLevel string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(logLevel)) {
	case "error":
		return logrus.ErrorLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "info":
		return logrus.InfoLevel
	case "debug":
		return logrus.DebugLevel
	case "trace":
		return logrus.TraceLevel
	default:
		return logrus.ErrorLevel
	}
}
