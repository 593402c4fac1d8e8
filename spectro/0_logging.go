package spectro

import (
	"io"
	"log"
	"os"
)

var (
	DEBUGLogger   *log.Logger
	INFOLogger    *log.Logger
	WARNINGLogger *log.Logger
	ERRORLogger   *log.Logger
)

const (
	DEBUG_LEVEL   = 10
	INFO_LEVEL    = 20
	WARNING_LEVEL = 30
	ERROR_LEVEL   = 40
)

var LOG_LEVEL = INFO_LEVEL // default log level

func init() {
	flag := log.Ldate | log.Ltime | log.Lmicroseconds | log.Lmsgprefix | log.Lshortfile

	DEBUGLogger = log.New(os.Stderr, "DEBUG ", flag)
	INFOLogger = log.New(os.Stderr, "INFO ", flag)
	WARNINGLogger = log.New(os.Stderr, "WARNING ", flag)
	ERRORLogger = log.New(os.Stderr, "ERROR ", flag)

	if logLevelStr := os.Getenv("LOG_LEVEL"); logLevelStr != "" {
		switch logLevelStr {
		case "DEBUG":
			LOG_LEVEL = DEBUG_LEVEL
		case "INFO":
			LOG_LEVEL = INFO_LEVEL
		case "WARNING":
			LOG_LEVEL = WARNING_LEVEL
		case "ERROR":
			LOG_LEVEL = ERROR_LEVEL
		default:
			WARNINGLogger.Printf("Unrecognized LOG_LEVEL env variable value: %s. Keeping LOG_LEVEL at level INFO (20)", logLevelStr)
		}
	}
	SetLogLevel(LOG_LEVEL)
}

// SetLogLevel silences every logger below level.
func SetLogLevel(level int) {
	LOG_LEVEL = level
	for _, l := range []struct {
		logger *log.Logger
		level  int
	}{
		{DEBUGLogger, DEBUG_LEVEL},
		{INFOLogger, INFO_LEVEL},
		{WARNINGLogger, WARNING_LEVEL},
		{ERRORLogger, ERROR_LEVEL},
	} {
		if l.level < level {
			l.logger.SetOutput(io.Discard)
		} else {
			l.logger.SetOutput(os.Stderr)
		}
	}
}
