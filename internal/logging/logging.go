// Package logging configures the process-wide logrus logger.
package logging

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/conn-castle/pplus-installer/internal/messages"
)

// Console is the file value that keeps logs on stderr.
const Console = "console"

// newFileWriter is a seam for tests.
var newFileWriter = func(path string) io.Writer {
	return &lumberjack.Logger{
		// Log file absolute path, os agnostic
		Filename:   filepath.ToSlash(path),
		MaxSize:    5, // MB
		MaxBackups: 3,
		MaxAge:     30, // days
		Compress:   true,
	}
}

// Init parses level and installs the installer's formatter. When file is set
// and not "console", output goes to a rotating log file instead of stderr.
func Init(level string, file string) error {
	if strings.TrimSpace(level) == "" {
		level = log.WarnLevel.String()
	}
	parsed, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf(messages.LogLevelInvalidFmt, level, err)
	}

	if file != "" && file != Console {
		log.SetOutput(newFileWriter(file))
	}

	log.SetFormatter(NewFormatter())
	log.SetLevel(parsed)
	return nil
}

// NewFormatter returns the compact text formatter used for all log output.
func NewFormatter() log.Formatter {
	return &log.TextFormatter{
		DisableColors:    true,
		FullTimestamp:    true,
		TimestampFormat:  "2006-01-02T15:04:05.000Z07:00",
		QuoteEmptyFields: true,
	}
}
