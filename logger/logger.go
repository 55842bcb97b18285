// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package logger

import (
	"fmt"
	"io"
	"os"
	"path"
	"sync"

	"github.com/ava-labs/avalanchego/utils/logging"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type logWrapper struct {
	logger       logging.Logger
	displayLevel zap.AtomicLevel
	logLevel     zap.AtomicLevel
}

// Factory creates named loggers that write colored output to stderr and
// JSON or plain output to rotated files under a shared directory.
type Factory struct {
	config logging.Config
	lock   sync.RWMutex

	// Logger name --> the logger.
	loggers map[string]logWrapper
}

func NewFactory(config logging.Config) *Factory {
	return &Factory{
		config:  config,
		loggers: make(map[string]logWrapper),
	}
}

// Assumes [f.lock] is held
func (f *Factory) makeLogger(config logging.Config) (logging.Logger, error) {
	if _, ok := f.loggers[config.LoggerName]; ok {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateLogger, config.LoggerName)
	}
	consoleEnc := logging.Colors.ConsoleEncoder()
	fileEnc := config.LogFormat.FileEncoder()

	var consoleWriter io.WriteCloser
	if config.DisableWriterDisplaying {
		consoleWriter = discardWriteCloser{io.Discard}
	} else {
		consoleWriter = os.Stderr
	}

	consoleCore := logging.NewWrappedCore(config.DisplayLevel, consoleWriter, consoleEnc)
	consoleCore.WriterDisabled = config.DisableWriterDisplaying

	rw := &lumberjack.Logger{
		Filename:   path.Join(config.Directory, config.LoggerName+".log"),
		MaxSize:    config.MaxSize,  // megabytes
		MaxAge:     config.MaxAge,   // days
		MaxBackups: config.MaxFiles, // files
		Compress:   config.Compress,
	}
	fileCore := logging.NewWrappedCore(config.LogLevel, rw, fileEnc)
	prefix := config.LogFormat.WrapPrefix(config.MsgPrefix)

	l := logging.NewLogger(prefix, consoleCore, fileCore)
	f.loggers[config.LoggerName] = logWrapper{
		logger:       l,
		displayLevel: consoleCore.AtomicLevel,
		logLevel:     fileCore.AtomicLevel,
	}
	return l, nil
}

func (f *Factory) Make(name string) (logging.Logger, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	config := f.config
	config.LoggerName = name
	return f.makeLogger(config)
}

// SetLogLevel changes the file log level of the logger named [name].
func (f *Factory) SetLogLevel(name string, level logging.Level) error {
	f.lock.RLock()
	defer f.lock.RUnlock()

	lw, ok := f.loggers[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLogger, name)
	}
	lw.logLevel.SetLevel(zapcore.Level(level))
	return nil
}

// SetDisplayLevel changes the console level of the logger named [name].
func (f *Factory) SetDisplayLevel(name string, level logging.Level) error {
	f.lock.RLock()
	defer f.lock.RUnlock()

	lw, ok := f.loggers[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLogger, name)
	}
	lw.displayLevel.SetLevel(zapcore.Level(level))
	return nil
}

func (f *Factory) Close() {
	f.lock.Lock()
	defer f.lock.Unlock()

	for _, lw := range f.loggers {
		lw.logger.Stop()
	}
	f.loggers = nil
}

type discardWriteCloser struct {
	io.Writer
}

func (discardWriteCloser) Close() error {
	return nil
}
