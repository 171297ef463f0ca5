// Package log provides the logging backend of the assessment tools,
// based around the go-logging package.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"gopkg.in/op/go-logging.v1"
)

// Levels lists the accepted logging levels, most to least severe.
var Levels = []string{"ERROR", "WARNING", "NOTICE", "INFO", "DEBUG"}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error {
	return nil
}

// Backend is a leveled log backend writing to a file, to stdout or nowhere.
type Backend struct {
	logging.LeveledBackend
	sync.Mutex

	w io.WriteCloser
}

// GetLogger returns a per-module logger that writes to the backend.
func (b *Backend) GetLogger(module string) *logging.Logger {
	l := logging.MustGetLogger(module)
	l.SetBackend(b)
	return l
}

// Close closes the underlying log file, if any.
func (b *Backend) Close() error {
	b.Lock()
	defer b.Unlock()
	return b.w.Close()
}

// New initializes a logging backend writing to the file f, or to stdout if f
// is empty. Nothing is written if disable is true.
func New(f string, level string, disable bool) (*Backend, error) {

	lvl, err := LevelFromString(level)
	if err != nil {
		return nil, err
	}

	b := new(Backend)

	switch {
	case disable:
		b.w = nopCloser{io.Discard}
	case f == "":
		b.w = nopCloser{os.Stdout}
	default:
		const fileMode = 0600
		if b.w, err = os.OpenFile(f, os.O_CREATE|os.O_APPEND|os.O_WRONLY, fileMode); err != nil {
			return nil, fmt.Errorf("log: failed to create log file: %w", err)
		}
	}

	return newBackend(b, lvl), nil
}

// NewWriter initializes a logging backend writing to w.
func NewWriter(w io.Writer, level string) (*Backend, error) {
	lvl, err := LevelFromString(level)
	if err != nil {
		return nil, err
	}
	return newBackend(&Backend{w: nopCloser{w}}, lvl), nil
}

func newBackend(b *Backend, lvl logging.Level) *Backend {
	logFmt := logging.MustStringFormatter("%{time:15:04:05.000} %{level:.4s} %{module}: %{message}")
	base := logging.NewLogBackend(b.w, "", 0)
	b.LeveledBackend = logging.AddModuleLevel(logging.NewBackendFormatter(base, logFmt))
	b.LeveledBackend.SetLevel(lvl, "")
	return b
}

// LevelFromString parses a case insensitive logging level.
func LevelFromString(l string) (logging.Level, error) {
	switch strings.ToUpper(l) {
	case "ERROR":
		return logging.ERROR, nil
	case "WARNING":
		return logging.WARNING, nil
	case "NOTICE":
		return logging.NOTICE, nil
	case "INFO":
		return logging.INFO, nil
	case "DEBUG":
		return logging.DEBUG, nil
	default:
		return logging.CRITICAL, fmt.Errorf("log: invalid level: '%v'", l)
	}
}
