// Talon - UCI chess engine in Go
//
// MIT License. See LICENSE.

// Package logging is a thin wrapper around "github.com/op/go-logging"
// that preconfigures the backends and formatters the rest of the
// engine uses, so call sites just ask for a named logger.
package logging

import (
	"log"
	"os"

	"github.com/op/go-logging"

	"github.com/talonchess/talon/internal/config"
)

// Logger is re-exported so callers don't need to import op/go-logging
// directly just to hold a reference.
type Logger = logging.Logger

var standardFormat = logging.MustStringFormatter(
	`%{time:15:04:05.000} %{shortpkg:-8.8s}:%{shortfile:-14.14s} %{level:-7.7s}:  %{message}`,
)

// uciFormat keeps protocol trace lines terse: a timestamp, the literal
// tag UCI, and the raw line.
var uciFormat = logging.MustStringFormatter(`%{time:15:04:05.000} UCI %{message}`)

var (
	standardLog *logging.Logger
	searchLog   *logging.Logger
	uciLog      *logging.Logger
)

func init() {
	standardLog = logging.MustGetLogger("standard")
	searchLog = logging.MustGetLogger("search")
	uciLog = logging.MustGetLogger("uci")
}

// GetLog returns the standard engine logger, configured to stderr at
// config.LogLevel. stdout is reserved for the UCI wire (spec section 6);
// diagnostics never share it.
func GetLog() *logging.Logger {
	backend := logging.AddModuleLevel(logging.NewBackendFormatter(
		logging.NewLogBackend(os.Stderr, "", log.Lmsgprefix), standardFormat))
	backend.SetLevel(logging.Level(config.LogLevel), "")
	standardLog.SetBackend(backend)
	return standardLog
}

// GetSearchLog returns the logger used inside the search hot path,
// configured at config.SearchLogLevel so it can be silenced
// independently of the standard logger during timed search.
func GetSearchLog() *logging.Logger {
	backend := logging.AddModuleLevel(logging.NewBackendFormatter(
		logging.NewLogBackend(os.Stderr, "", log.Lmsgprefix), standardFormat))
	backend.SetLevel(logging.Level(config.SearchLogLevel), "")
	searchLog.SetBackend(backend)
	return searchLog
}

// GetUciLog returns a logger dedicated to UCI protocol I/O tracing, one
// line per command or reply, always at debug level. It writes to
// stderr rather than stdout: stdout is the UCI wire itself, and a
// trace line interleaved with it would corrupt what the GUI parses.
func GetUciLog() *logging.Logger {
	backend := logging.AddModuleLevel(logging.NewBackendFormatter(
		logging.NewLogBackend(os.Stderr, "", log.Lmsgprefix), uciFormat))
	backend.SetLevel(logging.DEBUG, "")
	uciLog.SetBackend(backend)
	return uciLog
}
