// Talon - UCI chess engine in Go
//
// MIT License. See LICENSE.

// Package config holds globally available configuration values, set
// from defaults and optionally overridden by a TOML config file.
package config

import (
	"log"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// globally available config values.
var (
	// ConfFile is the path to the config file, relative to the
	// working directory unless absolute.
	ConfFile = "./talon.toml"

	// LogLevel is the standard engine logger's level.
	LogLevel = LogLevels["info"]

	// SearchLogLevel is the search hot-path logger's level, kept
	// separate so search tracing can be silenced without silencing
	// everything else.
	SearchLogLevel = LogLevels["warning"]

	// Settings is the structured configuration read from ConfFile.
	Settings conf

	initialized = false
)

// LogLevels maps the config file's string log levels to op/go-logging
// numeric levels.
var LogLevels = map[string]int{
	"off":      -1,
	"critical": 0,
	"error":    1,
	"warning":  2,
	"notice":   3,
	"info":     4,
	"debug":    5,
}

type conf struct {
	Log    logConfiguration
	Search searchConfiguration
}

type logConfiguration struct {
	LogLvl       string
	SearchLogLvl string
}

// searchConfiguration holds the search-related settings of the config
// file. TTSizeMb, UseBook and BookPath are read when the UCI handler is
// created; MoveOverhead is not read anywhere (the time manager uses its
// own fixed overhead). There is no runtime override: the UCI handler
// does not implement `setoption`.
type searchConfiguration struct {
	TTSizeMb     int
	UseBook      bool
	BookPath     string
	MoveOverhead int
}

func init() {
	Settings.Log.LogLvl = "info"
	Settings.Log.SearchLogLvl = "warning"
	Settings.Search.TTSizeMb = 64
	Settings.Search.UseBook = true
	Settings.Search.BookPath = "./assets/book.txt"
	Settings.Search.MoveOverhead = 50
}

// Setup reads ConfFile if present and applies it on top of the
// defaults set in init(). A missing or malformed file is not fatal:
// a missing file is silently skipped and the defaults stay; a file that
// fails to parse is logged.
func Setup() {
	if initialized {
		return
	}
	path, err := resolveFile(ConfFile)
	if err == nil {
		if _, err := toml.DecodeFile(path, &Settings); err != nil {
			log.Println("config: could not parse", path, ":", err)
		}
	}
	if lvl, ok := LogLevels[Settings.Log.LogLvl]; ok {
		LogLevel = lvl
	}
	if lvl, ok := LogLevels[Settings.Log.SearchLogLvl]; ok {
		SearchLogLevel = lvl
	}
	initialized = true
}

// resolveFile looks for file relative to the working directory, then
// relative to the running executable.
func resolveFile(file string) (string, error) {
	if filepath.IsAbs(file) {
		if _, err := os.Stat(file); err != nil {
			return "", err
		}
		return file, nil
	}
	if _, err := os.Stat(file); err == nil {
		return filepath.Abs(file)
	}
	if exe, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(exe), file)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", os.ErrNotExist
}
