// Talon - UCI chess engine in Go
//
// MIT License. See LICENSE.

// Command talon is the executable entry point: it parses command-line
// flags, wires config and logging, and starts the blocking UCI loop
// on stdin/stdout.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/talonchess/talon/internal/config"
	"github.com/talonchess/talon/internal/logging"
	"github.com/talonchess/talon/internal/uci"
)

var version = "dev"

func main() {
	versionFlag := flag.Bool("version", false, "print version and exit")
	configFile := flag.String("config", config.ConfFile, "path to the TOML configuration file")
	logLvl := flag.String("loglvl", "", "standard log level (off|critical|error|warning|notice|info|debug)")
	searchLogLvl := flag.String("searchloglvl", "", "search log level (off|critical|error|warning|notice|info|debug)")
	flag.Parse()

	if *versionFlag {
		fmt.Println("Talon", version)
		return
	}

	config.ConfFile = *configFile
	config.Setup()
	if *logLvl != "" {
		if lvl, ok := config.LogLevels[*logLvl]; ok {
			config.LogLevel = lvl
		}
	}
	if *searchLogLvl != "" {
		if lvl, ok := config.LogLevels[*searchLogLvl]; ok {
			config.SearchLogLevel = lvl
		}
	}

	log := logging.GetLog()
	log.Infof("Talon %s starting", version)

	h := uci.NewHandler()
	h.Loop()
	os.Exit(0)
}
