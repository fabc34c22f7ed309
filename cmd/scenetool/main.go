// scenetool is a CLI utility for inspecting the abstract scene built from
// a simulation snapshot.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/simvis/internal/config"
	"github.com/Faultbox/simvis/internal/logger"
)

func main() {
	config.ParseFlags()
	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	command := args[0]
	args = args[1:]

	switch command {
	case "info":
		err = cmdInfo(cfg, args)
	case "update", "up":
		err = cmdUpdate(cfg, args)
	case "dump":
		err = cmdDump(cfg, args)
	case "config":
		err = cmdConfig(cfg, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`scenetool - abstract scene inspector

Usage:
  scenetool [flags] <command> <snapshot.yaml>

Commands:
  info <snapshot>     Show model and state counts
  update <snapshot>   Build the scene and list geoms, lights and cameras
  dump <snapshot>     Build the scene and write it as YAML
  config [path]       Write the effective config (default: user config dir)

Flags:
  -config <file>      Config file (default $SIMVIS_CONFIG, ./simvis.yaml or the user config dir)
  -debug              Enable debug logging
  -maxgeom <n>        Scene geom capacity
  -label <target>     Label target: none, body, joint, geom, site, ...
  -frame <target>     Frame target: none, body, geom, site, world, ...
  -camera <mode>      Camera mode: free, tracking, fixed

Examples:
  scenetool info pendulum.yaml
  scenetool -label geom -frame world update pendulum.yaml
  scenetool -maxgeom 50 dump pendulum.yaml > scene.yaml`)
}
