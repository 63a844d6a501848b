// Package config holds the root command line definition.
package config

import "github.com/Alia5/padcore/internal/cmd"

type Log struct {
	Level   string `help:"Log level: trace, debug, info, warn, error" default:"info" enum:"trace,debug,info,warn,warning,error" env:"PADCORE_LOG_LEVEL"`
	File    string `help:"Write logs to this file instead of the console" type:"path" env:"PADCORE_LOG_FILE"`
	RawFile string `help:"Dump every encoded report as hex to this file" type:"path" env:"PADCORE_LOG_RAW_FILE"`
}

type CLI struct {
	Config string `help:"Path to a CLI configuration file (json, yaml or toml)" type:"path" env:"PADCORE_CONFIG"`
	Log    Log    `embed:"" prefix:"log."`

	Simulate cmd.Simulate       `cmd:"" help:"Replay an input trace through the controller pipeline on simulated hardware"`
	Options  cmd.OptionsCommand `cmd:"" help:"Inspect or reset the persisted options"`
	Cfg      cmd.ConfigCommand  `cmd:"" name:"config" help:"Configuration helpers"`
}
