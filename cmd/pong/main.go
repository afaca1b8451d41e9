package main

import (
	"github.com/alecthomas/kong"

	"github.com/lox/pong/internal/config"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command
type Globals struct {
	Config   string `short:"c" default:"pong.hcl" type:"path" help:"HCL configuration file (missing file means defaults)"`
	Debug    bool   `help:"Enable debug logging"`
	LogLevel string `name:"log-level" help:"Override the configured log level (debug, info, warn, error)"`
}

// load reads the configuration file and applies flag overrides.
func (g *Globals) load() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if g.LogLevel != "" {
		cfg.UI.LogLevel = g.LogLevel
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"1" help:"Play against the computer in the terminal"`
	Simulate SimulateCmd      `cmd:"" help:"Run headless matches between an autopilot and the computer"`
	Watch    WatchCmd         `cmd:"" help:"Serve an autopilot game to websocket spectators"`
	Show     ConfigCmd        `cmd:"" name:"config" help:"Print the effective configuration"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pong"),
		kong.Description("Two-paddle Pong with a computer opponent"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
		kong.Bind(&cli.Globals),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
