// Package config loads game and front-end settings from an HCL file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"gopkg.in/yaml.v3"

	"github.com/lox/pong/internal/pong"
)

// Config is the resolved configuration: file values layered over defaults.
type Config struct {
	Game     pong.Config      `yaml:"game"`
	UI       UISettings       `yaml:"ui"`
	Spectate SpectateSettings `yaml:"spectate"`
}

// UISettings contains terminal front-end settings
type UISettings struct {
	LogLevel     string `yaml:"log_level"`
	LogFile      string `yaml:"log_file"`
	KeyReleaseMs int    `yaml:"key_release_ms"` // Terminals never report key-up; a key counts as released after this long without a repeat
	NoColor      bool   `yaml:"no_color"`
}

// KeyRelease returns KeyReleaseMs as a duration
func (u UISettings) KeyRelease() time.Duration {
	return time.Duration(u.KeyReleaseMs) * time.Millisecond
}

// SpectateSettings contains spectator feed settings
type SpectateSettings struct {
	Addr string `yaml:"addr"`
}

// fileConfig mirrors the HCL layout. Every block is optional.
type fileConfig struct {
	Game     *gameBlock     `hcl:"game,block"`
	Field    *fieldBlock    `hcl:"field,block"`
	Ball     *ballBlock     `hcl:"ball,block"`
	Paddle   *paddleBlock   `hcl:"paddle,block"`
	AI       *aiBlock       `hcl:"ai,block"`
	UI       *uiBlock       `hcl:"ui,block"`
	Spectate *spectateBlock `hcl:"spectate,block"`
}

type gameBlock struct {
	WinScore  int    `hcl:"win_score,optional"`
	TickRate  int    `hcl:"tick_rate,optional"`
	LeftName  string `hcl:"left_name,optional"`
	RightName string `hcl:"right_name,optional"`
}

type fieldBlock struct {
	Width  int `hcl:"width,optional"`
	Height int `hcl:"height,optional"`
}

type ballBlock struct {
	Size  int `hcl:"size,optional"`
	Speed int `hcl:"speed,optional"`
}

type paddleBlock struct {
	Width  int `hcl:"width,optional"`
	Height int `hcl:"height,optional"`
	Speed  int `hcl:"speed,optional"`
}

type aiBlock struct {
	Speed    int  `hcl:"speed,optional"`
	DeadZone *int `hcl:"dead_zone,optional"` // Zero is meaningful here
}

type uiBlock struct {
	LogLevel     string `hcl:"log_level,optional"`
	LogFile      string `hcl:"log_file,optional"`
	KeyReleaseMs int    `hcl:"key_release_ms,optional"`
	NoColor      bool   `hcl:"no_color,optional"`
}

type spectateBlock struct {
	Addr string `hcl:"addr,optional"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Game: pong.DefaultConfig(),
		UI: UISettings{
			LogLevel:     "info",
			LogFile:      "pong.log",
			KeyReleaseMs: 150,
		},
		Spectate: SpectateSettings{
			Addr: ":8081",
		},
	}
}

// Load reads an HCL file and layers it over Default. A missing file is not an
// error; the defaults are returned.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg := Default()
	raw.applyTo(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return cfg, nil
}

// applyTo overwrites defaults with every non-zero value from the file
func (f *fileConfig) applyTo(cfg *Config) {
	g := &cfg.Game

	if b := f.Game; b != nil {
		setInt(&g.WinScore, b.WinScore)
		setInt(&g.TickRate, b.TickRate)
		setString(&g.LeftName, b.LeftName)
		setString(&g.RightName, b.RightName)
	}
	if b := f.Field; b != nil {
		setInt(&g.FieldWidth, b.Width)
		setInt(&g.FieldHeight, b.Height)
	}
	if b := f.Ball; b != nil {
		setInt(&g.BallSize, b.Size)
		setInt(&g.BallSpeed, b.Speed)
	}
	if b := f.Paddle; b != nil {
		setInt(&g.PaddleWidth, b.Width)
		setInt(&g.PaddleHeight, b.Height)
		setInt(&g.PaddleSpeed, b.Speed)
	}
	if b := f.AI; b != nil {
		setInt(&g.AISpeed, b.Speed)
		if b.DeadZone != nil {
			g.AIDeadZone = *b.DeadZone
		}
	}
	if b := f.UI; b != nil {
		setString(&cfg.UI.LogLevel, b.LogLevel)
		setString(&cfg.UI.LogFile, b.LogFile)
		setInt(&cfg.UI.KeyReleaseMs, b.KeyReleaseMs)
		cfg.UI.NoColor = b.NoColor
	}
	if b := f.Spectate; b != nil {
		setString(&cfg.Spectate.Addr, b.Addr)
	}
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// Validate validates the resolved configuration
func (c *Config) Validate() error {
	if err := c.Game.Validate(); err != nil {
		return err
	}
	if _, err := log.ParseLevel(c.UI.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %s", c.UI.LogLevel)
	}
	if c.UI.KeyReleaseMs < 0 {
		return fmt.Errorf("key release delay cannot be negative")
	}
	return nil
}

// YAML renders the resolved configuration
func (c *Config) YAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return data, nil
}
