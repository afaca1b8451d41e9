package main

import (
	"fmt"
	"io"
	"os"
)

type ConfigCmd struct {
	out io.Writer `kong:"-"`
}

func (c *ConfigCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	data, err := cfg.YAML()
	if err != nil {
		return err
	}

	out := c.out
	if out == nil {
		out = os.Stdout
	}
	_, err = fmt.Fprint(out, string(data))
	return err
}
