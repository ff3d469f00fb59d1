package main

import (
	"fmt"
	"os"
	"time"

	"github.com/thiefmaster/ddcwin/ddc"
	"gopkg.in/yaml.v2"
)

type demoConfig struct {
	To   string        `yaml:"to"`
	Back string        `yaml:"back"`
	Hold time.Duration `yaml:"hold"`
}

type knobConfig struct {
	Step   int      `yaml:"step"`
	Inputs []string `yaml:"inputs"`
}

type appConfig struct {
	LogLevel string        `yaml:"log_level"`
	Cooldown time.Duration `yaml:"cooldown"`
	Port     string        `yaml:"port"`
	Demo     demoConfig    `yaml:"demo"`
	Knob     knobConfig    `yaml:"knob"`
}

func defaultConfig() appConfig {
	return appConfig{
		LogLevel: "info",
		Cooldown: ddc.DefaultCooldown,
		Port:     "COM6",
		Demo: demoConfig{
			To:   "hdmi1",
			Back: "mdp",
			Hold: 10 * time.Second,
		},
		Knob: knobConfig{
			Step:   5,
			Inputs: []string{"mdp", "hdmi1"},
		},
	}
}

// load reads path on top of the current values; keys missing from the file
// keep their defaults.
func (c *appConfig) load(path string) error {
	yamlFile, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not open config file: %w", err)
	}
	if err = yaml.UnmarshalStrict(yamlFile, c); err != nil {
		return fmt.Errorf("could not parse config file: %w", err)
	}
	return c.validate()
}

func (c *appConfig) validate() error {
	if c.Cooldown < 0 {
		return fmt.Errorf("cooldown must not be negative: %v", c.Cooldown)
	}
	if c.Demo.Hold < 0 {
		return fmt.Errorf("demo.hold must not be negative: %v", c.Demo.Hold)
	}
	if _, _, err := c.Demo.sources(); err != nil {
		return err
	}
	if c.Knob.Step <= 0 {
		return fmt.Errorf("knob.step must be positive: %d", c.Knob.Step)
	}
	if _, err := c.Knob.sources(); err != nil {
		return err
	}
	return nil
}

func (c demoConfig) sources() (to, back ddc.InputSource, err error) {
	if to, err = ddc.ParseInputSource(c.To); err != nil {
		return 0, 0, fmt.Errorf("invalid demo.to: %w", err)
	}
	if back, err = ddc.ParseInputSource(c.Back); err != nil {
		return 0, 0, fmt.Errorf("invalid demo.back: %w", err)
	}
	return to, back, nil
}

func (c knobConfig) sources() ([2]ddc.InputSource, error) {
	var sources [2]ddc.InputSource
	if len(c.Inputs) != len(sources) {
		return sources, fmt.Errorf("knob.inputs needs exactly %d entries, got %d", len(sources), len(c.Inputs))
	}
	for i, name := range c.Inputs {
		source, err := ddc.ParseInputSource(name)
		if err != nil {
			return sources, fmt.Errorf("invalid knob.inputs[%d]: %w", i, err)
		}
		sources[i] = source
	}
	return sources, nil
}
