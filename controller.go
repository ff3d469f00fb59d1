package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/thiefmaster/ddcwin/ddc"
)

// commands annotated with needsSession get state.session set up before
// they run
const needsSession = "needs-session"

var sessionAnnotation = map[string]string{needsSession: "true"}

type appState struct {
	config  appConfig
	logger  *log.Logger
	session *ddc.Session
}

var (
	state = &appState{
		config: defaultConfig(),
		logger: log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true}),
	}

	configPath   string
	logLevel     string
	displayIndex int

	rootCmd = &cobra.Command{
		Use:               "ddcwin",
		Short:             "Control external monitors over DDC/CI",
		Long:              "ddcwin reads and changes brightness and input source of external monitors using the Windows monitor configuration API.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	flags.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error (overrides the config file)")
	flags.IntVarP(&displayIndex, "display", "d", -1, "only use the display with this index as shown by list")

	rootCmd.AddCommand(listCmd, brightnessCmd, inputCmd, demoCmd, knobCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	if configPath != "" {
		state.logger.Debug("loading config file", "path", configPath)
		if err := state.config.load(configPath); err != nil {
			return err
		}
	}
	if logLevel != "" {
		state.config.LogLevel = logLevel
	}
	level, err := log.ParseLevel(state.config.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	state.logger.SetLevel(level)

	if cmd.Annotations[needsSession] == "" {
		return nil
	}
	api, err := ddc.SystemAPI()
	if err != nil {
		return err
	}
	state.session = ddc.NewSession(api,
		ddc.WithCooldown(state.config.Cooldown),
		ddc.WithLogger(state.logger))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		state.logger.Error(err)
		os.Exit(1)
	}
}
