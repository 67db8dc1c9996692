package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.td.teradata.com/sandbox/vtscreen/internal/config"
	"github.td.teradata.com/sandbox/vtscreen/internal/driver"
	"github.td.teradata.com/sandbox/vtscreen/internal/log"
	"github.td.teradata.com/sandbox/vtscreen/internal/services/tty"
)

type options struct {
	cfgFile string
	device  string
	serial  string
	mouse   bool
	logFile io.Closer
}

func newRootCmd() (*cobra.Command, *options) {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "vtscreen",
		Short:         "vtscreen draws a dialog on a VT100 terminal and decodes the keys typed into it",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.initConfigE(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, (*driver.Driver).Run)
		},
	}

	keysCmd := &cobra.Command{
		Use:   "keys",
		Short: "print the bytes and decoded key for everything typed, Ctrl-C to stop",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, (*driver.Driver).Dump)
		},
	}
	rootCmd.AddCommand(keysCmd)

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.cfgFile, "config", "c", "", "configuration file for vtscreen")
	flags.StringVarP(&opts.device, "device", "d", "", "terminal device to use instead of stdin/stdout, e.g. /dev/tty")
	flags.StringVarP(&opts.serial, "serial", "s", "", "serial port with a terminal attached")
	flags.BoolVarP(&opts.mouse, "mouse", "m", false, "report mouse clicks")
	return rootCmd, opts
}

// Execute bootstraps the configuration and runs the selected command.
func Execute() error {
	rootCmd, opts := newRootCmd()
	err := rootCmd.ExecuteContext(context.Background())
	if cerr := opts.close(); err == nil {
		err = cerr
	}
	return err
}

func run(cmd *cobra.Command, mode func(*driver.Driver, context.Context) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	dev, err := tty.Open(config.CLIConfig)
	if err != nil {
		return err
	}
	defer dev.Close()
	return mode(driver.New(dev, config.CLIConfig), ctx)
}

func (o *options) initConfigE(cmd *cobra.Command) error {
	cfg, err := config.Load(o.cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if o.device != "" {
		cfg.Terminal.Device = o.device
	}
	if o.serial != "" {
		cfg.Serial.PortName = o.serial
	}
	if cmd.Flags().Changed("mouse") {
		cfg.Terminal.Mouse = o.mouse
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	config.CLIConfig = cfg

	logConfig := log.NewLogConfigurator()
	logConfig.Level = cfg.Log.Level
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		logConfig.Writer = f
		o.logFile = f
	}
	return log.Setup(logConfig)
}

func (o *options) close() error {
	if o.logFile == nil {
		return nil
	}
	err := o.logFile.Close()
	o.logFile = nil
	log.SetOutput(os.Stderr)
	return err
}
