package config

import (
	"bytes"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/spf13/viper"
	"github.td.teradata.com/sandbox/vtscreen/internal/log"
	"gopkg.in/yaml.v2"
)

const (
	defSerialBaudRate  = 9600
	defSerialDataBits  = 8
	defSerialStopBits  = 1
	defMinimumReadSize = 1
	defSerialParity    = 0

	defReadBuffer = 16

	defThemeFg      = 7
	defThemeBg      = 4
	defThemeTitleFg = 11

	defLogLevel = "WARN"

	EnvVarPrefix = "VT"
)

var CLIConfig *Config
var replacer = strings.NewReplacer(".", "_")

type Config struct {
	Terminal *Terminal `mapstructure:"terminal" yaml:"terminal"`
	Serial   *Serial   `mapstructure:"serial" yaml:"serial"`
	Theme    *Theme    `mapstructure:"theme" yaml:"theme"`
	Log      *Log      `mapstructure:"log" yaml:"log"`
}

// Terminal selects the device. An empty Device means stdin and stdout.
type Terminal struct {
	Device     string `mapstructure:"device" yaml:"device"`
	Mouse      bool   `mapstructure:"mouse" yaml:"mouse"`
	ReadBuffer int    `mapstructure:"read_buffer" yaml:"read_buffer"`
}

// Serial drives a VT100 on a serial line. It is used when PortName is set.
type Serial struct {
	PortName        string `mapstructure:"port_name" yaml:"port_name"`
	BaudRate        int    `mapstructure:"baud_rate" yaml:"baud_rate"`
	DataBits        int    `mapstructure:"data_bits" yaml:"data_bits"`
	StopBits        int    `mapstructure:"stop_bits" yaml:"stop_bits"`
	Parity          int    `mapstructure:"parity" yaml:"parity"`
	MinimumReadSize int    `mapstructure:"minimum_read_size" yaml:"minimum_read_size"`
}

// Theme colors use the 0-15 palette, backgrounds only 0-8.
type Theme struct {
	Fg      int `mapstructure:"fg" yaml:"fg"`
	Bg      int `mapstructure:"bg" yaml:"bg"`
	TitleFg int `mapstructure:"title_fg" yaml:"title_fg"`
}

type Log struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"`
}

func DefaultConfig() *Config {
	return &Config{
		Terminal: &Terminal{
			Device:     "",
			Mouse:      false,
			ReadBuffer: defReadBuffer,
		},
		Serial: &Serial{
			PortName:        "",
			BaudRate:        defSerialBaudRate,
			DataBits:        defSerialDataBits,
			StopBits:        defSerialStopBits,
			Parity:          defSerialParity,
			MinimumReadSize: defMinimumReadSize,
		},
		Theme: &Theme{
			Fg:      defThemeFg,
			Bg:      defThemeBg,
			TitleFg: defThemeTitleFg,
		},
		Log: &Log{
			Level: defLogLevel,
		},
	}
}

// NewConfig layers the defaults, the optional yaml file and VT_ prefixed
// environment variables, in that order, into CLIConfig.
func NewConfig(cfgFile string) error {
	cfg, err := Load(cfgFile)
	if err != nil {
		return err
	}
	CLIConfig = cfg
	return nil
}

func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	cfg := DefaultConfig()

	// Viper needs to know a key exists in order to override it.
	// https://github.com/spf13/viper/issues/188
	b, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return nil, err
	}
	v.SetConfigType("yaml")
	if err := v.MergeConfig(bytes.NewReader(b)); err != nil {
		return nil, err
	}

	if cfgFile != "" {
		fi, err := os.Stat(cfgFile)
		switch {
		case err != nil:
			return nil, fmt.Errorf("config file %s: %w", cfgFile, err)
		case fi.IsDir():
			return nil, fmt.Errorf("config file %s is a directory", cfgFile)
		}
		v.SetConfigFile(cfgFile)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", fi.Name(), err)
		}
	}

	v.AutomaticEnv()
	v.SetEnvPrefix(EnvVarPrefix)
	v.SetEnvKeyReplacer(replacer)

	// Preload environment bindings so they are processed on load
	bindVars(v, reflect.TypeOf(*cfg), "")
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// Validate keeps values that would trip the screen's preconditions out of
// the running program.
func (c *Config) Validate() error {
	if c.Theme.Bg < 0 || c.Theme.Bg > 8 {
		return fmt.Errorf("theme.bg %d must be within 0-8", c.Theme.Bg)
	}
	for name, fg := range map[string]int{"theme.fg": c.Theme.Fg, "theme.title_fg": c.Theme.TitleFg} {
		if fg < 0 || fg > 15 {
			return fmt.Errorf("%s %d must be within 0-15", name, fg)
		}
	}
	if c.Terminal.ReadBuffer < 6 {
		return fmt.Errorf("terminal.read_buffer %d cannot hold a mouse report", c.Terminal.ReadBuffer)
	}
	if c.Serial.PortName != "" && c.Terminal.Device != "" {
		return fmt.Errorf("serial.port_name and terminal.device are mutually exclusive")
	}
	return nil
}

func bindVars(v *viper.Viper, t reflect.Type, prefix string) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}
		tag = prefix + tag

		if field.Type.Kind() == reflect.Struct {
			bindVars(v, field.Type, tag+".")
		} else if field.Type.Kind() == reflect.Ptr && field.Type.Elem().Kind() == reflect.Struct {
			bindVars(v, field.Type.Elem(), tag+".")
		} else {
			log.Debugf("Scanning for environment variable: %s_%s -> %s", EnvVarPrefix, strings.ToUpper(replacer.Replace(tag)), tag)
			if err := v.BindEnv(tag); err != nil {
				log.Warnf("Unable to bind to environment variable: %s. Error: %v", tag, err)
			}
		}
	}
}
