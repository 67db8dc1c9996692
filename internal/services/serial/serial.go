package serial

import (
	"fmt"
	"io"

	srl "github.com/jacobsa/go-serial/serial"
	"github.td.teradata.com/sandbox/vtscreen/internal/config"
	"github.td.teradata.com/sandbox/vtscreen/internal/log"
)

// openPort is replaced in tests.
var openPort = srl.Open

// Open connects to a terminal on a serial line. The port comes up raw, so
// there is no line discipline to save or restore.
func Open(cfg *config.Serial) (io.ReadWriteCloser, error) {
	opts, err := Options(cfg)
	if err != nil {
		return nil, err
	}
	port, err := openPort(opts)
	if err != nil {
		return nil, fmt.Errorf("opening serial port %s: %w", cfg.PortName, err)
	}
	log.Infof("Opened port %s at %d baud", cfg.PortName, cfg.BaudRate)
	return port, nil
}

// Options translates the serial configuration into port options.
func Options(cfg *config.Serial) (srl.OpenOptions, error) {
	if cfg.PortName == "" {
		return srl.OpenOptions{}, fmt.Errorf("no serial port configured")
	}
	if cfg.BaudRate <= 0 {
		return srl.OpenOptions{}, fmt.Errorf("invalid baud rate %d", cfg.BaudRate)
	}
	if cfg.DataBits < 5 || cfg.DataBits > 8 {
		return srl.OpenOptions{}, fmt.Errorf("invalid data bits %d", cfg.DataBits)
	}
	stopBits, err := toStopBits(cfg.StopBits)
	if err != nil {
		return srl.OpenOptions{}, err
	}
	parity, err := toParity(cfg.Parity)
	if err != nil {
		return srl.OpenOptions{}, err
	}
	minRead := cfg.MinimumReadSize
	if minRead < 1 {
		minRead = 1
	}
	return srl.OpenOptions{
		PortName:        cfg.PortName,
		BaudRate:        uint(cfg.BaudRate),
		DataBits:        uint(cfg.DataBits),
		StopBits:        stopBits,
		ParityMode:      parity,
		MinimumReadSize: uint(minRead),
	}, nil
}

func toStopBits(value int) (uint, error) {
	switch value {
	case 1, 2:
		return uint(value), nil
	default:
		return 0, fmt.Errorf("invalid stop bits %d", value)
	}
}

func toParity(value int) (srl.ParityMode, error) {
	switch value {
	case 0:
		return srl.PARITY_NONE, nil
	case 1:
		return srl.PARITY_ODD, nil
	case 2:
		return srl.PARITY_EVEN, nil
	default:
		return srl.PARITY_NONE, fmt.Errorf("invalid parity %d", value)
	}
}
