package link

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang/glog"
	"go.bug.st/serial"
)

// SerialConfig defines a serial connection.
type SerialConfig struct {
	Device string
	Baud   int
	// ReadTimeout bounds each read of the background loop, so Close is
	// noticed even without traffic.
	ReadTimeout time.Duration
}

// Serial is a Stream over a serial port.
type Serial struct {
	*Stream
	port   serial.Port
	device string
}

func serialMode(baud int) *serial.Mode {
	return &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
}

// OpenSerial opens a serial device with 8N1 framing.
func OpenSerial(conf SerialConfig) (*Serial, error) {
	port, err := serial.Open(conf.Device, serialMode(conf.Baud))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", conf.Device, err)
	}
	timeout := conf.ReadTimeout
	if timeout <= 0 {
		timeout = 100 * time.Millisecond
	}
	if err = port.SetReadTimeout(timeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("set read timeout of %s: %w", conf.Device, err)
	}
	if err = port.ResetInputBuffer(); err != nil {
		port.Close()
		return nil, fmt.Errorf("reset %s: %w", conf.Device, err)
	}
	glog.V(2).Infof("link: opened %s at %d bps", conf.Device, conf.Baud)
	return &Serial{Stream: NewStream(port), port: port, device: conf.Device}, nil
}

// Device returns the device path.
func (s *Serial) Device() string {
	return s.device
}

// SetBaudrate changes the bit rate of the port.
func (s *Serial) SetBaudrate(baud int) error {
	if err := s.port.SetMode(serialMode(baud)); err != nil {
		return fmt.Errorf("set baudrate of %s: %w", s.device, err)
	}
	glog.V(2).Infof("link: %s switched to %d bps", s.device, baud)
	return nil
}

// Close closes the port.
func (s *Serial) Close() error {
	glog.V(2).Infof("link: close %s", s.device)
	return s.Stream.Close()
}

// Ports lists the serial ports of the system.
func Ports() ([]string, error) {
	return serial.GetPortsList()
}

// IsDisconnected tells whether err means the device is gone.
func IsDisconnected(err error) bool {
	var code serial.PortErrorCode
	var ptrErr *serial.PortError
	var portErr serial.PortError
	switch {
	case errors.As(err, &ptrErr):
		code = ptrErr.Code()
	case errors.As(err, &portErr):
		code = portErr.Code()
	default:
		return false
	}
	switch code {
	case serial.PortNotFound, serial.PortClosed, serial.InvalidSerialPort:
		return true
	}
	return false
}
