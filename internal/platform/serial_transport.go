package platform

import (
	"fmt"
	"io"

	"github.com/pkg/term"
)

// SerialTransport carries the §6 command channel over a real serial
// line. Grounded on the teacher's serial_port_open/write/get1/close
// quartet in serial_port.go, rewritten as a single io.ReadWriteCloser
// rather than four free functions passed a raw handle.
type SerialTransport struct {
	port *term.Term
}

// OpenSerialTransport opens device (e.g. "/dev/ttyUSB0") at baud and
// puts it into raw mode, the same as the teacher's serial_port_open.
func OpenSerialTransport(device string, baud int) (*SerialTransport, error) {
	port, err := term.Open(device, term.RawMode)
	if err != nil {
		return nil, fmt.Errorf("platform: open serial port %s: %w", device, err)
	}

	switch baud {
	case 0: // leave alone
	case 1200, 2400, 4800, 9600, 19200, 38400, 57600, 115200:
		if err := port.SetSpeed(baud); err != nil {
			port.Close()
			return nil, fmt.Errorf("platform: set speed %d on %s: %w", baud, device, err)
		}
	default:
		port.Close()
		return nil, fmt.Errorf("platform: unsupported baud rate %d", baud)
	}

	return &SerialTransport{port: port}, nil
}

// Read implements io.Reader.
func (s *SerialTransport) Read(p []byte) (int, error) { return s.port.Read(p) }

// Write implements io.Writer.
func (s *SerialTransport) Write(p []byte) (int, error) {
	n, err := s.port.Write(p)
	if err != nil {
		return n, fmt.Errorf("platform: serial write: %w", err)
	}
	if n != len(p) {
		return n, fmt.Errorf("platform: short serial write: wrote %d of %d bytes", n, len(p))
	}
	return n, nil
}

// Close implements io.Closer.
func (s *SerialTransport) Close() error { return s.port.Close() }

var _ io.ReadWriteCloser = (*SerialTransport)(nil)
