package platform

import (
	"fmt"
	"os"

	"github.com/creack/pty"
)

// PTYTransport is a loopback command-channel transport backed by a
// pseudo-terminal pair, the same pty.Open the teacher's kiss.go uses
// for its KISS-over-pty endpoint. cmd/adapterprobe-engine serves the
// §6 command channel on the master side without any real serial
// hardware; a front-end (or a test) drives the slave side.
type PTYTransport struct {
	Master *os.File
	Slave  *os.File
}

// OpenPTYTransport allocates a new pty pair.
func OpenPTYTransport() (*PTYTransport, error) {
	master, slave, err := pty.Open()
	if err != nil {
		return nil, fmt.Errorf("platform: open pty: %w", err)
	}
	return &PTYTransport{Master: master, Slave: slave}, nil
}

// Close closes both ends of the pty pair.
func (p *PTYTransport) Close() error {
	var firstErr error
	if err := p.Master.Close(); err != nil {
		firstErr = err
	}
	if err := p.Slave.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
