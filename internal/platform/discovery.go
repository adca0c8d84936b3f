package platform

import (
	"context"
	"fmt"

	"github.com/brutella/dnssd"
)

// ServiceType is the mDNS/DNS-SD service type the back-end advertises,
// so a front-end controller can find the acquisition box on the lab
// network without a hardcoded address. Grounded on the teacher's
// dns_sd.go, which advertises "_kiss-tnc._tcp" the same way.
const ServiceType = "_adapterprobe._tcp"

// Announcer wraps a dnssd responder advertising the command channel.
type Announcer struct {
	responder dnssd.Responder
	cancel    context.CancelFunc
}

// Announce advertises name on port and starts responding to mDNS
// queries in the background. Call Stop to withdraw the announcement.
func Announce(name string, port int) (*Announcer, error) {
	cfg := dnssd.Config{ //nolint:exhaustruct
		Name: name,
		Type: ServiceType,
		Port: port,
	}

	svc, err := dnssd.NewService(cfg)
	if err != nil {
		return nil, fmt.Errorf("platform: create dnssd service: %w", err)
	}

	responder, err := dnssd.NewResponder()
	if err != nil {
		return nil, fmt.Errorf("platform: create dnssd responder: %w", err)
	}

	if _, err := responder.Add(svc); err != nil {
		return nil, fmt.Errorf("platform: add dnssd service: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	a := &Announcer{responder: responder, cancel: cancel}

	go func() {
		_ = responder.Respond(ctx)
	}()

	return a, nil
}

// Stop withdraws the announcement.
func (a *Announcer) Stop() {
	a.cancel()
}
