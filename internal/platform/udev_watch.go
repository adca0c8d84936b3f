//go:build linux

package platform

import (
	"context"
	"fmt"

	"github.com/jochenvg/go-udev"
)

// DeviceWatcher watches udev for sound-card hotplug events, so the
// host can tell an operator an audio interface went away mid-run
// rather than let the tick routine silently write into a closed
// stream. Grounded on the teacher's deviceid.go device-identification
// concerns, extended from static identification to live hotplug
// watching via the pure-Go go-udev netlink monitor (linux-only, hence
// the build tag: the teacher's own GPIO/device code is similarly
// fenced to Linux elsewhere in its build).
type DeviceWatcher struct {
	monitor *udev.Monitor
}

// WatchSoundCards opens a udev netlink monitor filtered to the
// "sound" subsystem.
func WatchSoundCards() (*DeviceWatcher, error) {
	u := udev.Udev{}
	mon := u.NewMonitorFromNetlink("udev")
	if mon == nil {
		return nil, fmt.Errorf("platform: could not open udev netlink monitor")
	}
	if err := mon.FilterAddMatchSubsystem("sound"); err != nil {
		return nil, fmt.Errorf("platform: filter udev monitor: %w", err)
	}
	return &DeviceWatcher{monitor: mon}, nil
}

// DeviceEvent is one hotplug transition on a watched subsystem.
type DeviceEvent struct {
	Action  string // "add", "remove", "change", ...
	SysPath string
}

// Watch streams device events until ctx is done.
func (w *DeviceWatcher) Watch(ctx context.Context) (<-chan DeviceEvent, error) {
	devCh, err := w.monitor.DeviceChan(ctx)
	if err != nil {
		return nil, fmt.Errorf("platform: start udev device channel: %w", err)
	}

	out := make(chan DeviceEvent)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case dev, ok := <-devCh:
				if !ok {
					return
				}
				out <- DeviceEvent{Action: dev.Action(), SysPath: dev.Syspath()}
			}
		}
	}()
	return out, nil
}
