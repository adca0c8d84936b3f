//go:build linux

package platform

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// EnableRealtimeScheduling requests SCHED_FIFO at the given priority
// for the calling thread and locks the process's memory so the tick
// routine never takes a page fault. The host real-time kernel
// scheduler that actually invokes the tick routine is out of scope
// (spec.md §1); this is the one piece of that story the process
// itself is responsible for before handing control to it. Grounded on
// the teacher's golang.org/x/sys/unix ioctl use in cm108.go, applied
// here to scheduling syscalls instead of HID ioctls.
func EnableRealtimeScheduling(priority int) error {
	if err := unix.Sched_setscheduler(0, unix.SCHED_FIFO, &unix.SchedParam{Priority: int32(priority)}); err != nil {
		return fmt.Errorf("platform: sched_setscheduler(SCHED_FIFO, %d): %w", priority, err)
	}
	if err := unix.Mlockall(unix.MCL_CURRENT | unix.MCL_FUTURE); err != nil {
		return fmt.Errorf("platform: mlockall: %w", err)
	}
	return nil
}
