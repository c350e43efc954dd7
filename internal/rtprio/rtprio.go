// Package rtprio raises the calling OS thread to a real-time
// scheduling class when permitted, per spec §5: "Worker threads
// should be raised to a real-time scheduling class if permitted by
// the OS. Failure to acquire priority is a warning, not fatal."
package rtprio

import (
	"runtime"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/dot11a/ofdmphy/pkg/phyerr"
)

// DefaultPriority is a SCHED_FIFO priority in [1,99] (Linux convention).
const DefaultPriority = 50

// Raise locks the calling goroutine to its OS thread and attempts to
// switch it to SCHED_FIFO at priority p. On any failure it returns a
// ThreadPriorityFailed error; callers must treat that as a warning,
// never a fatal condition.
func Raise(p int) error {
	runtime.LockOSThread()
	param := struct{ priority int32 }{int32(p)}
	_, _, errno := unix.Syscall(unix.SYS_SCHED_SETSCHEDULER, 0, unix.SCHED_FIFO, uintptr(unsafe.Pointer(&param)))
	if errno != 0 {
		return phyerr.New(phyerr.ThreadPriorityFailed, errno.Error())
	}
	return nil
}
