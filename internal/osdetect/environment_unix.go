//go:build unix

package osdetect

import (
	"runtime"
	"strings"

	"golang.org/x/sys/unix"
)

// osVersionString mirrors "<sysname> <release>", e.g. "Linux 6.8.0-45-generic"
func osVersionString() (string, error) {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return runtime.GOOS, nil
	}
	sysname := unix.ByteSliceToString(uts.Sysname[:])
	release := unix.ByteSliceToString(uts.Release[:])
	return strings.TrimSpace(sysname + " " + release), nil
}
