//go:build windows

package osdetect

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// osVersionString mirrors "Microsoft Windows NT <major>.<minor>.<build> <service pack>"
func osVersionString() (string, error) {
	v := windows.RtlGetVersion()
	if v == nil {
		return "", ErrUnavailable
	}
	s := fmt.Sprintf("Microsoft Windows NT %d.%d.%d", v.MajorVersion, v.MinorVersion, v.BuildNumber)
	if sp := windows.UTF16ToString(v.CsdVersion[:]); sp != "" {
		s += " " + sp
	}
	return s, nil
}
