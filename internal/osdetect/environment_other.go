//go:build !unix && !windows

package osdetect

import "runtime"

func osVersionString() (string, error) {
	return runtime.GOOS, nil
}
