//go:build !windows

package elevate

import "os"

// uidIdentity treats effective uid 0 as administrator
type uidIdentity struct {
	euid int
}

// CurrentIdentity returns the effective uid of the process
func CurrentIdentity() (Identity, error) {
	return uidIdentity{euid: os.Geteuid()}, nil
}

func (u uidIdentity) IsAdmin() (bool, error) { return u.euid == 0, nil }
func (uidIdentity) Close() error             { return nil }
