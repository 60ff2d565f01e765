// Package elevate reports whether the process runs with administrative privileges
package elevate

import (
	"github.com/edgecli/hostdiag/internal/log"
)

// Identity is the security identity of the current process. An Identity
// holds an OS handle that must be closed.
type Identity interface {
	IsAdmin() (bool, error)
	Close() error
}

// IdentityProvider opens the identity of the current process
type IdentityProvider func() (Identity, error)

// Checker answers the elevation question from an IdentityProvider
type Checker struct {
	current IdentityProvider
}

// NewChecker returns a checker using the given provider
func NewChecker(p IdentityProvider) *Checker {
	return &Checker{current: p}
}

// IsElevated returns true only when the identity proves administrative
// rights. Every failure, including a panic inside the provider, reads as
// not elevated. An obtained identity is always closed.
func (c *Checker) IsElevated() (elevated bool) {
	var id Identity
	defer func() {
		if p := recover(); p != nil {
			log.Debug("elevation check panicked", "panic", p)
			elevated = false
		}
		if id != nil {
			if err := id.Close(); err != nil {
				log.Debug("closing process identity", "error", err)
			}
		}
	}()

	var err error
	id, err = c.current()
	if err != nil {
		log.Debug("opening process identity", "error", err)
		return false
	}
	if id == nil {
		return false
	}

	admin, err := id.IsAdmin()
	if err != nil {
		log.Debug("checking administrator role", "error", err)
		return false
	}
	return admin
}
