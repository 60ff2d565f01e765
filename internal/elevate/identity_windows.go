//go:build windows

package elevate

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/windows"
)

// tokenIdentity wraps the process access token
type tokenIdentity struct {
	token windows.Token
}

// CurrentIdentity opens the access token of the current process
func CurrentIdentity() (Identity, error) {
	var token windows.Token
	if err := windows.OpenProcessToken(windows.CurrentProcess(), windows.TOKEN_QUERY, &token); err != nil {
		return nil, errors.Wrap(err, "open process token")
	}
	return &tokenIdentity{token: token}, nil
}

// IsAdmin reports whether the token is elevated: a member of the
// administrators group with the role actually enabled
func (t *tokenIdentity) IsAdmin() (bool, error) {
	return t.token.IsElevated(), nil
}

func (t *tokenIdentity) Close() error {
	return t.token.Close()
}
