//go:build !windows

package registry

type unsupported struct{}

// Default returns a reader that reports ErrUnsupported
func Default() Reader { return unsupported{} }

// DefaultTree returns a tree that reports ErrUnsupported
func DefaultTree() Tree { return unsupported{} }

func (unsupported) String(string, string) (string, error) { return "", ErrUnsupported }
func (unsupported) Values(string) ([]Value, error)        { return nil, ErrUnsupported }
func (unsupported) SubKeys(string) ([]string, error)      { return nil, ErrUnsupported }
