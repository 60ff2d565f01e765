// Package registry reads values from the machine-wide system registry.
// Only Windows has one; elsewhere every call reports ErrUnsupported.
package registry

import (
	"errors"
	"strconv"
	"strings"
)

var (
	ErrNotFound         = errors.New("registry key or value not found")
	ErrPermissionDenied = errors.New("registry access denied")
	ErrUnsupported      = errors.New("registry not supported on this platform")
)

// Well-known HKLM locations
const (
	CurrentVersionPath = `SOFTWARE\Microsoft\Windows NT\CurrentVersion`
	ProcessorPath      = `Hardware\Description\System\CentralProcessor\0`
)

// Reader reads a string value under HKEY_LOCAL_MACHINE
type Reader interface {
	String(path, name string) (string, error)
}

// Value is one named registry value rendered as text
type Value struct {
	Name string
	Data string
}

// Tree enumerates a key's values and sub-keys
type Tree interface {
	Values(path string) ([]Value, error)
	SubKeys(path string) ([]string, error)
}

// Join builds a registry path from its parts
func Join(parts ...string) string {
	return strings.Join(parts, `\`)
}

// FormatBinary renders binary data as the concatenated decimal values of its bytes
func FormatBinary(b []byte) string {
	var sb strings.Builder
	for _, c := range b {
		sb.WriteString(strconv.Itoa(int(c)))
	}
	return sb.String()
}

// Dump renders every value below root as "name: data" lines, walking the
// tree depth first with an explicit stack. Keys that vanish or cannot be opened mid-walk are skipped;
// only a failure on root itself is returned.
func Dump(t Tree, root string) (string, error) {
	var (
		sb    strings.Builder
		stack = []string{root}
	)
	for len(stack) > 0 {
		path := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		values, err := t.Values(path)
		if err != nil {
			if path == root {
				return "", err
			}
			continue
		}
		for _, v := range values {
			sb.WriteString(v.Name)
			sb.WriteString(": ")
			sb.WriteString(v.Data)
			sb.WriteByte('\n')
		}

		subKeys, err := t.SubKeys(path)
		if err != nil {
			continue
		}
		// reversed so the first sub-key is visited first
		for i := len(subKeys) - 1; i >= 0; i-- {
			stack = append(stack, Join(path, subKeys[i]))
		}
	}
	return sb.String(), nil
}
