//go:build windows

package registry

import (
	"errors"
	"strconv"
	"strings"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

// hklm reads from HKEY_LOCAL_MACHINE
type hklm struct{}

// Default returns the HKLM reader
func Default() Reader { return hklm{} }

// DefaultTree returns the HKLM tree used by Dump
func DefaultTree() Tree { return hklm{} }

func (hklm) String(path, name string) (string, error) {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, path, registry.QUERY_VALUE)
	if err != nil {
		return "", classify(err)
	}
	defer k.Close()

	v, _, err := k.GetStringValue(name)
	if err != nil {
		return "", classify(err)
	}
	return v, nil
}

func (hklm) Values(path string) ([]Value, error) {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, path, registry.QUERY_VALUE)
	if err != nil {
		return nil, classify(err)
	}
	defer k.Close()

	names, err := k.ReadValueNames(0)
	if err != nil {
		return nil, classify(err)
	}
	values := make([]Value, 0, len(names))
	for _, name := range names {
		data, err := readValue(k, name)
		if err != nil {
			continue
		}
		values = append(values, Value{Name: name, Data: data})
	}
	return values, nil
}

func (hklm) SubKeys(path string) ([]string, error) {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, path, registry.ENUMERATE_SUB_KEYS)
	if err != nil {
		return nil, classify(err)
	}
	defer k.Close()

	names, err := k.ReadSubKeyNames(0)
	if err != nil {
		return nil, classify(err)
	}
	return names, nil
}

func readValue(k registry.Key, name string) (string, error) {
	_, valType, err := k.GetValue(name, nil)
	if err != nil {
		return "", err
	}
	switch valType {
	case registry.SZ, registry.EXPAND_SZ:
		s, _, err := k.GetStringValue(name)
		return s, err
	case registry.MULTI_SZ:
		ss, _, err := k.GetStringsValue(name)
		return strings.Join(ss, " "), err
	case registry.DWORD, registry.QWORD:
		n, _, err := k.GetIntegerValue(name)
		return strconv.FormatUint(n, 10), err
	default:
		b, _, err := k.GetBinaryValue(name)
		return FormatBinary(b), err
	}
}

func classify(err error) error {
	switch {
	case errors.Is(err, registry.ErrNotExist):
		return ErrNotFound
	case errors.Is(err, windows.ERROR_ACCESS_DENIED):
		return ErrPermissionDenied
	default:
		return err
	}
}
