package osdetect

import (
	"strings"

	"github.com/edgecli/hostdiag/internal/registry"
)

// HostProbe is the part of the host-info probe the resolvers read
type HostProbe interface {
	OSFullName() (string, error)
	ProcessorModel() (string, error)
}

const vendorPrefix = "Microsoft"

// RegistryOSName reads the product name from the registry, prefixes the
// vendor unless already present and appends the service pack if any
func RegistryOSName(reg registry.Reader) Source {
	return Source{
		Name: "registry",
		Fetch: func() (string, error) {
			product, err := reg.String(registry.CurrentVersionPath, "ProductName")
			if err != nil {
				return "", err
			}
			if product == "" {
				return "", ErrUnavailable
			}
			name := product
			if !strings.HasPrefix(product, vendorPrefix) {
				name = vendorPrefix + " " + product
			}
			// the service pack is optional: a failed read is not a failed source
			if csd, err := reg.String(registry.CurrentVersionPath, "CSDVersion"); err == nil && csd != "" {
				name += " " + csd
			}
			return name, nil
		},
	}
}

// RegistryProcessorName reads the first CPU's marketing name
func RegistryProcessorName(reg registry.Reader) Source {
	return Source{
		Name: "registry",
		Fetch: func() (string, error) {
			return reg.String(registry.ProcessorPath, "ProcessorNameString")
		},
	}
}

// ProbeOSName asks the host-info probe for the full OS name
func ProbeOSName(p HostProbe) Source {
	return Source{Name: "host-info", Fetch: p.OSFullName}
}

// ProbeProcessorName asks the host-info probe for the CPU model
func ProbeProcessorName(p HostProbe) Source {
	return Source{Name: "host-info", Fetch: p.ProcessorModel}
}

// EnvironmentOSVersion reports the OS version string of the running process
func EnvironmentOSVersion() Source {
	return Source{Name: "environment", Fetch: osVersionString}
}

// NewOSNameResolver builds the registry -> host-info -> environment chain
func NewOSNameResolver(placeholder string, reg registry.Reader, probe HostProbe) *Resolver {
	return NewResolver("os-name", placeholder,
		RegistryOSName(reg),
		ProbeOSName(probe),
		EnvironmentOSVersion(),
	)
}

// NewProcessorNameResolver builds the registry -> host-info chain
func NewProcessorNameResolver(placeholder string, reg registry.Reader, probe HostProbe) *Resolver {
	return NewResolver("processor-name", placeholder,
		RegistryProcessorName(reg),
		ProbeProcessorName(probe),
	)
}
