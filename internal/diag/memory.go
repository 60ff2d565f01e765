package diag

import (
	"math"

	"github.com/edgecli/hostdiag/internal/units"
)

// RAMReading takes one free-memory sample and pairs it with the physical
// total. All derived RAM views come from a single reading.
func (d *Diagnostics) RAMReading() (units.Reading, error) {
	total, err := d.probe.TotalPhysicalBytes()
	if err != nil {
		return units.Reading{}, err
	}
	free, err := d.RAMFreeBytes()
	if err != nil {
		return units.Reading{}, err
	}
	return units.NewReading(total, free)
}

// RAMFreeBytes samples the available physical memory
func (d *Diagnostics) RAMFreeBytes() (units.Bytes, error) {
	v, err := d.freeRAM.Sample()
	if err != nil {
		return 0, err
	}
	// float64(math.MaxUint64) rounds up to 2^64, which Bytes cannot hold
	if math.IsNaN(v) || v < 0 || v >= math.MaxUint64 {
		return 0, units.ErrUndefined
	}
	return units.Bytes(v), nil
}

// RAMTotalBytes returns the physical memory visible to the OS
func (d *Diagnostics) RAMTotalBytes() (units.Bytes, error) {
	return d.probe.TotalPhysicalBytes()
}

// RAMUsedBytes is total minus one free sample
func (d *Diagnostics) RAMUsedBytes() (units.Bytes, error) {
	r, err := d.RAMReading()
	if err != nil {
		return 0, err
	}
	return r.Used(), nil
}

// RAMFreeKB returns available physical memory in kilobytes
func (d *Diagnostics) RAMFreeKB() (float64, error) { return d.ramFree(units.ToKB) }

// RAMFreeMB returns available physical memory in megabytes
func (d *Diagnostics) RAMFreeMB() (float64, error) { return d.ramFree(units.ToMB) }

// RAMFreeGB returns available physical memory in gigabytes
func (d *Diagnostics) RAMFreeGB() (float64, error) { return d.ramFree(units.ToGB) }

// RAMUsedKB returns used physical memory in kilobytes
func (d *Diagnostics) RAMUsedKB() (float64, error) { return d.ramView(pickUsed, units.ToKB) }

// RAMUsedMB returns used physical memory in megabytes
func (d *Diagnostics) RAMUsedMB() (float64, error) { return d.ramView(pickUsed, units.ToMB) }

// RAMUsedGB returns used physical memory in gigabytes
func (d *Diagnostics) RAMUsedGB() (float64, error) { return d.ramView(pickUsed, units.ToGB) }

// RAMTotalKB returns total physical memory in kilobytes
func (d *Diagnostics) RAMTotalKB() (float64, error) { return d.ramTotal(units.ToKB) }

// RAMTotalMB returns total physical memory in megabytes
func (d *Diagnostics) RAMTotalMB() (float64, error) { return d.ramTotal(units.ToMB) }

// RAMTotalGB returns total physical memory in gigabytes
func (d *Diagnostics) RAMTotalGB() (float64, error) { return d.ramTotal(units.ToGB) }

// RAMPercentFree returns free/total*100 for one reading
func (d *Diagnostics) RAMPercentFree() (float64, error) {
	r, err := d.RAMReading()
	if err != nil {
		return 0, err
	}
	return r.PercentFree()
}

// RAMPercentUsed returns 100 - RAMPercentFree for one reading
func (d *Diagnostics) RAMPercentUsed() (float64, error) {
	r, err := d.RAMReading()
	if err != nil {
		return 0, err
	}
	return r.PercentUsed()
}

// VirtualReading pairs available and total virtual memory
func (d *Diagnostics) VirtualReading() (units.Reading, error) {
	total, err := d.probe.TotalVirtualBytes()
	if err != nil {
		return units.Reading{}, err
	}
	free, err := d.probe.AvailableVirtualBytes()
	if err != nil {
		return units.Reading{}, err
	}
	return units.NewReading(total, free)
}

// VirtualFreeBytes returns the virtual memory still available for commit
func (d *Diagnostics) VirtualFreeBytes() (units.Bytes, error) {
	return d.probe.AvailableVirtualBytes()
}

// VirtualTotalBytes returns physical memory plus swap
func (d *Diagnostics) VirtualTotalBytes() (units.Bytes, error) {
	return d.probe.TotalVirtualBytes()
}

// VirtualUsedBytes is total minus available virtual memory
func (d *Diagnostics) VirtualUsedBytes() (units.Bytes, error) {
	r, err := d.VirtualReading()
	if err != nil {
		return 0, err
	}
	return r.Used(), nil
}

// VirtualFreeKB returns available virtual memory in kilobytes
func (d *Diagnostics) VirtualFreeKB() (float64, error) { return d.virtualView(pickFree, units.ToKB) }

// VirtualFreeMB returns available virtual memory in megabytes
func (d *Diagnostics) VirtualFreeMB() (float64, error) { return d.virtualView(pickFree, units.ToMB) }

// VirtualFreeGB returns available virtual memory in gigabytes
func (d *Diagnostics) VirtualFreeGB() (float64, error) { return d.virtualView(pickFree, units.ToGB) }

// VirtualUsedKB returns used virtual memory in kilobytes
func (d *Diagnostics) VirtualUsedKB() (float64, error) { return d.virtualView(pickUsed, units.ToKB) }

// VirtualUsedMB returns used virtual memory in megabytes
func (d *Diagnostics) VirtualUsedMB() (float64, error) { return d.virtualView(pickUsed, units.ToMB) }

// VirtualUsedGB returns used virtual memory in gigabytes
func (d *Diagnostics) VirtualUsedGB() (float64, error) { return d.virtualView(pickUsed, units.ToGB) }

// VirtualTotalKB returns total virtual memory in kilobytes
func (d *Diagnostics) VirtualTotalKB() (float64, error) { return d.virtualView(pickTotal, units.ToKB) }

// VirtualTotalMB returns total virtual memory in megabytes
func (d *Diagnostics) VirtualTotalMB() (float64, error) { return d.virtualView(pickTotal, units.ToMB) }

// VirtualTotalGB returns total virtual memory in gigabytes
func (d *Diagnostics) VirtualTotalGB() (float64, error) { return d.virtualView(pickTotal, units.ToGB) }

// VirtualPercentFree returns available/total*100 for one reading
func (d *Diagnostics) VirtualPercentFree() (float64, error) {
	r, err := d.VirtualReading()
	if err != nil {
		return 0, err
	}
	return r.PercentFree()
}

// VirtualPercentUsed returns 100 - VirtualPercentFree for one reading
func (d *Diagnostics) VirtualPercentUsed() (float64, error) {
	r, err := d.VirtualReading()
	if err != nil {
		return 0, err
	}
	return r.PercentUsed()
}

func (d *Diagnostics) ramFree(conv func(units.Bytes) float64) (float64, error) {
	b, err := d.RAMFreeBytes()
	if err != nil {
		return 0, err
	}
	return conv(b), nil
}

func (d *Diagnostics) ramTotal(conv func(units.Bytes) float64) (float64, error) {
	b, err := d.RAMTotalBytes()
	if err != nil {
		return 0, err
	}
	return conv(b), nil
}

func (d *Diagnostics) ramView(pick func(units.Reading) units.Bytes, conv func(units.Bytes) float64) (float64, error) {
	r, err := d.RAMReading()
	return bytesView(r, err, pick, conv)
}

func (d *Diagnostics) virtualView(pick func(units.Reading) units.Bytes, conv func(units.Bytes) float64) (float64, error) {
	r, err := d.VirtualReading()
	return bytesView(r, err, pick, conv)
}
