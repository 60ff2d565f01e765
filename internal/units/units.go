// Package units converts byte counts into KB/MB/GB views and percentages
package units

import "errors"

// ErrUndefined is returned when a conversion has no defined result,
// e.g. a percentage of a zero total
var ErrUndefined = errors.New("computation undefined")

// Bytes is an authoritative byte count. Derived units are always computed
// from it on demand.
type Bytes uint64

const kilo = 1024.0

// ToKB converts bytes to kilobytes (1024 based)
func ToKB(b Bytes) float64 { return float64(b) / kilo }

// ToMB converts bytes to megabytes, chained through ToKB
func ToMB(b Bytes) float64 { return ToKB(b) / kilo }

// ToGB converts bytes to gigabytes, chained through ToMB
func ToGB(b Bytes) float64 { return ToMB(b) / kilo }

// KB is the method form of ToKB
func (b Bytes) KB() float64 { return ToKB(b) }

// MB is the method form of ToMB
func (b Bytes) MB() float64 { return ToMB(b) }

// GB is the method form of ToGB
func (b Bytes) GB() float64 { return ToGB(b) }

// UsedBytes returns total - free. A free value above total means the two
// numbers do not describe the same reading.
func UsedBytes(total, free Bytes) (Bytes, error) {
	if free > total {
		return 0, ErrUndefined
	}
	return total - free, nil
}

// PercentFree returns free/total*100
func PercentFree(free, total Bytes) (float64, error) {
	if total == 0 {
		return 0, ErrUndefined
	}
	return float64(free) / float64(total) * 100, nil
}

// PercentUsed returns 100 - PercentFree
func PercentUsed(free, total Bytes) (float64, error) {
	pct, err := PercentFree(free, total)
	if err != nil {
		return 0, err
	}
	return 100 - pct, nil
}
