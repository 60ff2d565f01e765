package units

// Reading pairs a single free sample with the total it belongs to.
// Every view of a Reading is derived from that one sample so that
// KB, MB, GB and percent values stay consistent with each other.
type Reading struct {
	Total Bytes
	Free  Bytes
}

// NewReading validates that free fits into total
func NewReading(total, free Bytes) (Reading, error) {
	if free > total {
		return Reading{}, ErrUndefined
	}
	return Reading{Total: total, Free: free}, nil
}

// Used returns Total - Free
func (r Reading) Used() Bytes {
	used, err := UsedBytes(r.Total, r.Free)
	if err != nil {
		return 0
	}
	return used
}

// PercentFree returns the free share of the total
func (r Reading) PercentFree() (float64, error) {
	return PercentFree(r.Free, r.Total)
}

// PercentUsed returns the used share of the total
func (r Reading) PercentUsed() (float64, error) {
	return PercentUsed(r.Free, r.Total)
}
