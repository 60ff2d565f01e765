// Package osdetect resolves descriptive host strings (OS name, processor
// name) from an ordered list of sources, falling back to a placeholder
package osdetect

import (
	"errors"
	"fmt"
	"strings"

	"github.com/edgecli/hostdiag/internal/log"
)

// DefaultPlaceholder is reported when no source produced a value
const DefaultPlaceholder = "Information unavailable"

// ErrUnavailable is returned by a source that ran but found nothing
var ErrUnavailable = errors.New("source unavailable")

// Status tells how a Result was obtained
type Status int

const (
	NotTried Status = iota
	Genuine
	Unavailable
)

func (s Status) String() string {
	switch s {
	case NotTried:
		return "not-tried"
	case Genuine:
		return "genuine"
	case Unavailable:
		return "unavailable"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Result is the outcome of one source or of a whole resolver
type Result struct {
	Value  string
	Status Status
	// Source names the source that produced a genuine value
	Source string
}

// Ok tags a genuine value produced by the named source
func Ok(source, v string) Result { return Result{Value: v, Status: Genuine, Source: source} }

// Source is one way of obtaining a descriptive string
type Source struct {
	Name  string
	Fetch func() (string, error)
}

// Resolver tries its sources in order and stops at the first genuine value
type Resolver struct {
	name        string
	placeholder string
	sources     []Source
}

// NewResolver builds a resolver. An empty placeholder selects DefaultPlaceholder.
func NewResolver(name, placeholder string, sources ...Source) *Resolver {
	if placeholder == "" {
		placeholder = DefaultPlaceholder
	}
	return &Resolver{name: name, placeholder: placeholder, sources: sources}
}

// Placeholder returns the string reported when all sources fail
func (r *Resolver) Placeholder() string { return r.placeholder }

// Resolve folds over the sources. It never fails: an exhausted chain
// yields the placeholder with Status Unavailable.
func (r *Resolver) Resolve() Result {
	for _, src := range r.sources {
		res := r.try(src)
		if res.Status == Genuine {
			return res
		}
	}
	return r.unavailable()
}

// String resolves and returns only the value
func (r *Resolver) String() string { return r.Resolve().Value }

// try runs a single source; errors, panics, empty strings and the
// placeholder itself all count as Unavailable
func (r *Resolver) try(src Source) (res Result) {
	defer func() {
		if p := recover(); p != nil {
			log.Debug("source panicked", "resolver", r.name, "source", src.Name, "panic", p)
			res = r.unavailable()
		}
	}()

	v, err := src.Fetch()
	if err != nil {
		log.Debug("source failed", "resolver", r.name, "source", src.Name, "error", err)
		return r.unavailable()
	}
	v = strings.TrimSpace(v)
	if v == "" || v == r.placeholder {
		log.Debug("source returned no value", "resolver", r.name, "source", src.Name)
		return r.unavailable()
	}
	return Ok(src.Name, v)
}

func (r *Resolver) unavailable() Result {
	return Result{Value: r.placeholder, Status: Unavailable}
}
