// Package bridge converts between generic values and the fixed-layout bytes
// of each dtype.
package bridge

import (
	"fmt"
	"log/slog"

	"golang.org/x/xerrors"

	"github.com/ryanmt/nmatrix/backend"
	_ "github.com/ryanmt/nmatrix/backend/cpu"
	"github.com/ryanmt/nmatrix/core"
	"github.com/ryanmt/nmatrix/value"
)

// Boxer turns a numeric value into a host object handle, so that numeric
// values can be stored in object-dtype elements.
type Boxer interface {
	Box(v value.Value) (value.Handle, error)
}

// BoxerFunc adapts a function to the Boxer interface.
type BoxerFunc func(v value.Value) (value.Handle, error)

func (f BoxerFunc) Box(v value.Value) (value.Handle, error) { return f(v) }

// Converter holds conversion policy. A Converter is immutable after New and
// safe for concurrent use.
type Converter struct {
	strict  bool
	boxer   Boxer
	backend backend.Backend
	logger  *slog.Logger
}

// Option configures a Converter.
type Option func(*Converter)

// WithStrictNarrowing makes integer and float narrowing fail instead of
// wrapping or truncating.
func WithStrictNarrowing() Option {
	return func(c *Converter) { c.strict = true }
}

// WithBoxer sets the boxer used when numeric values are written to the
// object dtype.
func WithBoxer(b Boxer) Option {
	return func(c *Converter) { c.boxer = b }
}

// WithBackend sets where AllocateAndConvert allocates. The default is the
// CPU backend.
func WithBackend(b backend.Backend) Option {
	return func(c *Converter) { c.backend = b }
}

// WithLogger sets the logger for conversion diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.logger = l
		}
	}
}

// New returns a Converter with the given options applied.
func New(opts ...Option) *Converter {
	c := &Converter{logger: slog.New(slog.DiscardHandler)}
	if be, err := backend.GetForDevice(backend.CPU0); err == nil {
		c.backend = be
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultConverter = New()

// Default returns the shared converter with default policy.
func Default() *Converter {
	return defaultConverter
}

// Strict reports whether narrowing conversions are checked.
func (c *Converter) Strict() bool {
	return c.strict
}

// ToConcrete writes v converted to dtype d into dst, which must hold at
// least d.Size() bytes.
func (c *Converter) ToConcrete(v value.Value, d core.DType, dst []byte) error {
	size, err := core.SizeOf(d)
	if err != nil {
		return err
	}
	if len(dst) < int(size) {
		return core.NewConversionError(value.Describe(v), d,
			fmt.Sprintf("destination holds %d bytes, need %d", len(dst), size))
	}
	if err := codecs[d].encode(c, v, dst); err != nil {
		return xerrors.Errorf("writing %v: %w", d, err)
	}
	return nil
}

// FromConcrete reads src as dtype d. For the object dtype the stored handle
// is passed through as a value.Object. Rational elements with a zero
// denominator are a TypeConversionError.
func (c *Converter) FromConcrete(src []byte, d core.DType) (value.Value, error) {
	size, err := core.SizeOf(d)
	if err != nil {
		return nil, err
	}
	if len(src) < int(size) {
		return nil, core.NewConversionError(d.String()+" bytes", d,
			fmt.Sprintf("source holds %d bytes, need %d", len(src), size))
	}
	v, err := codecs[d].decode(src)
	if err != nil {
		return nil, xerrors.Errorf("reading %v: %w", d, err)
	}
	return v, nil
}

// AllocateAndConvert allocates exactly d.Size() bytes and writes v into
// them. The caller owns the returned storage and must Free it.
func (c *Converter) AllocateAndConvert(v value.Value, d core.DType) (backend.Storage, error) {
	if !d.Valid() {
		return nil, core.InvalidDTypeError(d)
	}
	if c.backend == nil {
		return nil, xerrors.Errorf("allocating %v: %w", d, backend.ErrUnsupported)
	}
	s, err := backend.AllocElems(c.backend, d, 1)
	if err != nil {
		return nil, xerrors.Errorf("allocating %v: %w", d, err)
	}
	if err := c.ToConcrete(v, d, s.Bytes()); err != nil {
		c.backend.Free(s)
		return nil, err
	}
	return s, nil
}

// ToConcrete converts with the default converter.
func ToConcrete(v value.Value, d core.DType, dst []byte) error {
	return defaultConverter.ToConcrete(v, d, dst)
}

// FromConcrete converts with the default converter.
func FromConcrete(src []byte, d core.DType) (value.Value, error) {
	return defaultConverter.FromConcrete(src, d)
}

// AllocateAndConvert converts with the default converter.
func AllocateAndConvert(v value.Value, d core.DType) (backend.Storage, error) {
	return defaultConverter.AllocateAndConvert(v, d)
}
