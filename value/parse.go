package value

import (
	"strconv"
	"strings"

	"github.com/ryanmt/nmatrix/core"
)

// Parse reads a numeric literal: an integer ("42", "0x2a"), a float
// ("3.14", "1e-3"), a rational ("3/4") or a complex ("1+2i").
func Parse(s string) (Value, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, core.NewConversionError(`""`, core.NoDType, "empty literal")
	}
	if n, err := strconv.ParseInt(s, 0, 64); err == nil {
		return Int(n), nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Float(f), nil
	}
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, errN := strconv.ParseInt(strings.TrimSpace(num), 10, 64)
		d, errD := strconv.ParseInt(strings.TrimSpace(den), 10, 64)
		if errN != nil || errD != nil {
			return nil, core.NewConversionError(strconv.Quote(s), core.NoDType, "malformed rational literal")
		}
		return NewRational(n, d)
	}
	if strings.HasSuffix(s, "i") {
		c, err := strconv.ParseComplex(s, 128)
		if err != nil {
			return nil, &core.TypeConversionError{From: strconv.Quote(s), To: core.NoDType, Reason: "malformed complex literal", Err: err}
		}
		return Complex{Re: real(c), Im: imag(c)}, nil
	}
	return nil, core.NewConversionError(strconv.Quote(s), core.NoDType, "not a numeric literal")
}
