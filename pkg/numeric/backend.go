package numeric

import (
	"strings"

	"github.com/pkg/errors"
)

// Backend names a concrete numeric backend. The backend is chosen once, at
// configuration time; nothing falls back from one backend to another.
type Backend string

const (
	BackendF64    Backend = "f64"
	BackendBig32  Backend = "big32"
	BackendBig64  Backend = "big64"
	BackendBig113 Backend = "big113"

	DefaultBackend = BackendBig64
)

// Backends lists every supported backend, lowest precision first.
var Backends = []Backend{BackendF64, BackendBig32, BackendBig64, BackendBig113}

// ParseBackend resolves a backend name, case-insensitively.
func ParseBackend(name string) (Backend, error) {
	b := Backend(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Backends {
		if b == known {
			return b, nil
		}
	}
	return "", errors.Errorf("unknown numeric backend %q (want one of %v)", name, Backends)
}

// PrecisionBits reports the mantissa size of the backend.
func (b Backend) PrecisionBits() uint {
	switch b {
	case BackendF64:
		return 53
	case BackendBig32:
		return Prec32{}.Bits()
	case BackendBig64:
		return Prec64{}.Bits()
	case BackendBig113:
		return Prec113{}.Bits()
	}
	return 0
}

func (b Backend) String() string {
	return string(b)
}
