package diag

// Std is a set of language standards. A feature tagged with a standard is
// accepted if that standard is in the set.
type Std uint8

const (
	StdF95 Std = 1 << iota
	StdF2003
	StdF2008
	StdGNU    // GNU extensions.
	StdLegacy // Obsolete features accepted for compatibility.
)

// Named conformance levels. The zero Std behaves as StdDefault.
const (
	StdDefault  = StdF95 | StdF2003 | StdF2008 | StdGNU | StdLegacy
	Fortran95   = StdF95
	Fortran2003 = StdF95 | StdF2003
	Fortran2008 = StdF95 | StdF2003 | StdF2008
)

// Allows reports whether a feature of standard feature is accepted.
func (s Std) Allows(feature Std) bool {
	if s == 0 {
		s = StdDefault
	}
	return s&feature != 0
}

func (s Std) String() string {
	switch s {
	case 0, StdDefault:
		return "gnu"
	case Fortran95:
		return "f95"
	case Fortran2003:
		return "f2003"
	case Fortran2008:
		return "f2008"
	case StdF2003:
		return "Fortran 2003"
	case StdF2008:
		return "Fortran 2008"
	case StdGNU:
		return "GNU Extension"
	case StdLegacy:
		return "Legacy Extension"
	}
	return "mixed"
}
