package utsuwa

// Mode selects how every cell in the process treats access to an empty
// cell. It is a single process-wide switch, not a per-cell setting.
type Mode int

const (
	// Checked panics with a diagnostic when an empty cell is accessed.
	// This is the default; the panic names the cell and its payload type
	// so use-before-init bugs surface at the first faulty access.
	Checked Mode = iota

	// Unchecked skips the emptiness check entirely. Accessing an empty
	// cell returns an invalid (nil) reference, and dereferencing it is
	// the caller's crash to own. This removes the per-access branch for
	// programs whose startup discipline is already trusted.
	Unchecked
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Checked:
		return "checked"
	case Unchecked:
		return "unchecked"
	default:
		return "unknown"
	}
}

// mode is the access mode shared by every cell. It starts at the
// compiled-in default, which builds can flip with the utsuwa_unchecked
// build tag.
var mode = defaultMode

// SetMode selects the access mode for every cell in the process.
// This function is not thread-safe and should be called during
// initialization, before any goroutine accesses a cell.
//
// Example:
//
//	func main() {
//	    if os.Getenv("APP_ENV") == "production" {
//	        utsuwa.SetMode(utsuwa.Unchecked)
//	    }
//	    // ... initialize cells, start serving
//	}
func SetMode(m Mode) {
	mode = m
}

// CurrentMode returns the access mode currently in effect.
func CurrentMode() Mode {
	return mode
}
