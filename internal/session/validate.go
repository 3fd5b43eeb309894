package session

import (
	"errors"
	"fmt"
	"regexp"
)

// maxSocketPath is the smallest sun_path limit among supported platforms
// (104 on macOS, 108 on Linux), minus the terminating NUL.
const maxSocketPath = 103

// ErrInvalidName is wrapped by every ValidateName failure.
var ErrInvalidName = errors.New("invalid session name")

var nameRegexp = regexp.MustCompile(`^[a-z0-9_-]{1,64}$`)

// ValidateName checks that name conforms to session naming rules and that
// its daemon socket path fits in a Unix socket address.
func ValidateName(name string) error {
	if !nameRegexp.MatchString(name) {
		return fmt.Errorf("%w %q: must match ^[a-z0-9_-]{1,64}$", ErrInvalidName, name)
	}
	if p := SocketPath(name); len(p) > maxSocketPath {
		return fmt.Errorf("%w %q: socket path %s is longer than %d bytes, use a shorter name or set %s",
			ErrInvalidName, name, p, maxSocketPath, HomeEnv)
	}
	return nil
}
