// Package props provides read access to the system property store.
// Properties are served by init once it is up; earlier in boot every read
// simply misses and callers fall through to their next source.
package props

import (
	"context"
	"os/exec"
	"strings"
	"time"
)

// getpropTimeout bounds a single property read; getprop is a local socket
// round-trip and should never take anywhere near this long.
const getpropTimeout = 2 * time.Second

// Getter reads a property by name, returning def when the property is
// unset or the store is unavailable.
type Getter func(name, def string) string

// Get reads a system property through the getprop utility. On hosts
// without a property store every lookup returns def.
func Get(name, def string) string {
	ctx, cancel := context.WithTimeout(context.Background(), getpropTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, "getprop", name).Output()
	if err != nil {
		return def
	}
	value := strings.TrimSpace(string(out))
	if value == "" {
		return def
	}
	return value
}
