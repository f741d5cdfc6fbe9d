// Package bootconfig parses the kernel's line-oriented bootconfig blob,
// normally read from /proc/bootconfig. Each line is `key = value`; the
// kernel renders list values with per-element quoting
// (`key = "v1", "v2", "v3"`), which this package folds back into the
// build-time `key=v1,v2,v3` form.
package bootconfig

import (
	"os"
	"strings"
)

// DefaultPath is the kernel-exported bootconfig pseudo-file.
const DefaultPath = "/proc/bootconfig"

// VisitFunc receives one key/value pair per bootconfig line.
type VisitFunc func(key, value string)

// Import splits blob on newlines and calls visit once per line carrying a
// non-empty key, in source order. Keys and values are trimmed of
// surrounding whitespace. A line without `=` yields an empty value, as
// does `key =`. Values are unquoted:
//   - androidboot.boot_device and androidboot.boot_devices keep their
//     separators verbatim and only have quote characters removed; their
//     list elements may legitimately contain commas.
//   - every other key has one surrounding quote pair removed and the
//     kernel's `", "` element separator collapsed to a single comma.
func Import(blob string, visit VisitFunc) {
	for _, line := range strings.Split(blob, "\n") {
		rawKey, rest, hasValue := strings.Cut(line, "=")
		key := strings.TrimSpace(rawKey)
		if key == "" {
			continue
		}
		var value string
		if hasValue {
			value = strings.TrimSpace(rest)
			if key == "androidboot.boot_device" || key == "androidboot.boot_devices" {
				value = strings.ReplaceAll(value, `"`, "")
			} else {
				value = strings.TrimPrefix(value, `"`)
				value = strings.TrimSuffix(value, `"`)
				value = strings.ReplaceAll(value, `", "`, ",")
			}
		}
		visit(key, value)
	}
}

// Get looks key up in blob, applying the same value normalization as
// Import, and stops at the first match.
func Get(blob, key string) (string, bool) {
	var value string
	found := false
	Import(blob, func(k, v string) {
		if !found && k == key {
			value = v
			found = true
		}
	})
	return value, found
}

// ImportFile reads the bootconfig blob at path and visits every pair.
// A read failure is treated as an empty blob.
func ImportFile(path string, visit VisitFunc) {
	blob, _ := os.ReadFile(path)
	Import(string(blob), visit)
}

// GetFromFile reads the bootconfig blob at path and looks key up in it.
func GetFromFile(path, key string) (string, bool) {
	blob, _ := os.ReadFile(path)
	return Get(string(blob), key)
}
