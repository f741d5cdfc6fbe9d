// Package cmdline splits the kernel command line into ordered key/value
// pairs. Values may be double-quoted to embed spaces; quote characters are
// stripped from the extracted token wherever they appear, so `a"b"c` and
// `abc` parse the same.
package cmdline

import "strings"

const quote = '"'

// Pair is a single entry from the kernel command line. Key is never empty;
// Value is "" for bare keys ("key" and "key=" are equivalent).
type Pair struct {
	Key   string
	Value string
}

// Parse splits cmdline into pairs in source order. Token boundaries are
// unquoted spaces; a double quote opens a span inside which spaces do not
// end the token. An unbalanced trailing quote is tolerated and keeps the
// remainder of the string inside the current token. Tokens that reduce to
// an empty key are dropped.
func Parse(cmdline string) []Pair {
	var result []Pair
	base := 0
	for {
		// Find the next unquoted space, skipping over quoted spans.
		found := base
		for {
			i := strings.IndexAny(cmdline[found:], " \"")
			if i < 0 {
				found = -1
				break
			}
			found += i
			if cmdline[found] != quote {
				break
			}
			// Unbalanced quote is ok: the rest of the string closes it.
			j := strings.IndexByte(cmdline[found+1:], quote)
			if j < 0 {
				found = -1
				break
			}
			found += j + 2
		}

		var token string
		if found < 0 {
			token = cmdline[base:]
		} else {
			token = cmdline[base:found]
		}
		piece := strings.ReplaceAll(token, `"`, "")
		key, value, _ := strings.Cut(piece, "=")
		if key != "" {
			result = append(result, Pair{Key: key, Value: value})
		}

		if found < 0 {
			return result
		}
		base = found + 1
	}
}

// Lookup returns the value of the first pair in cmdline whose key matches.
func Lookup(cmdline, key string) (string, bool) {
	for _, p := range Parse(cmdline) {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// LookupAndroidboot looks up the "androidboot."-prefixed form of key, the
// convention under which boot parameters destined for userspace are passed
// on the kernel command line.
func LookupAndroidboot(cmdline, key string) (string, bool) {
	return Lookup(cmdline, "androidboot."+key)
}
