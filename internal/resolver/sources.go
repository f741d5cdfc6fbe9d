package resolver

import (
	"strings"

	"github.com/Project-PixelStar/system-core/internal/bootconfig"
	"github.com/Project-PixelStar/system-core/internal/cmdline"
	"github.com/Project-PixelStar/system-core/internal/props"
)

// Source is one boot configuration channel. Sources are consulted in
// registration order; the first one that answers wins.
type Source interface {
	// Name identifies the source in logs.
	Name() string

	// Lookup resolves key. ok reports whether this source has an answer;
	// whether an empty value counts as an answer is up to the source.
	Lookup(key string) (value string, ok bool)
}

// deviceTreeSource reads <dt-dir><key> as a device-tree leaf node. Node
// contents carry a single trailing NUL which is trimmed; a node that is
// empty after trimming is treated as absent.
type deviceTreeSource struct {
	r          *Resolver
	compatible func() bool
}

func (s *deviceTreeSource) Name() string { return "device-tree" }

func (s *deviceTreeSource) Lookup(key string) (string, bool) {
	if !s.compatible() {
		return "", false
	}
	content, err := s.r.readFile(s.r.DeviceTreeDir() + key)
	if err != nil || content == "" {
		return "", false
	}
	content = content[:len(content)-1]
	if content == "" {
		return "", false
	}
	return content, true
}

// propertySource reads ro.boot.<key> from the property store. Properties
// have no found/not-found distinction, so only a non-empty value counts.
type propertySource struct {
	get props.Getter
}

func (s *propertySource) Name() string { return "property" }

func (s *propertySource) Lookup(key string) (string, bool) {
	value := s.get("ro.boot."+key, "")
	return value, value != ""
}

// bootconfigSource reads androidboot.<key> from the live bootconfig blob.
// A key present with an empty value is still a successful lookup.
type bootconfigSource struct {
	r *Resolver
}

func (s *bootconfigSource) Name() string { return "bootconfig" }

func (s *bootconfigSource) Lookup(key string) (string, bool) {
	blob, err := s.r.readFile(s.r.bootconfigPath)
	if err != nil {
		return "", false
	}
	return bootconfig.Get(blob, "androidboot."+key)
}

// cmdlineSource reads androidboot.<key> from the live kernel command line,
// which may be available before the property store is.
type cmdlineSource struct {
	r *Resolver
}

func (s *cmdlineSource) Name() string { return "kernel-cmdline" }

func (s *cmdlineSource) Lookup(key string) (string, bool) {
	raw, err := s.r.readFile(s.r.cmdlinePath)
	if err != nil {
		return "", false
	}
	return cmdline.LookupAndroidboot(strings.TrimSuffix(raw, "\n"), key)
}
