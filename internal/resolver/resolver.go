// Package resolver layers the boot-time configuration channels into one
// precedence-ordered lookup: device-tree firmware properties, the property
// store, the kernel bootconfig blob, and finally the kernel command line.
// Sources are consulted in that fixed order and the first answer wins,
// which lets the same call degrade gracefully the earlier in boot it runs.
package resolver

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/Project-PixelStar/system-core/internal/bootconfig"
	"github.com/Project-PixelStar/system-core/internal/cmdline"
	"github.com/Project-PixelStar/system-core/internal/props"
)

const (
	// DefaultCmdlinePath is the kernel-exported command line pseudo-file.
	DefaultCmdlinePath = "/proc/cmdline"

	// DefaultDTDir is the procfs device-tree directory used when neither
	// bootconfig nor the kernel command line names one.
	DefaultDTDir = "/proc/device-tree/firmware/android/"

	// dtDirKey names the device-tree directory override in bootconfig
	// (androidboot.-prefixed) and on the kernel command line.
	dtDirKey = "android_dt_dir"

	// dtCompatibleValue is what <dt-dir>compatible must contain for the
	// device-tree channel to be trusted.
	dtCompatibleValue = "android,firmware"
)

// ReadFileFunc reads an entire file into a string.
type ReadFileFunc func(path string) (string, error)

// Options configures a Resolver. The zero value selects the live system:
// /proc pseudo-files, the real property store, and the on-disk device tree.
type Options struct {
	// BootconfigPath overrides bootconfig.DefaultPath.
	BootconfigPath string

	// CmdlinePath overrides DefaultCmdlinePath.
	CmdlinePath string

	// DTFallbackDir overrides DefaultDTDir as the last-resort device-tree
	// directory.
	DTFallbackDir string

	// ReadFile overrides file access. Used by tests to serve synthetic
	// pseudo-files and device-tree nodes.
	ReadFile ReadFileFunc

	// Property overrides the property-store read primitive.
	Property props.Getter

	// DTCompatible overrides the device-tree compatibility predicate. The
	// default reads <dt-dir>compatible and matches the Android firmware
	// binding.
	DTCompatible func() bool

	// Logger receives source-selection logs. Nil disables logging.
	Logger *zap.Logger
}

// Resolver answers single-key boot configuration lookups by walking its
// source chain in order. It is safe for concurrent readers; the one piece
// of shared state, the device-tree directory, is computed at most once.
type Resolver struct {
	sources        []Source
	readFile       ReadFileFunc
	property       props.Getter
	bootconfigPath string
	cmdlinePath    string
	dtFallback     string
	logger         *zap.Logger

	dtOnce sync.Once
	dtDir  string
}

// New creates a Resolver with the fixed source chain: device tree,
// property store, bootconfig, kernel command line.
func New(opts Options) *Resolver {
	r := &Resolver{
		readFile:       opts.ReadFile,
		property:       opts.Property,
		bootconfigPath: opts.BootconfigPath,
		cmdlinePath:    opts.CmdlinePath,
		dtFallback:     opts.DTFallbackDir,
		logger:         opts.Logger,
	}
	if r.readFile == nil {
		r.readFile = readFileString
	}
	if r.property == nil {
		r.property = props.Get
	}
	if r.bootconfigPath == "" {
		r.bootconfigPath = bootconfig.DefaultPath
	}
	if r.cmdlinePath == "" {
		r.cmdlinePath = DefaultCmdlinePath
	}
	if r.dtFallback == "" {
		r.dtFallback = DefaultDTDir
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}

	compatible := opts.DTCompatible
	if compatible == nil {
		compatible = r.dtCompatible
	}
	r.register(&deviceTreeSource{r: r, compatible: compatible})
	r.register(&propertySource{get: r.property})
	r.register(&bootconfigSource{r: r})
	r.register(&cmdlineSource{r: r})
	return r
}

// register appends a source to the chain. Registering a nil source is a
// programming error, not a runtime condition.
func (r *Resolver) register(s Source) {
	if s == nil {
		panic("resolver: nil source")
	}
	r.sources = append(r.sources, s)
}

// Resolve tries each source in order and returns the first answer. The
// boolean reports whether any source answered; a found empty value is
// still a successful resolution.
func (r *Resolver) Resolve(key string) (string, bool) {
	for _, s := range r.sources {
		if value, ok := s.Lookup(key); ok {
			r.logger.Debug("Resolved boot config key",
				zap.String("key", key),
				zap.String("source", s.Name()))
			return value, true
		}
	}
	return "", false
}

// DeviceTreeDir returns the Android device-tree directory, always ending
// with exactly one path separator. Discovery runs at most once per
// Resolver: bootconfig androidboot.android_dt_dir, then the command-line
// form, then the configured fallback.
func (r *Resolver) DeviceTreeDir() string {
	r.dtOnce.Do(func() {
		var dir string
		if blob, err := r.readFile(r.bootconfigPath); err == nil {
			dir, _ = bootconfig.Get(blob, "androidboot."+dtDirKey)
		}
		if dir == "" {
			if raw, err := r.readFile(r.cmdlinePath); err == nil {
				dir, _ = cmdline.LookupAndroidboot(strings.TrimSuffix(raw, "\n"), dtDirKey)
			}
		}
		if dir == "" {
			dir = r.dtFallback
		}
		r.dtDir = strings.TrimRight(dir, "/") + "/"
		r.logger.Info("Using Android DT directory", zap.String("dir", r.dtDir))
	})
	return r.dtDir
}

// dtCompatible is the default device-tree predicate: the firmware node
// must declare the android,firmware binding.
func (r *Resolver) dtCompatible() bool {
	content, err := r.readFile(r.DeviceTreeDir() + "compatible")
	if err != nil {
		return false
	}
	return strings.TrimRight(content, "\x00") == dtCompatibleValue
}

// readFileString reads path into a string after probing read access, so an
// unreadable device-tree node behaves the same as an absent one.
func readFileString(path string) (string, error) {
	if err := unix.Access(path, unix.R_OK); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}

var (
	defaultOnce     sync.Once
	defaultResolver *Resolver
)

// Default returns the process-wide resolver bound to the live kernel
// pseudo-files, created on first use.
func Default() *Resolver {
	defaultOnce.Do(func() {
		defaultResolver = New(Options{})
	})
	return defaultResolver
}

// Get resolves key through the process-wide resolver.
func Get(key string) (string, bool) {
	return Default().Resolve(key)
}

// AndroidDTDir returns the device-tree directory of the process-wide
// resolver.
func AndroidDTDir() string {
	return Default().DeviceTreeDir()
}
