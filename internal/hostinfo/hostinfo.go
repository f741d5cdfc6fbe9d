// Package hostinfo reports kernel and platform metadata for diagnostics
// output. Results are cached after the first collection; kernel identity
// does not change at runtime.
package hostinfo

import (
	"context"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/host"
)

// Info describes the running kernel and platform.
type Info struct {
	KernelVersion   string    `json:"kernel_version"`
	KernelArch      string    `json:"kernel_arch"`
	Platform        string    `json:"platform"`
	PlatformVersion string    `json:"platform_version"`
	BootTime        time.Time `json:"boot_time"`
}

var (
	once   sync.Once
	cached Info
)

// Collect gathers host information once and returns the cached copy on
// every later call. Individual probe failures leave the corresponding
// field zero; partial info is still useful in diagnostics.
func Collect(ctx context.Context) Info {
	once.Do(func() {
		cached.KernelVersion, _ = host.KernelVersionWithContext(ctx)
		cached.KernelArch, _ = host.KernelArch()

		platform, _, version, err := host.PlatformInformationWithContext(ctx)
		if err == nil {
			cached.Platform = platform
			cached.PlatformVersion = version
		}

		if bootTime, err := host.BootTimeWithContext(ctx); err == nil {
			cached.BootTime = time.Unix(int64(bootTime), 0).UTC()
		}
	})
	return cached
}
