// Package health reports a runtime snapshot of the process.
package health

import (
	"runtime"
	"time"
)

// Options describes process state the caller tracks itself.
type Options struct {
	StartedAt time.Time
	Requests  int64
	Now       func() time.Time
}

func (o Options) normalize() Options {
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Snapshot is the health report served to clients.
type Snapshot struct {
	Status     string      `json:"status"`
	Goroutines int         `json:"goroutines"`
	Memory     MemoryInfo  `json:"memory"`
	Runtime    RuntimeInfo `json:"runtime"`
	Uptime     string      `json:"uptime,omitempty"`
	Requests   int64       `json:"requests"`
	Timestamp  string      `json:"timestamp"`
}

// MemoryInfo is a subset of runtime.MemStats in megabytes.
type MemoryInfo struct {
	AllocMB      float64 `json:"allocMB"`
	TotalAllocMB float64 `json:"totalAllocMB"`
	SysMB        float64 `json:"sysMB"`
	NumGC        uint32  `json:"numGC"`
}

// RuntimeInfo identifies the Go runtime and host.
type RuntimeInfo struct {
	Version string `json:"version"`
	OS      string `json:"os"`
	Arch    string `json:"arch"`
	CPUs    int    `json:"cpus"`
}

// Collect returns a health snapshot for the current process.
func Collect(opts Options) Snapshot {
	opts = opts.normalize()
	now := opts.Now()

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	s := Snapshot{
		Status:     "healthy",
		Goroutines: runtime.NumGoroutine(),
		Memory: MemoryInfo{
			AllocMB:      float64(mem.Alloc) / 1024 / 1024,
			TotalAllocMB: float64(mem.TotalAlloc) / 1024 / 1024,
			SysMB:        float64(mem.Sys) / 1024 / 1024,
			NumGC:        mem.NumGC,
		},
		Runtime: RuntimeInfo{
			Version: runtime.Version(),
			OS:      runtime.GOOS,
			Arch:    runtime.GOARCH,
			CPUs:    runtime.NumCPU(),
		},
		Requests:  opts.Requests,
		Timestamp: now.Format(time.RFC3339),
	}
	if !opts.StartedAt.IsZero() {
		s.Uptime = now.Sub(opts.StartedAt).Truncate(time.Second).String()
	}
	return s
}
