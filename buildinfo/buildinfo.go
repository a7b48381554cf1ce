package buildinfo

import (
	"fmt"
	"os"
	"runtime"
	"sync/atomic"
	"time"
)

// Build information variables set via ldflags during compilation:
//
//	go build -ldflags "-X backend-service/buildinfo.Version=v1.2.0 -X backend-service/buildinfo.Commit=$(git rev-parse HEAD)"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

var startTime atomic.Int64

func init() {
	startTime.Store(time.Now().UnixNano())
}

// Info contains build and runtime information
type Info struct {
	Version   string        `json:"version" example:"v1.0.0"`
	Commit    string        `json:"commit" example:"abc123def456"`
	BuildDate string        `json:"buildDate" example:"2025-11-22T10:00:00Z"`
	GoVersion string        `json:"goVersion" example:"go1.25.4"`
	Hostname  string        `json:"hostname" example:"app-server-01"`
	Uptime    time.Duration `json:"uptime" swaggertype:"integer" example:"3600000000000"`
}

// GetInfo returns complete build and runtime information
func GetInfo() Info {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	return Info{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Hostname:  hostname,
		Uptime:    Uptime(),
	}
}

// String formats the build fields for the startup log line
func (i Info) String() string {
	return fmt.Sprintf("Version: %s, Commit: %s, BuildDate: %s, GoVersion: %s, Hostname: %s",
		i.Version, i.Commit, i.BuildDate, i.GoVersion, i.Hostname)
}

// SetStartTime overrides the process start time used for uptime
func SetStartTime(t time.Time) {
	startTime.Store(t.UnixNano())
}

// StartTime returns the recorded process start time
func StartTime() time.Time {
	return time.Unix(0, startTime.Load())
}

// Uptime returns the time elapsed since the recorded start time
func Uptime() time.Duration {
	return time.Since(StartTime())
}
