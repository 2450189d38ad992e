package sysmon

import (
	"fmt"
	"runtime"
	"strings"

	xcpu "golang.org/x/sys/cpu"
)

// HostInfo describes the hardware the demonstration runs on. Worker counts
// beyond NumCPU change scheduling behavior, so the banner surfaces both the
// physical parallelism and the Go scheduler's view of it.
type HostInfo struct {
	OS         string
	Arch       string
	NumCPU     int
	GOMAXPROCS int
	Features   []string
}

// CollectHostInfo gathers host details for display before a run starts.
func CollectHostInfo() HostInfo {
	return HostInfo{
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
		NumCPU:     runtime.NumCPU(),
		GOMAXPROCS: runtime.GOMAXPROCS(0),
		Features:   cpuFeatures(),
	}
}

// cpuFeatures reports notable CPU capabilities on amd64 and arm64.
// Other architectures return an empty list.
func cpuFeatures() []string {
	var feats []string
	switch runtime.GOARCH {
	case "amd64":
		if xcpu.X86.HasAVX2 {
			feats = append(feats, "AVX2")
		}
		if xcpu.X86.HasAVX512F {
			feats = append(feats, "AVX512")
		}
		if xcpu.X86.HasSSE42 {
			feats = append(feats, "SSE4.2")
		}
	case "arm64":
		if xcpu.ARM64.HasASIMD {
			feats = append(feats, "ASIMD")
		}
		if xcpu.ARM64.HasAES {
			feats = append(feats, "AES")
		}
	}
	return feats
}

// String renders a one-line banner summary, e.g.
// "linux/amd64, 8 CPUs, GOMAXPROCS=8 (AVX2, SSE4.2)".
func (h HostInfo) String() string {
	s := fmt.Sprintf("%s/%s, %d CPUs, GOMAXPROCS=%d", h.OS, h.Arch, h.NumCPU, h.GOMAXPROCS)
	if len(h.Features) > 0 {
		s += " (" + strings.Join(h.Features, ", ") + ")"
	}
	return s
}
