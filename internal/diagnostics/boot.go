package diagnostics

import "runtime"

// Boot reports the Go version, platform, heap figures and goroutine count at
// start, before the first frame.
func Boot(name string) Diagnostic {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return Diagnostic{
		Severity: Info,
		Code:     "boot",
		Summary:  "boot start",
		Evidence: map[string]any{
			"name":            name,
			"go_version":      runtime.Version(),
			"os_arch":         runtime.GOOS + "/" + runtime.GOARCH,
			"heap_sys_bytes":  ms.HeapSys,
			"heap_used_bytes": ms.HeapAlloc,
			"heap_free_bytes": ms.HeapSys - ms.HeapAlloc,
			"goroutines":      runtime.NumGoroutine(),
		},
	}
}
