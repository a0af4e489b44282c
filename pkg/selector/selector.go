// Package selector decides which extraction backend runs a request.
package selector

import (
	"runtime"

	"github.com/user/framesampler/pkg/pipeline"
)

// Request is the caller's backend preference.
type Request struct {
	Parallel bool
	Threads  int // Thread hint; <= 0 means one per CPU
}

// Choice is the selected backend.
type Choice struct {
	Backend  pipeline.Backend
	Threads  int  // Thread hint for the parallel backend, 0 for sequential
	FellBack bool // Parallel was requested but the tool is unavailable
}

// Choose selects the parallel backend only when it is requested and the
// external tool is available. It performs no I/O; callers log FellBack.
func Choose(req Request, toolAvailable bool) Choice {
	if !req.Parallel {
		return Choice{Backend: pipeline.BackendSequential}
	}
	if !toolAvailable {
		return Choice{Backend: pipeline.BackendSequential, FellBack: true}
	}

	threads := req.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	return Choice{Backend: pipeline.BackendParallel, Threads: threads}
}
