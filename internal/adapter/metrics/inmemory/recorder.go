package inmemory

import "sync"

type Snapshot struct {
	Submitted         uint64            `json:"submitted"`
	Conflicts         uint64            `json:"conflicts"`
	Superseded        uint64            `json:"superseded"`
	Timeouts          uint64            `json:"timeouts"`
	OwnerOverrides    uint64            `json:"owner_overrides"`
	GeneratorFailures map[string]uint64 `json:"generator_failures"`
}

// Recorder is the in-process KPI counter set behind /ops/kpi.
type Recorder struct {
	mu             sync.Mutex
	submitted      uint64
	conflicts      uint64
	superseded     uint64
	timeouts       uint64
	ownerOverrides uint64
	genFailures    map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{genFailures: map[string]uint64{}}
}

func (r *Recorder) RecordSubmitted() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.submitted++
}

func (r *Recorder) RecordConflict() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conflicts++
}

func (r *Recorder) RecordSuperseded() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.superseded++
}

func (r *Recorder) RecordTimeout() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.timeouts++
}

func (r *Recorder) RecordOwnerOverride() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ownerOverrides++
}

func (r *Recorder) RecordGeneratorFailure(domain string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.genFailures[domain]++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		Submitted:         r.submitted,
		Conflicts:         r.conflicts,
		Superseded:        r.superseded,
		Timeouts:          r.timeouts,
		OwnerOverrides:    r.ownerOverrides,
		GeneratorFailures: make(map[string]uint64, len(r.genFailures)),
	}
	for k, v := range r.genFailures {
		out.GeneratorFailures[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
