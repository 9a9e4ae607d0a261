package sim

import (
	"fmt"
	"sort"
)

// ProcessRegistry owns every process of a run. It keeps the input order for
// reporting and an arrival-ordered view that drives admission.
type ProcessRegistry struct {
	all     []*Process          // input order
	sorted  []*Process          // arrival order, ties by input order
	byName  map[string]*Process // identity is the validated-unique name
	nextIdx int                 // first unadmitted position in sorted
}

// NewProcessRegistry creates an empty registry.
func NewProcessRegistry() *ProcessRegistry {
	return &ProcessRegistry{byName: make(map[string]*Process)}
}

// Load replaces the registry contents with fresh processes built from specs.
// Names must be unique; the arrival-ordered view uses sort.SliceStable so equal
// arrival times keep their input order.
func (r *ProcessRegistry) Load(specs []ProcessSpec) error {
	all := make([]*Process, 0, len(specs))
	byName := make(map[string]*Process, len(specs))
	for _, spec := range specs {
		if _, dup := byName[spec.Name]; dup {
			return fmt.Errorf("%w: duplicate process name %q", ErrInvalidProcess, spec.Name)
		}
		p := NewProcess(spec)
		all = append(all, p)
		byName[spec.Name] = p
	}
	sorted := make([]*Process, len(all))
	copy(sorted, all)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ArrivalTime < sorted[j].ArrivalTime
	})
	r.all, r.sorted, r.byName, r.nextIdx = all, sorted, byName, 0
	return nil
}

// AdmitDue marks every not-yet-admitted process with ArrivalTime <= now as admitted
// and returns them in arrival order. A process is returned at most once per Load.
func (r *ProcessRegistry) AdmitDue(now int64) []*Process {
	var admitted []*Process
	for r.nextIdx < len(r.sorted) && r.sorted[r.nextIdx].ArrivalTime <= now {
		p := r.sorted[r.nextIdx]
		r.nextIdx++
		if p.Admitted {
			continue
		}
		p.Admitted = true
		admitted = append(admitted, p)
	}
	return admitted
}

// NextPendingArrival returns the arrival time of the first unadmitted process.
// ok is false once every process has been admitted.
func (r *ProcessRegistry) NextPendingArrival() (t int64, ok bool) {
	if r.nextIdx >= len(r.sorted) {
		return 0, false
	}
	return r.sorted[r.nextIdx].ArrivalTime, true
}

// Get returns the process called name, or nil.
func (r *ProcessRegistry) Get(name string) *Process {
	return r.byName[name]
}

// Len returns the number of loaded processes.
func (r *ProcessRegistry) Len() int {
	return len(r.all)
}

// All returns the processes in input order. Callers MUST NOT modify the slice.
func (r *ProcessRegistry) All() []*Process {
	return r.all
}

// Sorted returns the processes in admission order. Callers MUST NOT modify the slice.
func (r *ProcessRegistry) Sorted() []*Process {
	return r.sorted
}
