// Package models contains domain types for specification workflow entities.
// SQL persistence lives in internal/adapters/sqlite/*.go
package models

// Phase is one of the ordered stages a project's specification passes through.
type Phase string

// Workflow phases, in order.
const (
	PhaseRequirements   Phase = "REQUIREMENTS"
	PhaseDesign         Phase = "DESIGN"
	PhaseTasks          Phase = "TASKS"
	PhaseImplementation Phase = "IMPLEMENTATION"
)

// phaseOrder is the fixed total order of phases.
var phaseOrder = []Phase{
	PhaseRequirements,
	PhaseDesign,
	PhaseTasks,
	PhaseImplementation,
}

// AllPhases returns the phases in workflow order.
func AllPhases() []Phase {
	out := make([]Phase, len(phaseOrder))
	copy(out, phaseOrder)
	return out
}

// Index returns the position of the phase in the workflow order,
// or -1 if the phase is not a known phase.
func (p Phase) Index() int {
	for i, ph := range phaseOrder {
		if ph == p {
			return i
		}
	}
	return -1
}

// Valid reports whether p is one of the four known phases.
func (p Phase) Valid() bool {
	return p.Index() >= 0
}

// Next returns the phase following p in the workflow order.
// ok is false if p is the final phase or unknown.
func (p Phase) Next() (next Phase, ok bool) {
	i := p.Index()
	if i < 0 || i+1 >= len(phaseOrder) {
		return "", false
	}
	return phaseOrder[i+1], true
}
