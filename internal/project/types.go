// Package project holds the construction domain entities — projects
// and their inspections — and the repository abstraction they are
// stored behind.
package project

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// --- Phase enum ---

// Phase is a construction project phase.
type Phase string

const (
	PhasePlanning   Phase = "planning"
	PhaseExcavation Phase = "excavation"
	PhaseFoundation Phase = "foundation"
	PhaseStructure  Phase = "structure"
	PhaseFinishing  Phase = "finishing"
)

var validPhases = map[Phase]bool{
	PhasePlanning:   true,
	PhaseExcavation: true,
	PhaseFoundation: true,
	PhaseStructure:  true,
	PhaseFinishing:  true,
}

// ValidatePhase returns an error if the phase is not recognized.
func ValidatePhase(p Phase) error {
	if !validPhases[p] {
		return fmt.Errorf("invalid phase %q: must be one of: planning, excavation, foundation, structure, finishing", p)
	}
	return nil
}

// --- Inspection type enum ---

// InspectionType categorizes a quality inspection.
type InspectionType string

const (
	InspectFoundation InspectionType = "foundation"
	InspectStructure  InspectionType = "structure"
	InspectElectrical InspectionType = "electrical"
	InspectPlumbing   InspectionType = "plumbing"
)

var validInspectionTypes = map[InspectionType]bool{
	InspectFoundation: true,
	InspectStructure:  true,
	InspectElectrical: true,
	InspectPlumbing:   true,
}

// ValidateInspectionType returns an error if the type is not recognized.
func ValidateInspectionType(it InspectionType) error {
	if !validInspectionTypes[it] {
		return fmt.Errorf("invalid inspection type %q: must be one of: foundation, structure, electrical, plumbing", it)
	}
	return nil
}

// ValidateCompletion returns an error if the percentage is out of range.
func ValidateCompletion(completion int) error {
	if completion < 0 || completion > 100 {
		return fmt.Errorf("invalid completion %d: must be between 0 and 100", completion)
	}
	return nil
}

// IsMilestone reports whether a completion percentage is a positive
// multiple of 25. The check is level-triggered: it looks only at the
// value just written, so updating to the same multiple twice counts
// twice.
func IsMilestone(completion int) bool {
	return completion > 0 && completion%25 == 0
}

// --- Entities ---

// Project is a tracked construction project. Created once, mutated
// through the repository, never deleted.
type Project struct {
	ID         string
	Name       string
	Location   string
	Contact    string // WhatsApp address receiving updates
	Timeline   string
	Budget     float64 // 0 when not provided
	Phase      Phase
	Completion int // 0–100
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Inspection is a scheduled quality inspection for a project.
type Inspection struct {
	ID        string
	ProjectID string
	Type      InspectionType
	Date      string
	Inspector string
	Status    string // always "scheduled" at creation
	CreatedAt time.Time
}

// StatusScheduled is the initial (and currently only) inspection status.
const StatusScheduled = "scheduled"

// New creates a project in the planning phase at zero completion.
func New(name, location, contact, timeline string, budget float64) *Project {
	now := timeNow()
	return &Project{
		ID:        "proj_" + uuid.NewString(),
		Name:      name,
		Location:  location,
		Contact:   contact,
		Timeline:  timeline,
		Budget:    budget,
		Phase:     PhasePlanning,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewInspection creates a scheduled inspection for a project.
func NewInspection(projectID string, it InspectionType, date, inspector string) *Inspection {
	return &Inspection{
		ID:        "insp_" + uuid.NewString(),
		ProjectID: projectID,
		Type:      it,
		Date:      date,
		Inspector: inspector,
		Status:    StatusScheduled,
		CreatedAt: timeNow(),
	}
}

// ErrNotFound is returned when a project id resolves to nothing.
var ErrNotFound = errors.New("project not found")

// Repository stores projects and inspections. The in-memory Registry
// and the sqlite store both satisfy it, so handlers never care which
// is wired.
type Repository interface {
	PutProject(p *Project) error
	GetProject(id string) (*Project, error)
	ListProjects() ([]*Project, error)

	// UpdateProgress applies phase/completion/notes to a project and
	// reports whether the freshly written completion sits on a
	// milestone. The milestone flag is computed against the value
	// being written, under the same lock or transaction, so racing
	// updates each observe their own write.
	UpdateProgress(id string, phase Phase, completion int, notes string) (*Project, bool, error)

	PutInspection(i *Inspection) error
	ListInspections(projectID string) ([]*Inspection, error)
}
