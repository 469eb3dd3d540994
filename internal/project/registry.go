package project

import (
	"fmt"
	"sync"
)

// Registry is the in-memory Repository. A single mutex serializes all
// access, so concurrent handlers never interleave on shared project
// state. Entities are copied on the way in and out — the Registry is
// the only code that mutates what it holds.
type Registry struct {
	mu          sync.Mutex
	projects    map[string]*Project
	inspections map[string][]*Inspection
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		projects:    make(map[string]*Project),
		inspections: make(map[string][]*Inspection),
	}
}

// PutProject stores a copy of the project.
func (r *Registry) PutProject(p *Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.projects[p.ID] = &cp
	return nil
}

// GetProject returns a copy of the project, or ErrNotFound.
func (r *Registry) GetProject(id string) (*Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok {
		return nil, fmt.Errorf("project %q: %w", id, ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

// ListProjects returns copies of all projects.
func (r *Registry) ListProjects() ([]*Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Project, 0, len(r.projects))
	for _, p := range r.projects {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

// UpdateProgress applies the update and computes the milestone flag
// from the value written, under the same lock.
func (r *Registry) UpdateProgress(id string, phase Phase, completion int, notes string) (*Project, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok {
		return nil, false, fmt.Errorf("project %q: %w", id, ErrNotFound)
	}
	p.Phase = phase
	p.Completion = completion
	if notes != "" {
		p.Notes = notes
	}
	p.UpdatedAt = timeNow()
	cp := *p
	return &cp, IsMilestone(p.Completion), nil
}

// PutInspection appends a copy of the inspection to its project's list.
// The project must exist.
func (r *Registry) PutInspection(i *Inspection) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.projects[i.ProjectID]; !ok {
		return fmt.Errorf("project %q: %w", i.ProjectID, ErrNotFound)
	}
	cp := *i
	r.inspections[i.ProjectID] = append(r.inspections[i.ProjectID], &cp)
	return nil
}

// ListInspections returns copies of a project's inspections in
// creation order.
func (r *Registry) ListInspections(projectID string) ([]*Inspection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.inspections[projectID]
	out := make([]*Inspection, 0, len(list))
	for _, i := range list {
		cp := *i
		out = append(out, &cp)
	}
	return out, nil
}
