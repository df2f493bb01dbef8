// Package store holds the process-wide problem data and constraint
// set behind a reader/writer lock (C8, spec.md §5 expansion), mirroring
// the original implementation's Arc<RwLock<...>> AppState.
package store

import (
	"sync"

	"github.com/khryptorgraphics/schedcore/internal/apierrors"
	"github.com/khryptorgraphics/schedcore/internal/model"
)

// Store is the shared mutable state CRUD handlers and the /solve
// handler operate on. Zero value is not usable; use New.
type Store struct {
	problemMu   sync.RWMutex
	problem     model.ProblemData
	constraintsMu sync.RWMutex
	constraints []model.Constraint
}

// New returns a Store seeded with the given problem data and
// constraints (both copied in, never aliased with the caller).
func New(problem model.ProblemData, constraints []model.Constraint) *Store {
	s := &Store{
		problem:     problem.Clone(),
		constraints: cloneConstraints(constraints),
	}
	return s
}

// Snapshot returns a deep copy of the current problem data and
// constraints for the solver to run against. The read lock is held
// only long enough to copy, not for the duration of the annealing run
// that follows — a deliberate refinement over a naive "hold the lock
// across solve" design (SPEC_FULL.md §5).
func (s *Store) Snapshot() (model.ProblemData, []model.Constraint) {
	s.problemMu.RLock()
	problem := s.problem.Clone()
	s.problemMu.RUnlock()

	s.constraintsMu.RLock()
	constraints := cloneConstraints(s.constraints)
	s.constraintsMu.RUnlock()

	return problem, constraints
}

// ListCategories returns the names of every item category, sorted.
func (s *Store) ListCategories() []string {
	s.problemMu.RLock()
	defer s.problemMu.RUnlock()

	names := make([]string, 0, len(s.problem.ItemCategories))
	for name := range s.problem.ItemCategories {
		names = append(names, name)
	}
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j-1] > names[j]; j-- {
			names[j-1], names[j] = names[j], names[j-1]
		}
	}
	return names
}

// GetItem returns a copy of one item category.
func (s *Store) GetItem(name string) (model.Item, error) {
	s.problemMu.RLock()
	defer s.problemMu.RUnlock()

	item, ok := s.problem.ItemCategories[name]
	if !ok {
		return model.Item{}, apierrors.ItemNotFound(name)
	}
	return item, nil
}

// PutItem creates or replaces an entire item category.
func (s *Store) PutItem(name string, item model.Item) {
	s.problemMu.Lock()
	defer s.problemMu.Unlock()

	if s.problem.ItemCategories == nil {
		s.problem.ItemCategories = map[string]model.Item{}
	}
	item.Name = name
	s.problem.ItemCategories[name] = item
}

// DeleteItem removes an item category entirely.
func (s *Store) DeleteItem(name string) error {
	s.problemMu.Lock()
	defer s.problemMu.Unlock()

	if _, ok := s.problem.ItemCategories[name]; !ok {
		return apierrors.ItemNotFound(name)
	}
	delete(s.problem.ItemCategories, name)
	return nil
}

// AddMember appends a member to an existing item category.
func (s *Store) AddMember(itemName string, member model.Member) error {
	s.problemMu.Lock()
	defer s.problemMu.Unlock()

	item, ok := s.problem.ItemCategories[itemName]
	if !ok {
		return apierrors.ItemNotFound(itemName)
	}
	item.Members = append(item.Members, member)
	s.problem.ItemCategories[itemName] = item
	return nil
}

// UpdateMember replaces one member's fields in place, entirely under
// the write lock — unlike GetItem+FindMember, which hands callers a
// pointer into the store's own backing array and invites an
// unsynchronized write, this is the only way handler code should
// mutate an existing member's fields.
func (s *Store) UpdateMember(itemName string, id model.ItemId, fields map[string]model.Value) error {
	s.problemMu.Lock()
	defer s.problemMu.Unlock()

	item, ok := s.problem.ItemCategories[itemName]
	if !ok {
		return apierrors.ItemNotFound(itemName)
	}

	index := -1
	for i, m := range item.Members {
		if m.ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		return apierrors.MemberNotFound(itemName, id)
	}

	item.Members[index].Fields = fields
	s.problem.ItemCategories[itemName] = item
	return nil
}

// DeleteMember removes a single member from an item category by id.
func (s *Store) DeleteMember(itemName string, id model.ItemId) error {
	s.problemMu.Lock()
	defer s.problemMu.Unlock()

	item, ok := s.problem.ItemCategories[itemName]
	if !ok {
		return apierrors.ItemNotFound(itemName)
	}

	index := -1
	for i, m := range item.Members {
		if m.ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		return apierrors.MemberNotFound(itemName, id)
	}

	item.Members = append(item.Members[:index], item.Members[index+1:]...)
	s.problem.ItemCategories[itemName] = item
	return nil
}

// ListConstraints returns a copy of every constraint currently stored.
func (s *Store) ListConstraints() []model.Constraint {
	s.constraintsMu.RLock()
	defer s.constraintsMu.RUnlock()
	return cloneConstraints(s.constraints)
}

// AddConstraint appends a new constraint.
func (s *Store) AddConstraint(c model.Constraint) {
	s.constraintsMu.Lock()
	defer s.constraintsMu.Unlock()
	s.constraints = append(s.constraints, c)
}

// DeleteConstraint removes the first constraint with the given name.
func (s *Store) DeleteConstraint(name string) error {
	s.constraintsMu.Lock()
	defer s.constraintsMu.Unlock()

	index := -1
	for i, c := range s.constraints {
		if c.Name == name {
			index = i
			break
		}
	}
	if index == -1 {
		return apierrors.ConstraintNotFound(name)
	}
	s.constraints = append(s.constraints[:index], s.constraints[index+1:]...)
	return nil
}

func cloneConstraints(in []model.Constraint) []model.Constraint {
	out := make([]model.Constraint, len(in))
	copy(out, in)
	return out
}
