package report

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/models"
)

// Resolver answers parent/child queries for a snapshot of the category
// forest. Build it once per snapshot and share it between report calls.
type Resolver struct {
	byID     map[uuid.UUID]models.Category
	children map[uuid.UUID][]models.Category
}

// NewResolver builds the lookup structures for the categories.
//
// It verifies that every category with a known parent has the same kind as
// that parent and fails with ErrKindMismatch otherwise. Missing parents
// are not an error, the category is treated as a root (see RootOf).
func NewResolver(categories []models.Category) (*Resolver, error) {
	r := &Resolver{
		byID:     make(map[uuid.UUID]models.Category, len(categories)),
		children: make(map[uuid.UUID][]models.Category),
	}

	for _, category := range categories {
		r.byID[category.ID] = category
	}

	for _, category := range categories {
		parentID := uuid.Nil
		if category.ParentID != nil {
			parentID = *category.ParentID

			if parent, ok := r.byID[parentID]; ok && parent.Kind != category.Kind {
				return nil, fmt.Errorf("%w: %q is %s, but its parent %q is %s",
					ErrKindMismatch, category.Name, category.Kind, parent.Name, parent.Kind)
			}
		}

		r.children[parentID] = append(r.children[parentID], category)
	}

	return r, nil
}

// ChildrenOf returns the direct children of the category. Passing uuid.Nil
// returns the root categories.
func (r *Resolver) ChildrenOf(id uuid.UUID) []models.Category {
	return r.children[id]
}

// IsLeaf reports whether the category has no children in the snapshot.
func (r *Resolver) IsLeaf(id uuid.UUID) bool {
	return len(r.children[id]) == 0
}

// RootOf walks the parent chain upwards and returns the ID of the top-most
// ancestor.
//
// An unknown ID resolves to itself, as does a category whose parent
// reference is broken: stale references must never crash a report. A cycle
// in the parent chain fails with ErrCorruptHierarchy instead of hanging.
func (r *Resolver) RootOf(id uuid.UUID) (uuid.UUID, error) {
	visited := make(map[uuid.UUID]bool)

	for {
		if visited[id] {
			return uuid.Nil, fmt.Errorf("%w: parent chain of %s never reaches a root", ErrCorruptHierarchy, id)
		}
		visited[id] = true

		category, ok := r.byID[id]
		if !ok || category.ParentID == nil {
			return id, nil
		}

		// A broken parent link makes the category itself the root.
		if _, ok := r.byID[*category.ParentID]; !ok {
			return id, nil
		}

		id = *category.ParentID
	}
}

// Name returns the name of the category, or UnknownCategory if the ID is
// not part of the snapshot.
func (r *Resolver) Name(id uuid.UUID) string {
	if category, ok := r.byID[id]; ok {
		return category.Name
	}

	return UnknownCategory
}
