// Package store holds the client-side mirror of a user's collection and
// derives the filtered view from it. All transitions are pure
// (state, action) -> state functions; Store serializes dispatches so the
// mirror never races with itself. It is not synchronized with concurrent
// server-side changes from other sessions; staleness resolves at the next
// hydration.
package store

import (
	"sync"

	"github.com/secondbrain-dev/secondbrain/pkg/brain/content"
	"github.com/secondbrain-dev/secondbrain/pkg/brain/models"
	"github.com/secondbrain-dev/secondbrain/pkg/brain/tags"
)

// State is the full client store state. Filtered is always a derivation of
// (Contents, Filters); it is never mutated independently.
type State struct {
	Contents []content.ContentResponse
	Filtered []content.ContentResponse
	Tags     []tags.TagResponse
	Filters  Filters
	Loading  bool
	Err      string
}

// Action is a state transition request
type Action interface {
	reduce(State) State
}

// StartLoading marks a fetch in flight
type StartLoading struct{}

// Fail records a failed mutation or fetch; prior state stays intact
type Fail struct{ Message string }

// LoadContents replaces the base collection (full refetch)
type LoadContents struct{ Contents []content.ContentResponse }

// LoadTags replaces the known tag collection
type LoadTags struct{ Tags []tags.TagResponse }

// AddContent optimistically merges a newly created item, newest first
type AddContent struct{ Content content.ContentResponse }

// RemoveContent drops an item from the base collection
type RemoveContent struct{ ID uint }

// SetTypeFilter sets the type facet; the zero value clears it
type SetTypeFilter struct{ Type models.ContentType }

// SetTagFilter replaces the selected tag set
type SetTagFilter struct{ TagIDs []uint }

// SetSearch replaces the search query
type SetSearch struct{ Query string }

// ClearFilters resets every facet to neutral
type ClearFilters struct{}

func (StartLoading) reduce(s State) State {
	s.Loading = true
	s.Err = ""
	return s
}

func (a Fail) reduce(s State) State {
	s.Loading = false
	s.Err = a.Message
	return s
}

func (a LoadContents) reduce(s State) State {
	s.Loading = false
	s.Err = ""
	s.Contents = a.Contents
	return s
}

func (a LoadTags) reduce(s State) State {
	s.Tags = a.Tags
	return s
}

func (a AddContent) reduce(s State) State {
	s.Contents = append([]content.ContentResponse{a.Content}, s.Contents...)
	return s
}

func (a RemoveContent) reduce(s State) State {
	kept := make([]content.ContentResponse, 0, len(s.Contents))
	for _, item := range s.Contents {
		if item.ID != a.ID {
			kept = append(kept, item)
		}
	}
	s.Contents = kept
	return s
}

func (a SetTypeFilter) reduce(s State) State {
	s.Filters.ContentType = a.Type
	return s
}

func (a SetTagFilter) reduce(s State) State {
	s.Filters.TagIDs = a.TagIDs
	return s
}

func (a SetSearch) reduce(s State) State {
	s.Filters.SearchQuery = a.Query
	return s
}

func (ClearFilters) reduce(s State) State {
	s.Filters = Filters{}
	return s
}

// Reduce applies one action and re-derives the filtered view. It is pure:
// the input state is not modified.
func Reduce(s State, a Action) State {
	next := a.reduce(s)
	next.Filtered = Apply(next.Contents, next.Filters)
	return next
}

// Store wraps State behind a serialized dispatch queue
type Store struct {
	mu    sync.Mutex
	state State
}

// New creates an empty store
func New() *Store {
	return &Store{state: State{
		Contents: []content.ContentResponse{},
		Filtered: []content.ContentResponse{},
	}}
}

// Dispatch applies an action and returns the resulting state. Transitions
// happen one at a time.
func (s *Store) Dispatch(a Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Reduce(s.state, a)
	return s.state
}

// State returns the current state
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}
