package services

import (
	"sync"

	"github.com/dmitrijs2005/kycreview/internal/client/models"
)

// Selection tracks the record open in the details view and the target of
// the rejection prompt. Both are copies; the store may drop the originals at
// any time.
type Selection struct {
	changeHook

	mu           sync.Mutex
	selected     *models.Record
	rejectTarget *models.Record
	reason       string
}

func NewSelection() *Selection {
	return &Selection{}
}

func (s *Selection) Select(r models.Record) {
	c := r.Clone()
	s.mu.Lock()
	s.selected = &c
	s.mu.Unlock()
	s.fire()
}

func (s *Selection) Selected() (models.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return models.Record{}, false
	}
	return s.selected.Clone(), true
}

func (s *Selection) CloseDetails() {
	s.mu.Lock()
	s.selected = nil
	s.mu.Unlock()
	s.fire()
}

// ClearIfSelected closes the details view when it shows id.
func (s *Selection) ClearIfSelected(id int64) {
	s.mu.Lock()
	hit := s.selected != nil && s.selected.ID == id
	if hit {
		s.selected = nil
	}
	s.mu.Unlock()

	if hit {
		s.fire()
	}
}

// OpenReject opens the rejection prompt for r with an empty reason.
func (s *Selection) OpenReject(r models.Record) {
	c := r.Clone()
	s.mu.Lock()
	s.rejectTarget = &c
	s.reason = ""
	s.mu.Unlock()
	s.fire()
}

func (s *Selection) RejectTarget() (models.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rejectTarget == nil {
		return models.Record{}, false
	}
	return s.rejectTarget.Clone(), true
}

func (s *Selection) SetReason(text string) {
	s.mu.Lock()
	s.reason = text
	s.mu.Unlock()
	s.fire()
}

func (s *Selection) Reason() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reason
}

// CloseReject closes the rejection prompt and forgets the entered reason.
func (s *Selection) CloseReject() {
	s.mu.Lock()
	s.rejectTarget = nil
	s.reason = ""
	s.mu.Unlock()
	s.fire()
}

// Clear resets the details view and the rejection prompt.
func (s *Selection) Clear() {
	s.mu.Lock()
	s.selected = nil
	s.rejectTarget = nil
	s.reason = ""
	s.mu.Unlock()
	s.fire()
}
