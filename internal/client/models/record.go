package models

import (
	"encoding/json"
	"time"
)

// Status is the review state of a KYC record.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Document identifies one of the two images attached to a record.
type Document string

const (
	DocumentIDFront Document = "front"
	DocumentSelfie  Document = "selfie"
)

// Record is a KYC application as returned by the pending-queue endpoint.
//
// Only ID, UserID and Email are always present. Every other personal field is
// optional and modelled as a pointer: nil means the applicant did not supply
// it, which is different from an empty string.
type Record struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`

	FullName    *string `json:"full_name,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	DateOfBirth *string `json:"date_of_birth,omitempty"`
	IDType      *string `json:"id_type,omitempty"`
	IDNumber    *string `json:"id_number,omitempty"`
	Address     *string `json:"address,omitempty"`
	City        *string `json:"city,omitempty"`
	State       *string `json:"state,omitempty"`
	PostalCode  *string `json:"postal_code,omitempty"`
	Country     *string `json:"country,omitempty"`

	IDFrontURL *string `json:"id_front_url,omitempty"`
	SelfieURL  *string `json:"selfie_url,omitempty"`

	SubmittedAt *time.Time `json:"submitted_at,omitempty"`

	Status Status `json:"status"`
}

// UnmarshalJSON decodes a record and defaults a missing status to pending.
func (r *Record) UnmarshalJSON(data []byte) error {
	type plain Record
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	if p.Status == "" {
		p.Status = StatusPending
	}
	*r = Record(p)
	return nil
}

// DocumentURL returns the URL of the requested document image, if any.
func (r Record) DocumentURL(d Document) (string, bool) {
	var u *string
	switch d {
	case DocumentIDFront:
		u = r.IDFrontURL
	case DocumentSelfie:
		u = r.SelfieURL
	}
	if u == nil || *u == "" {
		return "", false
	}
	return *u, true
}

// Clone returns a copy that does not share optional field storage with r.
func (r Record) Clone() Record {
	c := r
	c.FullName = cloneString(r.FullName)
	c.Phone = cloneString(r.Phone)
	c.DateOfBirth = cloneString(r.DateOfBirth)
	c.IDType = cloneString(r.IDType)
	c.IDNumber = cloneString(r.IDNumber)
	c.Address = cloneString(r.Address)
	c.City = cloneString(r.City)
	c.State = cloneString(r.State)
	c.PostalCode = cloneString(r.PostalCode)
	c.Country = cloneString(r.Country)
	c.IDFrontURL = cloneString(r.IDFrontURL)
	c.SelfieURL = cloneString(r.SelfieURL)
	if r.SubmittedAt != nil {
		t := *r.SubmittedAt
		c.SubmittedAt = &t
	}
	return c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
