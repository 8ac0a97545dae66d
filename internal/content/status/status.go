// Copyright (c) 2026 Apologia. All rights reserved.
// Author: tam.nguyendinh.vn@gmail.com

// Package status defines the publish gate shared by all content entities.
//
// Every religion, topic, and topic detail carries a sync status. Rows start
// as drafts and become visible to mobile clients only after an operator
// explicitly publishes them — never implicitly.
package status

// Status is the publish gate distinguishing author-visible drafts from
// client-visible published content.
type Status string

const (
	// Draft rows are visible in the CMS only. The sync feed never returns them.
	Draft Status = "draft"

	// Synced rows are eligible for delivery to mobile clients.
	Synced Status = "synced"
)

// Published reports whether the row is visible to mobile clients.
func (s Status) Published() bool {
	return s == Synced
}

// Valid reports whether the raw string is a known status value.
func Valid(raw string) bool {
	switch Status(raw) {
	case Draft, Synced:
		return true
	}
	return false
}
