package company

import (
	"time"

	"kyc-backend/internal/files"
)

// ConstitutionOption is the user's constitution choice (1, 2 or 3).
type ConstitutionOption int

// ValidOption reports whether o is one of the three allowed choices.
func ValidOption(o ConstitutionOption) bool {
	return o >= 1 && o <= 3
}

// SlotValue is one populated document slot. Value holds the AI-derived
// semantic field (name/description/address/date), Text the raw extracted
// content it was derived from. Text must stay consistent with FileID: when
// the file reference changes, both are recomputed together.
type SlotValue struct {
	Value  string
	Option ConstitutionOption // constitution slot only; 0 means unset
	Text   string
	FileID files.FileID
}

// Record is the single company-details record owned by a user.
type Record struct {
	ID        string
	UserID    string
	Slots     map[Slot]SlotValue
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PopulatedRecord bundles a record with the file records its slots reference.
type PopulatedRecord struct {
	Record Record
	Files  map[files.FileID]files.FileRecord
}
