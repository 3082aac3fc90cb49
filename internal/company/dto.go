package company

import (
	"time"

	"kyc-backend/internal/files"
)

// slotJSON is the wire shape of one populated slot. The semantic field key
// (name/description/address/date) varies per slot, so the struct is rendered
// through a map.
type slotJSON map[string]any

// RecordJSON shapes a populated record for API responses. Slots the record
// does not hold are omitted entirely.
func RecordJSON(p PopulatedRecord) map[string]any {
	out := map[string]any{
		"id":        p.Record.ID,
		"userId":    p.Record.UserID,
		"createdAt": p.Record.CreatedAt.Format(time.RFC3339),
		"updatedAt": p.Record.UpdatedAt.Format(time.RFC3339),
	}
	for slot, sv := range p.Record.Slots {
		out[string(slot)] = slotJSONFor(slot, sv, p.Files)
	}
	return out
}

func slotJSONFor(slot Slot, sv SlotValue, fileRecs map[files.FileID]files.FileRecord) slotJSON {
	j := slotJSON{
		FieldFor(slot): sv.Value,
		"text":         sv.Text,
	}
	if sv.FileID != "" {
		// Populate the full file record when we have it, otherwise fall back
		// to the bare id string.
		if rec, ok := fileRecs[sv.FileID]; ok {
			j["fileId"] = rec
		} else {
			j["fileId"] = sv.FileID.String()
		}
	}
	if slot == SlotConstitution && sv.Option != 0 {
		j["option"] = int(sv.Option)
	}
	return j
}
