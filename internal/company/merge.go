package company

import "kyc-backend/internal/files"

// mergeDecision is the outcome of the per-slot preservation policy.
type mergeDecision int

const (
	// decideAbsent leaves the slot unset.
	decideAbsent mergeDecision = iota
	// decidePreserve keeps the existing stored value untouched.
	decidePreserve
	// decideCompute derives a fresh value from the newly uploaded file.
	decideCompute
)

// decideSlot applies the merge/preservation policy for one slot.
// Inputs: whether a usable new file arrived, whether the record already holds
// the slot, and whether the new file reference is identical to the stored one.
//
//	new file, no existing slot            -> compute
//	new file, existing, identity differs  -> compute (replace fileId/text/value)
//	new file, existing, identity same     -> preserve (skip the AI call)
//	no new file, existing slot            -> preserve verbatim
//	no new file, no existing slot         -> absent
func decideSlot(uploaded bool, newFile files.FileID, existing *SlotValue) mergeDecision {
	if !uploaded {
		if existing != nil {
			return decidePreserve
		}
		return decideAbsent
	}
	if existing != nil && existing.FileID.Same(newFile) {
		return decidePreserve
	}
	return decideCompute
}
