package db

import "strings"

// Slot categories accepted by the inventory.
var slotTypes = map[string]bool{
	"car":        true,
	"motorcycle": true,
	"ev":         true,
	"disabled":   true,
	"other":      true,
}

// NormalizeSlotType lowercases a slot category and reports whether it is one
// the inventory accepts.
func NormalizeSlotType(t string) (string, bool) {
	norm := strings.ToLower(strings.TrimSpace(t))
	return norm, slotTypes[norm]
}
