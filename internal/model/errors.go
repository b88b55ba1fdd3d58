package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownStrategy = errors.New("unknown strategy")
	ErrStockLength     = errors.New("invalid stock length")
	ErrNegativeKerf    = errors.New("kerf must not be negative")
)

// ItemIssue describes why a single cut item was rejected.
type ItemIssue struct {
	ItemID string `json:"item_id"`
	Reason string `json:"reason"`
}

// InvalidItemError rejects a whole batch of cut items. No plan is produced
// when it is returned; the upstream data must be corrected.
type InvalidItemError struct {
	Issues []ItemIssue
}

func (e *InvalidItemError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		id := is.ItemID
		if id == "" {
			id = "<no id>"
		}
		parts = append(parts, fmt.Sprintf("%s (%s)", id, is.Reason))
	}
	return fmt.Sprintf("invalid cut items: %s", strings.Join(parts, ", "))
}

// IDs returns the offending item ids, one per item, in input order.
func (e *InvalidItemError) IDs() []string {
	seen := make(map[string]bool, len(e.Issues))
	ids := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		if seen[is.ItemID] {
			continue
		}
		seen[is.ItemID] = true
		ids = append(ids, is.ItemID)
	}
	return ids
}
