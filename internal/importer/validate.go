package importer

import (
	"fmt"
	"strings"
)

// ValidateProjectDocument checks the document for shape errors that prevent
// conversion. Business rules (positive areas, known tiers and trades) are the
// estimator's concern and are not repeated here.
func ValidateProjectDocument(doc *ProjectDocument) []error {
	var errs []error

	if doc.SquareFootage == nil {
		errs = append(errs, fmt.Errorf("square_footage is required"))
	}
	if doc.GlobalTier != nil && doc.Tier != nil && *doc.GlobalTier != *doc.Tier {
		errs = append(errs, fmt.Errorf("global_tier %q conflicts with tier %q", *doc.GlobalTier, *doc.Tier))
	}

	for _, id := range sortedKeys(doc.Rooms) {
		room := doc.Rooms[id]
		prefix := fmt.Sprintf("rooms[%q]", id)
		if strings.TrimSpace(id) == "" {
			errs = append(errs, fmt.Errorf("rooms: room id must not be blank"))
		}
		if room.Type == "" {
			errs = append(errs, fmt.Errorf("%s.type is required", prefix))
		}
		if room.SquareFootage == nil {
			errs = append(errs, fmt.Errorf("%s.square_footage is required", prefix))
		}
		for _, trade := range sortedKeys(room.Trades) {
			if strings.TrimSpace(trade) == "" {
				errs = append(errs, fmt.Errorf("%s.trades: trade name must not be blank", prefix))
			}
		}
	}
	for _, trade := range sortedKeys(doc.Trades) {
		if strings.TrimSpace(trade) == "" {
			errs = append(errs, fmt.Errorf("trades: trade name must not be blank"))
		}
	}

	return errs
}
