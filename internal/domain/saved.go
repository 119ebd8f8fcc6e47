package domain

import (
	"fmt"
	"strings"
	"time"
)

// SavedEstimate is a named, persisted estimation. Document and Result hold the
// originating project document and the presented result as JSON.
type SavedEstimate struct {
	ID             string
	Name           string
	ProjectName    string
	GlobalTier     Tier
	TotalCost      float64
	CatalogVersion string
	Categories     map[Trade]float64
	Document       []byte
	Result         []byte
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ValidateName rejects names that are empty or could escape a storage
// namespace.
func (s *SavedEstimate) ValidateName() error {
	return ValidateEstimateName(s.Name)
}

// ValidateEstimateName checks a saved-estimate name.
func ValidateEstimateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("estimate name is required")
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return fmt.Errorf("estimate name %q must not contain '/', '\\' or '..'", name)
	}
	return nil
}
