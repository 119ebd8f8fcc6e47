package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// ProjectDocument is the JSON structure of a project sent for estimation.
// Pointer fields distinguish "absent" from zero.
type ProjectDocument struct {
	ProjectName        string                  `json:"project_name,omitempty"`
	SquareFootage      *float64                `json:"square_footage"`
	GlobalTier         *string                 `json:"global_tier,omitempty"`
	Tier               *string                 `json:"tier,omitempty"`
	BedroomCount       *int                    `json:"bedroom_count,omitempty"`
	PrimaryBathCount   *int                    `json:"primary_bath_count,omitempty"`
	SecondaryBathCount *int                    `json:"secondary_bath_count,omitempty"`
	PowderRoomCount    *int                    `json:"powder_room_count,omitempty"`
	Rooms              map[string]RoomDocument `json:"rooms,omitempty"`
	Trades             map[string]*string      `json:"trades,omitempty"`

	// AdditionalParameters is accepted for older clients and kept with saved
	// documents. Pricing ignores it.
	AdditionalParameters map[string]any `json:"additional_parameters,omitempty"`
}

// RoomDocument defines a room in the project document.
type RoomDocument struct {
	Name          string                       `json:"name"`
	Type          string                       `json:"type"`
	SquareFootage *float64                     `json:"square_footage"`
	Tier          *string                      `json:"tier,omitempty"`
	Trades        map[string]RoomTradeDocument `json:"trades,omitempty"`
}

// RoomTradeDocument pins a trade inside a room.
type RoomTradeDocument struct {
	Tier *string `json:"tier,omitempty"`
}

// LoadProjectDocument reads and parses a project JSON file.
func LoadProjectDocument(path string) (*ProjectDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := ParseProjectDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// ParseProjectDocument decodes a project document from JSON.
func ParseProjectDocument(data []byte) (*ProjectDocument, error) {
	return DecodeProjectDocument(bytes.NewReader(data))
}

// DecodeProjectDocument decodes a single project document from r. Unknown
// fields are rejected so that misspelt keys do not silently fall back to
// inherited tiers.
func DecodeProjectDocument(r io.Reader) (*ProjectDocument, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var doc ProjectDocument
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing project document: %w", err)
	}
	return &doc, nil
}

// Marshal renders the document as indented JSON.
func (d *ProjectDocument) Marshal() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}
