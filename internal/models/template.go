package models

import (
	"fmt"
	"time"
)

// PlaceholderType constrains the input control a placeholder expects
type PlaceholderType string

const (
	PlaceholderTypeText   PlaceholderType = "text"
	PlaceholderTypeDate   PlaceholderType = "date"
	PlaceholderTypeNumber PlaceholderType = "number"
)

// Placeholder is one named slot in a template, e.g. key "{{ClientName}}"
type Placeholder struct {
	Key   string          `json:"key"`
	Label string          `json:"label"`
	Type  PlaceholderType `json:"type"`
}

// Template represents an uploaded document shell with recognized placeholders.
// The generation engine only consumes ID and Name; placeholders inform callers
// which DataRow keys to populate.
type Template struct {
	ID           string        `json:"id" badgerhold:"key"`
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Category     string        `json:"category"`
	Version      string        `json:"version"`
	FileName     string        `json:"file_name"` // Original uploaded file name
	UploadDate   time.Time     `json:"upload_date"`
	Placeholders []Placeholder `json:"placeholders"`
}

// Validate validates template integrity before persistence
func (t *Template) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("template ID is required")
	}
	if t.Name == "" {
		return fmt.Errorf("template name is required")
	}
	return nil
}

// Clone returns a copy of the template safe to hand to readers
func (t *Template) Clone() *Template {
	clone := *t
	if t.Placeholders != nil {
		clone.Placeholders = make([]Placeholder, len(t.Placeholders))
		copy(clone.Placeholders, t.Placeholders)
	}
	return &clone
}

// TemplateCategories are the known catalog categories
var TemplateCategories = []string{
	"Legal Agreements",
	"Client Contracts",
	"Real Estate",
	"Internal Memos",
	"Other",
}
