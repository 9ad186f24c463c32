package display

import (
	"encoding/json"
	"io"

	"github.com/gnomegl/gitvouch/internal/models"
)

// Report is the machine-readable form of a full run.
type Report struct {
	Profile      *models.Profile           `json:"profile"`
	Timeline     models.Timeline           `json:"timeline"`
	Authenticity *models.AuthenticityScore `json:"authenticity,omitempty"`
}

// ExportJSON writes the report as indented JSON.
func ExportJSON(w io.Writer, report Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}
