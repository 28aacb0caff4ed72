package reporter

import (
	"encoding/json"

	"pagediff/internal/common"
)

// renderJSON writes a result as indented JSON.
func (r *Reporter) renderJSON(v interface{}) error {
	encoder := json.NewEncoder(r.writer)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(v); err != nil {
		return common.WrapError(err, "failed to encode report as JSON")
	}
	return nil
}
