package blocklist

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed terms.json
var embedded []byte

type seedFile struct {
	Version int      `json:"version"`
	Terms   []string `json:"terms"`
}

// DefaultTerms returns the embedded seed term list. Operators extend or
// replace it through engine settings; the seed keeps a fresh install safe
func DefaultTerms() ([]string, error) {
	var f seedFile
	if err := json.Unmarshal(embedded, &f); err != nil {
		return nil, fmt.Errorf("blocklist: parse terms.json: %w", err)
	}
	return f.Terms, nil
}
