// Package schemas embeds the JSON Schema documents validating content
// record payloads.
package schemas

import (
	"embed"
	"fmt"
)

//go:embed *.schema.json
var FS embed.FS

// Load returns the raw schema document by file name.
func Load(name string) ([]byte, error) {
	data, err := FS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load schema %s: %w", name, err)
	}
	return data, nil
}
