package hierarchy

import (
	"bytes"
	_ "embed"
	"fmt"
)

//go:embed data/foods.toml
var foodsTOML []byte

// DefaultRoot is the root label of the built-in dataset.
const DefaultRoot = "Food Categories"

// Default returns the built-in food dataset: six top-level categories, their
// subcategories, and three to five products below each subcategory.
//
// Each call decodes a fresh copy, so callers may modify the result.
func Default() (*Spec, error) {
	spec, err := Decode(bytes.NewReader(foodsTOML), FormatTOML)
	if err != nil {
		return nil, fmt.Errorf("built-in dataset: %w", err)
	}
	return spec, nil
}
