package errors

import (
	"strings"
	"testing"
)

func TestValidateLabel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "Snacks", false},
		{"with ampersand", "Fruits & Vegetables", false},
		{"with digits and dash", "5-Hour Energy", false},
		{"unicode", "Crème Fraîche", false},

		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"too long", strings.Repeat("a", MaxLabelLength+1), true},
		{"multibyte at limit", strings.Repeat("é", MaxLabelLength), false},
		{"multibyte over limit", strings.Repeat("é", MaxLabelLength+1), true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
		{"tab", "foo\tbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLabel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLabel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidLabel) {
				t.Errorf("ValidateLabel(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidLabel)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "foods.toml", false},
		{"absolute", "/etc/foodtree/foods.yaml", false},
		{"nested", "data/en.openfoodfacts.org.products.tsv", false},

		{"empty", "", true},
		{"null byte", "foo\x00.toml", true},
		{"control char", "foo\x01.toml", true},
		{"too long", strings.Repeat("a", 5000), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"foods.toml", "toml", false},
		{"foods.YAML", "yaml", false},
		{"foods.yml", "yaml", false},
		{"foods.json", "json", false},
		{"foods.csv", "", true},
		{"foods", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path, "toml", "yaml", "json")
			if (err != nil) != tt.wantErr {
				t.Fatalf("FormatFromPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
			if err != nil && !Is(err, ErrCodeInvalidFormat) {
				t.Errorf("FormatFromPath(%q) code = %v, want %v", tt.path, GetCode(err), ErrCodeInvalidFormat)
			}
		})
	}
}
