package outline

import (
	"bytes"
	"testing"

	apperrors "github.com/matzehuels/foodtree/pkg/errors"
	"github.com/matzehuels/foodtree/pkg/tree"
)

func snacks(t *testing.T) *tree.Tree {
	t.Helper()
	tr, err := tree.New("Food")
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range [][2]string{
		{"Food", "Snacks"},
		{"Snacks", "Chips"},
		{"Chips", "Potato Chips"},
		{"Chips", "Tortilla Chips"},
		{"Food", "Dairy"},
	} {
		if err := tr.AddEdge(e[0], e[1]); err != nil {
			t.Fatal(err)
		}
	}
	if err := tr.Freeze(); err != nil {
		t.Fatal(err)
	}
	return tr
}

func TestWrite(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want string
	}{
		{
			name: "full",
			want: "Food\n" +
				"├── Snacks\n" +
				"│   └── Chips\n" +
				"│       ├── Potato Chips\n" +
				"│       └── Tortilla Chips\n" +
				"└── Dairy\n",
		},
		{
			name: "depth limited",
			opts: Options{MaxDepth: 1},
			want: "Food\n" +
				"├── Snacks\n" +
				"└── Dairy\n",
		},
		{
			name: "subtree",
			opts: Options{From: "Chips"},
			want: "Chips\n" +
				"├── Potato Chips\n" +
				"└── Tortilla Chips\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Write(&buf, snacks(t), tt.opts); err != nil {
				t.Fatalf("Write() error = %v", err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("Write() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestWriteUnknownStart(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, snacks(t), Options{From: "Kale"})
	if !apperrors.Is(err, apperrors.ErrCodeNodeNotFound) {
		t.Fatalf("Write() error = %v, want NODE_NOT_FOUND", err)
	}
}

func TestSummary(t *testing.T) {
	got := Summary(snacks(t))
	want := "6 nodes, 5 edges, 2 categories, 3 leaves"
	if got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
}
