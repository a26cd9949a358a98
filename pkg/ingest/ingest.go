package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	apperrors "github.com/matzehuels/foodtree/pkg/errors"
	"github.com/matzehuels/foodtree/pkg/hierarchy"
)

// Column names read from the export.
const (
	ColumnCountries  = "countries_tags"
	ColumnCategories = "categories_tags"
)

// Defaults applied to zero-valued [Options] fields.
const (
	DefaultCountry = "en:united-states"
	DefaultRoot    = hierarchy.DefaultRoot
)

// ctxCheckEvery is how many rows are read between context checks.
const ctxCheckEvery = 1024

// Options configures ingestion.
type Options struct {
	// Country is the country tag a product must carry to be kept.
	Country string
	// Root is the label every top-level category is attached to.
	Root string
}

func (o Options) withDefaults() Options {
	if o.Country == "" {
		o.Country = DefaultCountry
	}
	if o.Root == "" {
		o.Root = DefaultRoot
	}
	return o
}

// Stats counts what happened to the input.
type Stats struct {
	Rows       int `json:"rows"`       // data rows read
	Kept       int `json:"kept"`       // rows matching the country with categories
	Pairs      int `json:"pairs"`      // distinct parent-child pairs accepted
	Duplicates int `json:"duplicates"` // repeated pairs
	Conflicts  int `json:"conflicts"`  // pairs dropped for a second parent
	Cycles     int `json:"cycles"`     // pairs dropped for closing a cycle
	TopLevel   int `json:"top_level"`  // labels attached to the root
}

// Result is the outcome of an ingestion run.
type Result struct {
	Spec  *hierarchy.Spec
	Stats Stats
}

// File ingests the export at path.
func File(ctx context.Context, path string, opts Options) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()
	return Read(ctx, f, opts)
}

// Read ingests an export from r.
func Read(ctx context.Context, r io.Reader, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	if err := apperrors.ValidateLabel(opts.Root); err != nil {
		return nil, err
	}

	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "read header")
	}
	countryCol, categoryCol := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case ColumnCountries:
			countryCol = i
		case ColumnCategories:
			categoryCol = i
		}
	}
	if countryCol < 0 || categoryCol < 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidFormat,
			"export must have %s and %s columns", ColumnCountries, ColumnCategories)
	}

	acc := newAccumulator(opts.Root)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "read row %d", acc.stats.Rows+1)
		}
		acc.stats.Rows++
		if acc.stats.Rows%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		if countryCol >= len(rec) || categoryCol >= len(rec) {
			continue
		}
		if !hasTag(rec[countryCol], opts.Country) {
			continue
		}
		labels := Labels(rec[categoryCol])
		if len(labels) == 0 {
			continue
		}
		acc.stats.Kept++
		acc.addChain(labels)
	}

	spec := acc.spec()
	return &Result{Spec: spec, Stats: acc.stats}, nil
}

func hasTag(list, tag string) bool {
	for t := range strings.SplitSeq(list, ",") {
		if strings.TrimSpace(t) == tag {
			return true
		}
	}
	return false
}

var titleCaser = cases.Title(language.English)

// Normalize turns a category tag into a display label: the language
// prefix is dropped, hyphens become spaces and words are title-cased.
// It returns "" for tags with no text.
func Normalize(tag string) string {
	tag = strings.TrimSpace(tag)
	if i := strings.IndexByte(tag, ':'); i >= 0 {
		tag = tag[i+1:]
	}
	tag = strings.Join(strings.Fields(strings.ReplaceAll(tag, "-", " ")), " ")
	if tag == "" {
		return ""
	}
	return titleCaser.String(strings.ToLower(tag))
}

// Labels normalizes a comma-separated tag list, dropping empty entries and
// immediate repeats.
func Labels(list string) []string {
	var out []string
	for tag := range strings.SplitSeq(list, ",") {
		label := Normalize(tag)
		if label == "" || apperrors.ValidateLabel(label) != nil {
			continue
		}
		if len(out) > 0 && out[len(out)-1] == label {
			continue
		}
		out = append(out, label)
	}
	return out
}

// accumulator collects accepted pairs while keeping them a forest.
type accumulator struct {
	root   string
	parent map[string]string
	seen   map[string]bool
	order  []string // labels in first-seen order
	pairs  []hierarchy.Pair
	stats  Stats
}

func newAccumulator(root string) *accumulator {
	return &accumulator{
		root:   root,
		parent: make(map[string]string),
		seen:   map[string]bool{root: true},
	}
}

func (a *accumulator) addChain(labels []string) {
	for _, l := range labels {
		if !a.seen[l] {
			a.seen[l] = true
			a.order = append(a.order, l)
		}
	}
	for i := 1; i < len(labels); i++ {
		a.addPair(labels[i-1], labels[i])
	}
}

func (a *accumulator) addPair(parent, child string) {
	if p, ok := a.parent[child]; ok {
		if p == parent {
			a.stats.Duplicates++
		} else {
			a.stats.Conflicts++
		}
		return
	}
	if child == a.root || a.isAncestorOrSelf(child, parent) {
		a.stats.Cycles++
		return
	}
	a.parent[child] = parent
	a.pairs = append(a.pairs, hierarchy.Pair{Parent: parent, Child: child})
	a.stats.Pairs++
}

func (a *accumulator) isAncestorOrSelf(candidate, label string) bool {
	for {
		if label == candidate {
			return true
		}
		p, ok := a.parent[label]
		if !ok {
			return false
		}
		label = p
	}
}

func (a *accumulator) spec() *hierarchy.Spec {
	edges := make([]hierarchy.Pair, 0, len(a.order)+len(a.pairs))
	for _, l := range a.order {
		if _, ok := a.parent[l]; ok {
			continue
		}
		if l == a.root {
			continue
		}
		edges = append(edges, hierarchy.Pair{Parent: a.root, Child: l})
		a.stats.TopLevel++
	}
	edges = append(edges, a.pairs...)
	return &hierarchy.Spec{Root: a.root, Edges: edges}
}
