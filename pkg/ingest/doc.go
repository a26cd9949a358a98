// Package ingest derives a category hierarchy from an Open Food Facts
// products export.
//
// The export is a tab-separated file with one product per row. Two columns
// are used: countries_tags (a comma-separated list such as
// "en:united-states,en:canada") and categories_tags (an ordered,
// comma-separated list running from the broadest category to the most
// specific, such as "en:snacks,en:chips,en:tortilla-chips").
//
// For every product sold in the configured country, consecutive category
// tags become parent-child pairs. Tags are normalized to display labels:
//
//	en:tortilla-chips  ->  Tortilla Chips
//
// Products disagree with each other, so the raw pairs rarely form a tree.
// The first pair seen for a child wins; later pairs that would give it a
// second parent, or close a cycle, are dropped and counted in [Stats].
// Labels left without a parent hang directly below the configured root.
//
// The result is a [hierarchy.Spec] ready for [hierarchy.Build] or
// [hierarchy.Save].
//
// [hierarchy.Spec]: github.com/matzehuels/foodtree/pkg/hierarchy.Spec
// [hierarchy.Build]: github.com/matzehuels/foodtree/pkg/hierarchy.Build
// [hierarchy.Save]: github.com/matzehuels/foodtree/pkg/hierarchy.Save
package ingest
