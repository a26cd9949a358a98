package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// DOTHash returns the hex SHA-256 of a Graphviz DOT source. Two renders of
// the same tree with the same diagram options share it.
func DOTHash(dot string) string {
	sum := sha256.Sum256([]byte(dot))
	return hex.EncodeToString(sum[:])
}

// Keyer builds cache keys.
type Keyer interface {
	// DiagramKey identifies a rendered diagram by its DOT source hash and
	// output options.
	DiagramKey(dotHash string, opts DiagramKeyOpts) string
}

// DiagramKeyOpts are the render options that change diagram bytes.
type DiagramKeyOpts struct {
	Format string
	Scale  float64 // raster scale; zero for vector formats
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a [DefaultKeyer].
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// DiagramKey implements [Keyer]. Keys read "diagram:<format>:<hash>", with
// "@<scale>" after the format for raster output.
func (DefaultKeyer) DiagramKey(dotHash string, opts DiagramKeyOpts) string {
	format := opts.Format
	if opts.Scale != 0 {
		format += "@" + strconv.FormatFloat(opts.Scale, 'g', -1, 64)
	}
	return "diagram:" + format + ":" + dotHash
}

// ScopedKeyer wraps a Keyer with a prefix, so several deployments can share
// one Redis instance.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "foodtree:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// DiagramKey generates a prefixed diagram key.
func (k *ScopedKeyer) DiagramKey(dotHash string, opts DiagramKeyOpts) string {
	return k.prefix + k.inner.DiagramKey(dotHash, opts)
}
