package scanner

import "strings"

// UriGenerator produces the lazy, sharded sequence of candidate URLs for
// one (directory, prefix, extension, shard) tuple. It is finite and not
// restartable once consumed.
type UriGenerator struct {
	baseDirURL  string
	prefix      string
	extension   string
	extSubst    bool
	words       []string
	shardStart  int
	shardCount  int
	next        int
	ParentIndex int
	ParentDepth int
	Validator   *ValidatorProfile
}

// NewUriGenerator builds a generator striping words at indices
// shardStart, shardStart+shardCount, shardStart+2*shardCount, ... across
// the shared, pre-normalized wordlist.
func NewUriGenerator(
	baseDirURL, prefix, extension string,
	words []string,
	shardStart, shardCount int,
	parentIndex, parentDepth int,
	validator *ValidatorProfile,
	extensionSubstitution bool,
) *UriGenerator {
	return &UriGenerator{
		baseDirURL:  baseDirURL,
		prefix:      prefix,
		extension:   extension,
		extSubst:    extensionSubstitution,
		words:       words,
		shardStart:  shardStart,
		shardCount:  shardCount,
		next:        shardStart,
		ParentIndex: parentIndex,
		ParentDepth: parentDepth,
		Validator:   validator,
	}
}

// Next returns the next candidate URL in generator order, or false once
// the shard is exhausted.
func (g *UriGenerator) Next() (string, bool) {
	if g.next >= len(g.words) {
		return "", false
	}
	word := g.words[g.next]
	g.next += g.shardCount

	if g.extSubst && g.extension != "" {
		if idx := strings.LastIndex(word, "."); idx != -1 {
			word = word[:idx]
		}
	}

	// base_dir_url always ends in "/"; concatenation (not URL-library path
	// joining) preserves user-provided percent-encoding exactly.
	return g.baseDirURL + g.prefix + word + g.extension, true
}
