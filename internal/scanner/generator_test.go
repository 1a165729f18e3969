package scanner

import (
	"testing"
)

func TestUriGeneratorShardsPartitionTheWordlist(t *testing.T) {
	words := []string{"a", "b", "c", "d", "e", "f", "g"}
	const shardCount = 3

	seen := make(map[string]bool)
	for shard := 0; shard < shardCount; shard++ {
		gen := NewUriGenerator("http://example.com/", "", "", words, shard, shardCount, 0, 0, nil, false)
		for {
			url, ok := gen.Next()
			if !ok {
				break
			}
			word := url[len("http://example.com/"):]
			if seen[word] {
				t.Fatalf("word %q produced by more than one shard", word)
			}
			seen[word] = true
		}
	}

	if len(seen) != len(words) {
		t.Fatalf("shards together produced %d words, want %d", len(seen), len(words))
	}
	for _, w := range words {
		if !seen[w] {
			t.Errorf("word %q never produced by any shard", w)
		}
	}
}

func TestUriGeneratorAppliesPrefixAndExtension(t *testing.T) {
	gen := NewUriGenerator("http://example.com/", "secret-", ".php", []string{"admin"}, 0, 1, 0, 0, nil, false)
	url, ok := gen.Next()
	if !ok {
		t.Fatal("expected one candidate")
	}
	want := "http://example.com/secret-admin.php"
	if url != want {
		t.Errorf("Next() = %q, want %q", url, want)
	}
	if _, ok := gen.Next(); ok {
		t.Error("expected generator to be exhausted after one word")
	}
}

func TestUriGeneratorExtensionSubstitution(t *testing.T) {
	gen := NewUriGenerator("http://example.com/", "", ".bak", []string{"config.json"}, 0, 1, 0, 0, nil, true)
	url, _ := gen.Next()
	want := "http://example.com/config.bak"
	if url != want {
		t.Errorf("Next() with extension substitution = %q, want %q", url, want)
	}
}

func TestUriGeneratorPreservesWordlistOrder(t *testing.T) {
	words := []string{"z", "y", "x", "w"}
	gen := NewUriGenerator("http://example.com/", "", "", words, 0, 1, 0, 0, nil, false)

	for _, want := range words {
		url, ok := gen.Next()
		if !ok {
			t.Fatalf("generator exhausted early, expected %q next", want)
		}
		if got := url[len("http://example.com/"):]; got != want {
			t.Errorf("Next() = %q, want %q", got, want)
		}
	}
}
