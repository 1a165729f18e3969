package scanner

import "testing"

func TestDepth(t *testing.T) {
	cases := []struct {
		url         string
		parentDepth int
		want        int
	}{
		{"http://example.com/", -1, 2},
		{"http://example.com/a/", 2, 0},
		{"http://example.com/a/b/", 2, 1},
		{"http://example.com/a/b/c/", 2, 2},
	}
	for _, c := range cases {
		if got := Depth(c.url, c.parentDepth); got != c.want {
			t.Errorf("Depth(%q, %d) = %d, want %d", c.url, c.parentDepth, got, c.want)
		}
	}
}

func TestClassificationLetter(t *testing.T) {
	cases := []struct {
		name string
		f    Finding
		want string
	}{
		{"listable directory", Finding{IsDirectory: true, IsListable: true}, "L "},
		{"plain directory", Finding{IsDirectory: true}, "D "},
		{"scraped file", Finding{FoundFromListable: true}, "~ "},
		{"ordinary file", Finding{}, "+ "},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ClassificationLetter(c.f); got != c.want {
				t.Errorf("ClassificationLetter() = %q, want %q", got, c.want)
			}
		})
	}
}

func TestSuffix(t *testing.T) {
	cases := []struct {
		name string
		f    Finding
		want string
	}{
		{
			name: "plain 200",
			f:    Finding{Code: 200, ContentLen: 456},
			want: "(CODE:200|SIZE:456)",
		},
		{
			name: "redirect carries destination",
			f:    Finding{Code: 301, ContentLen: 0, RedirectURL: "http://example.com/dir/"},
			want: "(CODE:301|SIZE:0|DEST:http://example.com/dir/)",
		},
		{
			name: "scraped entry ignores code and size",
			f:    Finding{Code: 200, ContentLen: 123, FoundFromListable: true},
			want: "(SCRAPED)",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Suffix(c.f); got != c.want {
				t.Errorf("Suffix() = %q, want %q", got, c.want)
			}
		})
	}
}

func TestFabricateAlwaysMarksFoundFromListable(t *testing.T) {
	f := fabricate("http://example.com/a/b", false, false, 2, 1)
	if !f.FoundFromListable {
		t.Error("fabricate() should always set FoundFromListable")
	}
	if f.Code != 0 {
		t.Errorf("fabricate() Code = %d, want 0", f.Code)
	}
}
