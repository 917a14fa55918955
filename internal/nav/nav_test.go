package nav

import "testing"

func TestBuildMarksActive(t *testing.T) {
	items := Build("#detailed")
	if len(items) != 4 {
		t.Fatalf("expected 4 items, got %d", len(items))
	}
	for _, it := range items {
		if it.Href != "#"+it.Fragment {
			t.Fatalf("unexpected href %q", it.Href)
		}
		if it.Active != (it.Fragment == "detailed") {
			t.Fatalf("unexpected active flag for %s", it.Fragment)
		}
	}
	for _, it := range Build("") {
		if it.Active {
			t.Fatalf("no item should be active, got %s", it.Fragment)
		}
	}
}

func TestNormalizeBase(t *testing.T) {
	cases := map[string]string{
		"":             "/",
		"/":            "/",
		" linux-boot ": "/linux-boot",
		"/linux-boot/": "/linux-boot",
		"//a//b/":      "/a/b",
	}
	for in, want := range cases {
		if got := NormalizeBase(in); got != want {
			t.Fatalf("NormalizeBase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestJoin(t *testing.T) {
	cases := []struct{ base, p, want string }{
		{"", "", "/"},
		{"/", "/assets/css/site.css", "/assets/css/site.css"},
		{"/linux-boot", "", "/linux-boot/"},
		{"linux-boot/", "assets/js/site.js", "/linux-boot/assets/js/site.js"},
		{"/linux-boot", "/steps/6/", "/linux-boot/steps/6/"},
	}
	for _, tc := range cases {
		if got := Join(tc.base, tc.p); got != tc.want {
			t.Fatalf("Join(%q, %q) = %q, want %q", tc.base, tc.p, got, tc.want)
		}
	}
}

func TestStripBase(t *testing.T) {
	if p, ok := StripBase("/linux-boot", "/linux-boot/steps/3"); !ok || p != "/steps/3" {
		t.Fatalf("unexpected %q %v", p, ok)
	}
	if p, ok := StripBase("/linux-boot", "/linux-boot"); !ok || p != "/" {
		t.Fatalf("unexpected %q %v", p, ok)
	}
	if _, ok := StripBase("/linux-boot", "/linux-bootx/steps"); ok {
		t.Fatalf("expected prefix boundary to be respected")
	}
	if p, ok := StripBase("", "/x"); !ok || p != "/x" {
		t.Fatalf("root base should pass through")
	}
}
