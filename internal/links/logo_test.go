package links

import "testing"

func TestDomain(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{name: "www prefix stripped", url: "https://www.github.com/foo", want: "github.com"},
		{name: "plain host", url: "https://docs.example.com", want: "docs.example.com"},
		{name: "port dropped", url: "http://localhost:8080/x", want: "localhost"},
		{name: "upper case host", url: "https://WWW.Example.COM", want: "example.com"},
		{name: "www only as prefix", url: "https://foo.www.example.com", want: "foo.www.example.com"},
		{name: "not a url", url: "not a url", want: ""},
		{name: "missing scheme", url: "github.com/foo", want: ""},
		{name: "empty", url: "", want: ""},
		{name: "opaque scheme", url: "mailto:someone@example.com", want: ""},
		{name: "bad escape", url: "https://exa mple.com/%zz", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Domain(tt.url); got != tt.want {
				t.Errorf("Domain(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestResolveLogo(t *testing.T) {
	got := ResolveLogo("https://www.github.com/foo")
	if got.Primary != "https://logo.clearbit.com/github.com" {
		t.Errorf("Primary = %q", got.Primary)
	}
	if got.Fallback != DefaultLogo {
		t.Errorf("Fallback = %q, want DefaultLogo", got.Fallback)
	}
	if got.IsDefault() {
		t.Error("IsDefault() = true for a resolvable domain")
	}

	bad := ResolveLogo("not a url")
	if bad.Primary != DefaultLogo || bad.Fallback != DefaultLogo {
		t.Errorf("ResolveLogo(malformed) = %+v, want default icon for both", bad)
	}
	if !bad.IsDefault() {
		t.Error("IsDefault() = false for a malformed URL")
	}
}

func TestLogoResolver_CustomEndpoint(t *testing.T) {
	r := NewLogoResolver("https://icons.internal/lookup")
	got := r.Resolve("https://example.org/page")
	if got.Primary != "https://icons.internal/lookup/example.org" {
		t.Errorf("Primary = %q", got.Primary)
	}
}

func TestLogoImage_SwapsOnce(t *testing.T) {
	img := NewLogoImage(ResolveLogo("https://example.com"))
	if img.Src() != "https://logo.clearbit.com/example.com" {
		t.Fatalf("initial Src = %q", img.Src())
	}
	if !img.OnError() {
		t.Fatal("first OnError should swap to fallback")
	}
	if img.Src() != DefaultLogo {
		t.Errorf("Src after swap = %q, want DefaultLogo", img.Src())
	}
	if img.OnError() {
		t.Error("second OnError must not swap again")
	}
	if img.OnLoad() {
		t.Error("OnLoad on the fallback must keep placeholder styling")
	}
}

func TestLogoImage_PrimaryLoads(t *testing.T) {
	img := NewLogoImage(ResolveLogo("https://example.com"))
	if !img.OnLoad() {
		t.Error("OnLoad on a real logo should drop placeholder styling")
	}
}

func TestLogoImage_DefaultPrimaryNeverSwaps(t *testing.T) {
	img := NewLogoImage(ResolveLogo("nope"))
	if img.OnError() {
		t.Error("OnError on the default icon must not swap")
	}
	if img.Src() != DefaultLogo {
		t.Errorf("Src = %q", img.Src())
	}
}
