package qr

import (
	"bytes"
	"testing"
)

func TestNewGenerator_ForcesHTTPS(t *testing.T) {
	cases := map[string]string{
		"http://pos.example.com":            "https://pos.example.com",
		"pos.example.com":                   "https://pos.example.com",
		"https://pos.example.com:8443/a?b=c": "https://pos.example.com:8443",
		"  https://pos.example.com/  ":      "https://pos.example.com",
	}
	for in, want := range cases {
		g, err := NewGenerator(in)
		if err != nil {
			t.Fatalf("NewGenerator(%q): %v", in, err)
		}
		if g.Origin() != want {
			t.Errorf("NewGenerator(%q).Origin() = %q, want %q", in, g.Origin(), want)
		}
	}
}

func TestNewGenerator_RejectsEmpty(t *testing.T) {
	if _, err := NewGenerator(""); err == nil {
		t.Fatal("expected error for empty origin")
	}
}

func TestCanonicalURL(t *testing.T) {
	g, _ := NewGenerator("http://pos.example.com")

	got := g.CanonicalURL(7)
	if got != "https://pos.example.com/menu/7" {
		t.Fatalf("unexpected url %q", got)
	}
	if again := g.CanonicalURL(7); again != got {
		t.Fatalf("CanonicalURL not idempotent: %q vs %q", got, again)
	}
}

func TestCanonicalURL_Override(t *testing.T) {
	g, _ := NewGenerator("pos.example.com")

	if got := g.CanonicalURL(3, "http://localhost:5173/"); got != "http://localhost:5173/menu/3" {
		t.Fatalf("override not honoured: %q", got)
	}
	if got := g.CanonicalURL(3, ""); got != "https://pos.example.com/menu/3" {
		t.Fatalf("blank override should fall back to origin: %q", got)
	}
}

func TestPNG(t *testing.T) {
	g, _ := NewGenerator("pos.example.com")

	png, err := g.PNG(12, 0)
	if err != nil {
		t.Fatalf("PNG: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Fatalf("expected PNG signature")
	}
}
