// Package qr derives the canonical menu URL for a table and encodes it as a
// QR image. The pixel encoding itself is delegated to go-qrcode.
package qr

import (
	"fmt"
	"net/url"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// DefaultSize is the PNG edge length in pixels.
const DefaultSize = 256

// Generator builds table URLs against a fixed public origin.
type Generator struct {
	origin string
}

// NewGenerator normalises origin to "https://host[:port]". A bare host is
// accepted; any path, query or fragment is discarded.
func NewGenerator(origin string) (*Generator, error) {
	o, err := secureOrigin(origin)
	if err != nil {
		return nil, err
	}
	return &Generator{origin: o}, nil
}

// Origin returns the normalised origin.
func (g *Generator) Origin() string { return g.origin }

// CanonicalURL returns {origin}/menu/{tableNumber}. When override is
// non-empty it replaces the configured origin verbatim (scheme included).
func (g *Generator) CanonicalURL(tableNumber int, override ...string) string {
	origin := g.origin
	if len(override) > 0 && strings.TrimSpace(override[0]) != "" {
		origin = strings.TrimRight(strings.TrimSpace(override[0]), "/")
	}
	return fmt.Sprintf("%s/menu/%d", origin, tableNumber)
}

// PNG encodes the canonical URL of tableNumber as a QR PNG.
func (g *Generator) PNG(tableNumber, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultSize
	}
	png, err := qrcode.Encode(g.CanonicalURL(tableNumber), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("qr encode table %d: %w", tableNumber, err)
	}
	return png, nil
}

func secureOrigin(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("qr: empty origin")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("qr: parse origin %q: %w", raw, err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("qr: origin %q has no host", raw)
	}
	return "https://" + u.Host, nil
}
