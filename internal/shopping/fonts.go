package shopping

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/go-pdf/fpdf"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
)

var ErrFontUnavailable = errors.New("shopping list font unavailable")

const defaultFontFamily = "GoRegular"

// FontFetcher reads a font file from object storage.
type FontFetcher interface {
	Fetch(ctx context.Context, key string) ([]byte, error)
}

// FontRegistry holds one validated TrueType font. It is built once at
// startup and only read afterwards, so it is safe to share between requests.
type FontRegistry struct {
	family string
	name   string
	ttf    []byte
}

// DefaultFonts uses the embedded Go Regular face (Latin, Greek, Cyrillic).
func DefaultFonts() (*FontRegistry, error) {
	return NewFontRegistry(defaultFontFamily, goregular.TTF)
}

func NewFontRegistry(family string, ttf []byte) (*FontRegistry, error) {
	if family == "" {
		return nil, fmt.Errorf("%w: empty font family", ErrFontUnavailable)
	}
	if len(ttf) == 0 {
		return nil, fmt.Errorf("%w: empty font data", ErrFontUnavailable)
	}

	parsed, err := truetype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("%w: parse ttf: %v", ErrFontUnavailable, err)
	}

	data := make([]byte, len(ttf))
	copy(data, ttf)

	return &FontRegistry{
		family: family,
		name:   parsed.Name(truetype.NameIDFontFullName),
		ttf:    data,
	}, nil
}

func LoadFontFile(path string) (*FontRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrFontUnavailable, path, err)
	}
	return NewFontRegistry("Custom", data)
}

func LoadFontObject(ctx context.Context, fetcher FontFetcher, key string) (*FontRegistry, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("%w: no object storage configured", ErrFontUnavailable)
	}
	data, err := fetcher.Fetch(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch %s: %v", ErrFontUnavailable, key, err)
	}
	return NewFontRegistry("Custom", data)
}

// LoadFonts picks the configured font source: a local file, an object key,
// or the embedded default when neither is set.
func LoadFonts(ctx context.Context, path, key string, fetcher FontFetcher) (*FontRegistry, error) {
	switch {
	case path != "":
		return LoadFontFile(path)
	case key != "":
		return LoadFontObject(ctx, fetcher, key)
	default:
		return DefaultFonts()
	}
}

// Name is the full font name from the TTF name table.
func (r *FontRegistry) Name() string {
	return r.name
}

func (r *FontRegistry) Family() string {
	return r.family
}

// register makes the font available to a single document. fpdf keeps parsed
// fonts inside each Fpdf and cannot share them, so the cached bytes are
// parsed again per document; validation and file or R2 reads happen once in
// the registry constructors.
func (r *FontRegistry) register(pdf *fpdf.Fpdf) error {
	pdf.AddUTF8FontFromBytes(r.family, "", r.ttf)
	if pdf.Err() {
		return fmt.Errorf("%w: %v", ErrFontUnavailable, pdf.Error())
	}
	return nil
}
