package catalog

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sathishthangasamy/healthcare-product-selector/internal/domain"
)

// EmbeddedPrefix marks a source compiled into the binary, e.g. "embedded:products"
const EmbeddedPrefix = "embedded:"

// EmbeddedProducts is the location of the built-in product catalog
const EmbeddedProducts = EmbeddedPrefix + "products"

//go:embed data/products.csv
var productsRawData []byte

var embedded = map[string][]byte{
	"products": productsRawData,
}

// Reader resolves a catalog location to its raw bytes.
// Locations are embedded names, local file paths or http(s) URLs.
type Reader struct {
	remote domain.RemoteFetcher
}

// NewReader creates a reader; remote may be nil when URLs are not used
func NewReader(remote domain.RemoteFetcher) *Reader {
	return &Reader{remote: remote}
}

// Read returns the contents of location. A location that does not exist yields an
// error wrapping domain.ErrSourceNotFound.
func (r *Reader) Read(ctx context.Context, location string) ([]byte, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, fmt.Errorf("%w: empty location", domain.ErrSourceNotFound)
	}

	switch {
	case strings.HasPrefix(location, EmbeddedPrefix):
		data, ok := embedded[strings.TrimPrefix(location, EmbeddedPrefix)]
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrSourceNotFound, location)
		}
		return data, nil

	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		if r.remote == nil {
			return nil, fmt.Errorf("%w: remote sources are not configured", domain.ErrRemoteFailure)
		}
		return r.remote.Fetch(ctx, location)

	default:
		data, err := os.ReadFile(filepath.Clean(location))
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrSourceNotFound, location)
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", location, err)
		}
		return data, nil
	}
}
