package driven

import (
	"io"

	"github.com/custodia-labs/chunkroute/internal/core/domain"
)

// ManifestCodec converts between the manifest file format and domain manifests.
type ManifestCodec interface {
	// Decode reads a whole manifest. Any malformed line fails the decode
	// with domain.ErrMalformedRecord; no partial manifest is returned.
	Decode(r io.Reader) (*domain.Manifest, error)

	// Encode writes the manifest in file format.
	Encode(w io.Writer, manifest *domain.Manifest) error
}
