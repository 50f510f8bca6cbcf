package image

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// cborEncMode uses canonical mode for deterministic encoding, so the same
// module state always produces the same bytes.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("image: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// Marshal serializes a ModuleImage to CBOR bytes.
func (img *ModuleImage) Marshal() ([]byte, error) {
	return cborEncMode.Marshal(img)
}

// UnmarshalModuleImage deserializes a ModuleImage from CBOR bytes.
func UnmarshalModuleImage(data []byte) (*ModuleImage, error) {
	var img ModuleImage
	if err := cbor.Unmarshal(data, &img); err != nil {
		return nil, fmt.Errorf("image: unmarshal module image: %w", err)
	}
	return &img, nil
}
