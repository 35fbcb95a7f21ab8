package compiler

import (
	"go.uber.org/zap"

	"github.com/maja42/declrom/internal"
)

// Compile encodes the directory into a complete declaration ROM image.
func Compile(dir Directory) ([]byte, error) {
	enc, err := AssembleDirectory(dir)
	if err != nil {
		return nil, err
	}
	return BuildImage(enc)
}

// BuildImage appends the trailer (=format block) to the assembled directory
// and patches the image checksum into it.
//
// The checksum covers the whole image, including the trailer itself.
// Its own field is zero while the checksum is computed.
func BuildImage(dir EncodedDirectory) ([]byte, error) {
	// the offset field is the first field of the trailer, directly after the directory
	dirOffset := dir.TableOffset - dir.Len()
	if !internal.FitsOffset(dirOffset) {
		return nil, OffsetOverflow([]string{"trailer"}, dirOffset)
	}

	img := make([]byte, dir.Len(), dir.Len()+internal.TrailerSize)
	copy(img, dir.Data)

	img = internal.Trailer{
		Marker:          internal.DirectoryMarker,
		DirectoryOffset: int32(dirOffset),
		Length:          uint32(dir.Len() + internal.TrailerSize),
		Format:          internal.FormatRevision,
		TestPattern:     internal.TestPattern,
		ByteLanes:       internal.ByteLanes,
	}.AppendTo(img)

	sum := internal.PatchChecksum(img)

	Logger().Debug("built declaration image",
		zap.Int("length", len(img)),
		zap.Int("directoryOffset", dirOffset),
		zap.Uint32("checksum", sum))

	return img, nil
}
