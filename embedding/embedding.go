// Package embedding places declaration data at the top of a card's firmware image.
//
// The slot manager locates the declaration by reading backwards from the end of the ROM,
// so any driver code or firmware must come first. The gap in between is filled with
// the erased EPROM value.
package embedding

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/maja42/declrom"
	"github.com/maja42/declrom/internal"
)

// Fill is written between the firmware and the declaration data.
const Fill = 0xFF

// PrintlnFunc is used for logging the embedding progress.
type PrintlnFunc func(format string, args ...interface{})

// Embed writes a ROM image of the given size to out, consisting of the firmware,
// fill bytes and the declaration data at the very end.
//
// decl must be a complete declaration image, as produced by compiler.Compile.
// Embed fails if the declaration is invalid, or if the firmware already ends with declaration data.
//
// A size of 0 creates the smallest possible image without any fill bytes.
//
// logger (optional) is used to report the progress during embedding.
//
// Note that the firmware is seeked to its start before usage,
// meaning the entirety of readable content is embedded. Use io.SectionReader to avoid this.
func Embed(out io.Writer, firmware io.ReadSeeker, decl []byte, size int64, logger PrintlnFunc) error {
	if logger == nil {
		logger = func(string, ...interface{}) {}
	}

	if _, err := declrom.Parse(decl); err != nil {
		return fmt.Errorf("verify declaration: %w", err)
	}
	fwSize, err := getSize(firmware)
	if err != nil {
		return fmt.Errorf("firmware: %w", err)
	}
	if err := verifyFirmware(firmware, fwSize); err != nil {
		return fmt.Errorf("verify firmware: %w", err)
	}

	required := fwSize + int64(len(decl))
	if size == 0 {
		size = required
	}
	if required > size {
		return fmt.Errorf("firmware (%d bytes) and declaration data (%d bytes) exceed the ROM size of %d bytes", fwSize, len(decl), size)
	}

	// Firmware
	logger("Writing firmware (%d bytes)", fwSize)
	if _, err := io.Copy(out, firmware); err != nil {
		return fmt.Errorf("copy firmware: %w", err)
	}
	// Fill
	if fill := size - required; fill > 0 {
		logger("Adding %d fill bytes", fill)
		if _, err := io.Copy(out, io.LimitReader(fillReader{}, fill)); err != nil {
			return fmt.Errorf("write fill: %w", err)
		}
	}
	// Declaration
	logger("Adding declaration data (%d bytes)", len(decl))
	if _, err := out.Write(decl); err != nil {
		return fmt.Errorf("write declaration data: %w", err)
	}
	return nil
}

// EmbedFile embeds the declaration data into the firmware image at the given filepath.
//
// See Embed for more information.
func EmbedFile(out io.Writer, firmwarePath string, decl []byte, size int64, logger PrintlnFunc) error {
	file, err := os.Open(firmwarePath)
	if err != nil {
		return fmt.Errorf("open firmware %q: %w", firmwarePath, err)
	}
	defer file.Close()
	return Embed(out, file, decl, size, logger)
}

// verifyFirmware ensures that the firmware does not already end with declaration data.
// The reader is seeked to the beginning afterwards.
func verifyFirmware(firmware io.ReadSeeker, size int64) error {
	if size >= internal.TrailerSize {
		if _, err := firmware.Seek(size-internal.TrailerSize, io.SeekStart); err != nil {
			return err
		}
		var raw [internal.TrailerSize]byte
		if _, err := io.ReadFull(firmware, raw[:]); err != nil {
			return err
		}
		if internal.ReadTrailer(raw[:]).TestPattern == internal.TestPattern {
			return errors.New("already contains declaration data")
		}
	}
	if _, err := firmware.Seek(0, io.SeekStart); err != nil {
		return err
	}
	return nil
}

// getSize returns the size of the readable content.
// The reader is seeked to the beginning afterwards.
func getSize(r io.ReadSeeker) (int64, error) {
	size, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, err
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}
	return size, nil
}

type fillReader struct{}

func (fillReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = Fill
	}
	return len(p), nil
}
