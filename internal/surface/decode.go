package surface

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"

	// Registered decoders. PNG is the usual overlay format; the rest are
	// accepted so any still image with or without alpha can be shown.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	// ErrNotFound means the image path does not resolve to a readable file.
	ErrNotFound = errors.New("image not found")
	// ErrDecode means the file is not a decodable 4-channel image.
	ErrDecode = errors.New("cannot decode image")
)

// Decode reads and decodes the image at path, returning the format name
// reported by the decoder.
func Decode(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, "", fmt.Errorf("%w: %s: %v", ErrNotFound, path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, "", fmt.Errorf("%w: %s: %v", ErrNotFound, path, err)
	}
	if info.IsDir() {
		return nil, "", fmt.Errorf("%w: %s is a directory", ErrNotFound, path)
	}

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %s: %v", ErrDecode, path, err)
	}
	return img, format, nil
}

// Load decodes the image at path and builds its Buffer.
func Load(path string) (*Buffer, error) {
	img, _, err := Decode(path)
	if err != nil {
		return nil, err
	}
	return Build(img)
}
