package media

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
)

var supportedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

// IsRasterImage checks if the filename has a common raster image extension
func IsRasterImage(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return supportedImageExtensions[ext]
}

// ProbeImage decodes the upload and reports its pixel dimensions.
// Non-image or corrupt data yields ok=false rather than an error; the
// caller stores the object either way.
func ProbeImage(data []byte) (width, height int, ok bool) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return 0, 0, false
	}
	b := img.Bounds()
	return b.Dx(), b.Dy(), true
}

// TakenAt extracts the EXIF capture time from a photo upload, if any,
// as a Unix timestamp. Missing or malformed EXIF data yields nil.
func TakenAt(data []byte) *int64 {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return nil
	}
	t, err := x.DateTime()
	if err != nil {
		return nil
	}
	ts := t.Unix()
	return &ts
}
