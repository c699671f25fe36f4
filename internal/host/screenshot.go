package host

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ErrUnsupportedFormat is returned for screenshot extensions other than
// png, bmp, tif and tiff.
var ErrUnsupportedFormat = errors.New("unsupported screenshot format")

// readFramebuffer reads the back buffer of the current context into an
// image with the top row first.
func readFramebuffer(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadBuffer(gl.BACK)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	flipRows(img.Pix, img.Stride, height)
	return img
}

// flipRows reverses the row order in place. GL returns the bottom row first.
func flipRows(pix []byte, stride, height int) {
	tmp := make([]byte, stride)
	for y := 0; y < height/2; y++ {
		top := pix[y*stride : (y+1)*stride]
		bottom := pix[(height-1-y)*stride : (height-y)*stride]
		copy(tmp, top)
		copy(top, bottom)
		copy(bottom, tmp)
	}
}

func normalizeFormat(format string) string {
	return strings.ToLower(strings.TrimPrefix(format, "."))
}

func supportedFormat(format string) bool {
	switch normalizeFormat(format) {
	case "png", "bmp", "tif", "tiff":
		return true
	}
	return false
}

func encodeImage(w io.Writer, img image.Image, format string) error {
	switch normalizeFormat(format) {
	case "png":
		return png.Encode(w, img)
	case "bmp":
		return bmp.Encode(w, img)
	case "tif", "tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// saveImage writes img to path, picking the encoder from the extension.
func saveImage(path string, img image.Image) (err error) {
	ext := filepath.Ext(path)
	if !supportedFormat(ext) {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	bw := bufio.NewWriter(f)
	if err := encodeImage(bw, img, ext); err != nil {
		return err
	}
	return bw.Flush()
}
