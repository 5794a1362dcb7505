package imagemeta

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	exif "github.com/dsoprea/go-exif/v3"

	"github.com/subha54820/Scam-Shield/internal/model"
)

// MaxScreenshotSize is the largest file ReadScreenshot accepts.
const MaxScreenshotSize = 10 << 20

var (
	// ErrTooLarge is returned for files over MaxScreenshotSize.
	ErrTooLarge = errors.New("screenshot is larger than 10 MB")
	// ErrNotImage is returned when the file content is not a known image format.
	ErrNotImage = errors.New("screenshot is not a JPEG, PNG, GIF or WebP image")
)

// Kind groups EXIF tags by what they reveal.
type Kind string

// Warning kinds, most sensitive first.
const (
	KindLocation Kind = "location"
	KindSerial   Kind = "serial"
	KindAuthor   Kind = "author"
	KindDevice   Kind = "device"
	KindTime     Kind = "time"
	KindSoftware Kind = "software"
)

// Warning is one privacy-relevant tag found in an image.
type Warning struct {
	Kind  Kind
	Tag   string
	Value string
}

// String formats the warning for the terminal.
func (w Warning) String() string {
	return fmt.Sprintf("%s (%s: %s)", w.Kind.describe(), w.Tag, w.Value)
}

func (k Kind) describe() string {
	switch k {
	case KindLocation:
		return "GPS location of the photo"
	case KindSerial:
		return "device serial number"
	case KindAuthor:
		return "author name"
	case KindDevice:
		return "phone or camera model"
	case KindTime:
		return "time the photo was taken"
	case KindSoftware:
		return "editing software"
	default:
		return string(k)
	}
}

var tagKinds = map[string]Kind{
	"GPSLatitude":        KindLocation,
	"GPSLongitude":       KindLocation,
	"GPSLatitudeRef":     KindLocation,
	"GPSLongitudeRef":    KindLocation,
	"GPSAltitude":        KindLocation,
	"SerialNumber":       KindSerial,
	"CameraSerialNumber": KindSerial,
	"BodySerialNumber":   KindSerial,
	"LensSerialNumber":   KindSerial,
	"Artist":             KindAuthor,
	"Author":             KindAuthor,
	"Copyright":          KindAuthor,
	"XPAuthor":           KindAuthor,
	"Make":               KindDevice,
	"Model":              KindDevice,
	"HostComputer":       KindDevice,
	"DateTimeOriginal":   KindTime,
	"DateTimeDigitized":  KindTime,
	"DateTime":           KindTime,
	"Software":           KindSoftware,
	"ProcessingSoftware": KindSoftware,
}

// Inspect returns a warning for every privacy-relevant EXIF tag in data,
// in file order. Images without EXIF yield no warnings and no error.
func Inspect(data []byte) ([]Warning, error) {
	raw, err := exif.SearchAndExtractExif(data)
	if err != nil {
		if errors.Is(err, exif.ErrNoExif) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read image metadata: %w", err)
	}

	entries, _, err := exif.GetFlatExifData(raw, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to parse image metadata: %w", err)
	}

	var warnings []Warning
	for _, e := range entries {
		kind, ok := tagKinds[e.TagName]
		if !ok {
			continue
		}
		warnings = append(warnings, Warning{
			Kind:  kind,
			Tag:   e.TagName,
			Value: strings.TrimSpace(e.Formatted),
		})
	}
	return warnings, nil
}

// HasLocation reports whether any warning reveals where the photo was taken.
func HasLocation(warnings []Warning) bool {
	for _, w := range warnings {
		if w.Kind == KindLocation {
			return true
		}
	}
	return false
}

// ReadScreenshot loads an image for upload. The file name sent to the
// backend is the base name of path.
func ReadScreenshot(path string) (*model.Screenshot, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open screenshot: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxScreenshotSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read screenshot: %w", err)
	}
	if len(data) > MaxScreenshotSize {
		return nil, ErrTooLarge
	}
	if !isImage(data) {
		return nil, ErrNotImage
	}
	return &model.Screenshot{Filename: filepath.Base(path), Data: data}, nil
}

func isImage(data []byte) bool {
	switch http.DetectContentType(data) {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}
