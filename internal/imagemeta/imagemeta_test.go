package imagemeta

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// TIFF field types used by the fixtures.
const (
	typeASCII    = 2
	typeLong     = 4
	typeRational = 5
)

type tiffEntry struct {
	tag   uint16
	typ   uint16
	count uint32
	data  []byte
}

func asciiEntry(tag uint16, s string) tiffEntry {
	b := append([]byte(s), 0)
	return tiffEntry{tag: tag, typ: typeASCII, count: uint32(len(b)), data: b}
}

func longEntry(tag uint16, v uint32) tiffEntry {
	return tiffEntry{tag: tag, typ: typeLong, count: 1, data: binary.LittleEndian.AppendUint32(nil, v)}
}

func rationalEntry(tag uint16, pairs ...uint32) tiffEntry {
	var b []byte
	for _, v := range pairs {
		b = binary.LittleEndian.AppendUint32(b, v)
	}
	return tiffEntry{tag: tag, typ: typeRational, count: uint32(len(pairs) / 2), data: b}
}

// encodeIFD lays out an IFD at offset base with its out-of-line values
// directly after it.
func encodeIFD(base uint32, entries []tiffEntry) []byte {
	le := binary.LittleEndian
	head := 2 + 12*len(entries) + 4

	var out, extra []byte
	out = le.AppendUint16(out, uint16(len(entries)))
	for _, e := range entries {
		out = le.AppendUint16(out, e.tag)
		out = le.AppendUint16(out, e.typ)
		out = le.AppendUint32(out, e.count)
		if len(e.data) <= 4 {
			inline := make([]byte, 4)
			copy(inline, e.data)
			out = append(out, inline...)
			continue
		}
		out = le.AppendUint32(out, base+uint32(head+len(extra)))
		extra = append(extra, e.data...)
		if len(extra)%2 == 1 {
			extra = append(extra, 0)
		}
	}
	out = le.AppendUint32(out, 0)
	return append(out, extra...)
}

// jpegWithEXIF returns a JPEG prefix followed by an APP1 EXIF segment whose
// IFD0 holds ifd0 and, when gps is not empty, a GPS IFD.
func jpegWithEXIF(ifd0, gps []tiffEntry) []byte {
	const ifd0Offset = 8

	if len(gps) > 0 {
		// The GPS pointer is the last IFD0 entry; size IFD0 with a placeholder first.
		probe := encodeIFD(ifd0Offset, append(append([]tiffEntry{}, ifd0...), longEntry(0x8825, 0)))
		gpsOffset := uint32(ifd0Offset + len(probe))
		ifd0 = append(append([]tiffEntry{}, ifd0...), longEntry(0x8825, gpsOffset))
	}

	tiff := []byte{'I', 'I', 0x2A, 0x00, 0x08, 0x00, 0x00, 0x00}
	tiff = append(tiff, encodeIFD(ifd0Offset, ifd0)...)
	if len(gps) > 0 {
		tiff = append(tiff, encodeIFD(uint32(len(tiff)), gps)...)
	}

	payload := append([]byte("Exif\x00\x00"), tiff...)
	seg := []byte{0xFF, 0xD8, 0xFF, 0xE1}
	seg = binary.BigEndian.AppendUint16(seg, uint16(len(payload)+2))
	seg = append(seg, payload...)
	return append(seg, 0xFF, 0xD9)
}

func TestInspect(t *testing.T) {
	t.Parallel()

	t.Run("reports device time and location", func(t *testing.T) {
		t.Parallel()

		img := jpegWithEXIF(
			[]tiffEntry{
				asciiEntry(0x010F, "ScamCam"),
				asciiEntry(0x0110, "X1"),
				asciiEntry(0x0132, "2026:01:02 03:04:05"),
			},
			[]tiffEntry{
				asciiEntry(0x0001, "N"),
				rationalEntry(0x0002, 20, 1, 17, 1, 0, 1),
			},
		)

		warnings, err := Inspect(img)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		kinds := map[Kind]bool{}
		tags := map[string]string{}
		for _, w := range warnings {
			kinds[w.Kind] = true
			tags[w.Tag] = w.Value
		}
		for _, k := range []Kind{KindDevice, KindTime, KindLocation} {
			if !kinds[k] {
				t.Errorf("missing %s warning in %+v", k, warnings)
			}
		}
		if tags["Make"] != "ScamCam" {
			t.Errorf("Make = %q, want ScamCam", tags["Make"])
		}
		if !HasLocation(warnings) {
			t.Error("HasLocation() = false, want true")
		}
	})

	t.Run("ignores harmless tags", func(t *testing.T) {
		t.Parallel()

		img := jpegWithEXIF([]tiffEntry{asciiEntry(0x010E, "holiday")}, nil)
		warnings, err := Inspect(img)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(warnings) != 0 {
			t.Errorf("warnings = %+v, want none", warnings)
		}
	})

	t.Run("no exif", func(t *testing.T) {
		t.Parallel()

		warnings, err := Inspect(pngHeader())
		if err != nil || warnings != nil {
			t.Errorf("Inspect(png) = %v, %v; want nil, nil", warnings, err)
		}
	})
}

func TestWarningString(t *testing.T) {
	t.Parallel()

	w := Warning{Kind: KindLocation, Tag: "GPSLatitude", Value: "[20/1 17/1 0/1]"}
	if got, want := w.String(), "GPS location of the photo (GPSLatitude: [20/1 17/1 0/1])"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func pngHeader() []byte {
	return append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 32)...)
}

func TestReadScreenshot(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write := func(t *testing.T, name string, data []byte) string {
		t.Helper()
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, data, 0o600); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}
		return p
	}

	t.Run("png", func(t *testing.T) {
		t.Parallel()

		shot, err := ReadScreenshot(write(t, "proof.png", pngHeader()))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if shot.Filename != "proof.png" || len(shot.Data) != len(pngHeader()) {
			t.Errorf("ReadScreenshot() = %q, %d bytes", shot.Filename, len(shot.Data))
		}
	})

	t.Run("text file", func(t *testing.T) {
		t.Parallel()

		_, err := ReadScreenshot(write(t, "notes.txt", []byte("not an image at all")))
		if !errors.Is(err, ErrNotImage) {
			t.Errorf("error = %v, want ErrNotImage", err)
		}
	})

	t.Run("too large", func(t *testing.T) {
		t.Parallel()

		big := append(pngHeader(), make([]byte, MaxScreenshotSize)...)
		_, err := ReadScreenshot(write(t, "big.png", big))
		if !errors.Is(err, ErrTooLarge) {
			t.Errorf("error = %v, want ErrTooLarge", err)
		}
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()

		if _, err := ReadScreenshot(filepath.Join(dir, "nope.jpg")); err == nil {
			t.Error("expected error for missing file")
		}
	})
}
