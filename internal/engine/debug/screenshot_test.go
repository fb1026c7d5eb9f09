package debug

import (
	"errors"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/image/bmp"
)

func fixedClock() time.Time {
	return time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
}

// twoRows returns a 2x2 image with a red bottom row in GL order.
func twoRows() []byte {
	return []byte{
		255, 0, 0, 255, 255, 0, 0, 255, // bottom
		0, 0, 255, 255, 0, 0, 255, 255, // top
	}
}

func TestCaptureFromPixelsPNG(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	sc, err := NewScreenshotCapture(dir, "hexview", "")
	if err != nil {
		t.Fatalf("NewScreenshotCapture() error = %v", err)
	}
	sc.now = fixedClock

	name, err := sc.CaptureFromPixels(twoRows(), 2, 2)
	if err != nil {
		t.Fatalf("CaptureFromPixels() error = %v", err)
	}
	if want := filepath.Join(dir, "hexview_2024-05-01_12-30-00.000.png"); name != want {
		t.Errorf("name = %q, want %q", name, want)
	}

	f, err := os.Open(name)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, format, err := image.Decode(f)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if format != "png" {
		t.Errorf("format = %q, want png", format)
	}
	if r, _, b, _ := img.At(0, 0).RGBA(); b == 0 || r != 0 {
		t.Error("top-left pixel should be blue after the flip")
	}
	if r, _, _, _ := img.At(0, 1).RGBA(); r == 0 {
		t.Error("bottom-left pixel should be red after the flip")
	}
}

func TestCaptureFromPixelsBMP(t *testing.T) {
	sc, err := NewScreenshotCapture(t.TempDir(), "hexview", "bmp")
	if err != nil {
		t.Fatalf("NewScreenshotCapture() error = %v", err)
	}
	name, err := sc.CaptureFromPixels(twoRows(), 2, 2)
	if err != nil {
		t.Fatalf("CaptureFromPixels() error = %v", err)
	}
	f, err := os.Open(name)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := bmp.Decode(f)
	if err != nil {
		t.Fatalf("bmp.Decode() error = %v", err)
	}
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 2 {
		t.Errorf("bounds = %v, want 2x2", img.Bounds())
	}
}

func TestCaptureSizeMismatch(t *testing.T) {
	sc, _ := NewScreenshotCapture(t.TempDir(), "x", "png")
	if _, err := sc.CaptureFromPixels(make([]byte, 7), 2, 2); err == nil {
		t.Error("CaptureFromPixels() with short data should fail")
	}
}

func TestUnknownFormat(t *testing.T) {
	if _, err := NewScreenshotCapture("", "x", "gif"); !errors.Is(err, ErrUnknownImageFormat) {
		t.Errorf("error = %v, want ErrUnknownImageFormat", err)
	}
}
