package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"

	"github.com/ericlevine/hybridbin"
	"github.com/ericlevine/hybridbin/binarizer"
)

func stepBitmap(t *testing.T, width, height int, hybrid bool) *hybridbin.BinaryBitmap {
	t.Helper()
	plane := make([]byte, width*height)
	for i := range plane {
		if i%width < width/2 {
			plane[i] = 20
		} else {
			plane[i] = 230
		}
	}
	source, err := hybridbin.NewPlaneLuminanceSource(plane, width, height)
	if err != nil {
		t.Fatal(err)
	}
	if hybrid {
		return hybridbin.NewBinaryBitmap(binarizer.NewHybrid(source))
	}
	return hybridbin.NewBinaryBitmap(binarizer.NewGlobalHistogram(source))
}

func TestSummarizeHybrid(t *testing.T) {
	r, err := Summarize("step.png", "hybrid", stepBitmap(t, 64, 64, true))
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if r.Fallback {
		t.Error("Fallback = true, want false")
	}
	if r.BlocksWide != 8 || r.BlocksHigh != 8 {
		t.Errorf("blocks = %dx%d, want 8x8", r.BlocksWide, r.BlocksHigh)
	}
	if r.DegenerateBlocks != 64 {
		t.Errorf("DegenerateBlocks = %d, want 64", r.DegenerateBlocks)
	}
	// Thresholds range from 31 (left edge) to 94 (right edge).
	if r.MinThreshold != 31 || r.MaxThreshold != 94 {
		t.Errorf("thresholds = [%d, %d], want [31, 94]", r.MinThreshold, r.MaxThreshold)
	}
	if r.BlackPixels != 32*64 {
		t.Errorf("BlackPixels = %d, want %d", r.BlackPixels, 32*64)
	}
}

func TestSummarizeFallback(t *testing.T) {
	for _, tt := range []struct {
		name   string
		bitmap *hybridbin.BinaryBitmap
	}{
		{"small hybrid", stepBitmap(t, 32, 32, true)},
		{"histogram", stepBitmap(t, 64, 64, false)},
	} {
		r, err := Summarize("x", tt.name, tt.bitmap)
		if err != nil {
			t.Fatalf("%s: Summarize: %v", tt.name, err)
		}
		if !r.Fallback || r.BlocksWide != 0 {
			t.Errorf("%s: Fallback = %v, BlocksWide = %d", tt.name, r.Fallback, r.BlocksWide)
		}
	}
}

func TestSummarizeError(t *testing.T) {
	source, err := hybridbin.NewPlaneLuminanceSource(make([]byte, 64*64), 64, 64)
	if err != nil {
		t.Fatal(err)
	}
	// A uniform image has no histogram valley.
	bitmap := hybridbin.NewBinaryBitmap(binarizer.NewGlobalHistogram(source))
	if _, err := Summarize("x", "histogram", bitmap); !errors.Is(err, hybridbin.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestWriteJSON(t *testing.T) {
	bitmap := stepBitmap(t, 64, 64, true)
	r, err := Summarize("step.png", "hybrid", bitmap)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.AddRow(bitmap, 3); err != nil {
		t.Fatalf("AddRow: %v", err)
	}
	r.SetElapsed(1500 * time.Microsecond)

	var buf bytes.Buffer
	if err := Write(&buf, r); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.HasSuffix(buf.String(), "}\n") {
		t.Errorf("output should end with a newline: %q", buf.String())
	}

	var decoded map[string]any
	if err := sonic.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	for _, key := range []string{"path", "width", "height", "mode", "fallback", "blocksWide", "blackPixels", "row", "elapsedMs"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("key %q missing from %s", key, buf.String())
		}
	}
	if decoded["elapsedMs"] != 1.5 {
		t.Errorf("elapsedMs = %v, want 1.5", decoded["elapsedMs"])
	}
	row, _ := decoded["row"].(map[string]any)
	if row["y"] != float64(3) {
		t.Errorf("row.y = %v, want 3", row["y"])
	}
}
