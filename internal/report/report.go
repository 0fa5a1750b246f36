// Package report summarizes a binarization for the command line tool.
package report

import (
	"io"
	"time"

	"github.com/bytedance/sonic"

	"github.com/ericlevine/hybridbin"
	"github.com/ericlevine/hybridbin/binarizer"
)

// Report describes one binarized image.
type Report struct {
	Path     string `json:"path"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Mode     string `json:"mode"`
	Fallback bool   `json:"fallback"`

	// Block statistics, present only when local thresholding ran.
	BlocksWide       int `json:"blocksWide,omitempty"`
	BlocksHigh       int `json:"blocksHigh,omitempty"`
	DegenerateBlocks int `json:"degenerateBlocks,omitempty"`
	MinThreshold     int `json:"minThreshold,omitempty"`
	MaxThreshold     int `json:"maxThreshold,omitempty"`

	BlackPixels int        `json:"blackPixels"`
	Row         *RowReport `json:"row,omitempty"`
	ElapsedMs   float64    `json:"elapsedMs"`
}

// RowReport describes one row binarized for 1D scanning.
type RowReport struct {
	Y     int    `json:"y"`
	Black int    `json:"black"`
	Bits  string `json:"bits"`
}

// Summarize binarizes bitmap and collects its statistics. Fallback is set
// whenever the image was thresholded against a single global black point.
func Summarize(path, mode string, bitmap *hybridbin.BinaryBitmap) (*Report, error) {
	m, err := bitmap.BlackMatrix()
	if err != nil {
		return nil, err
	}
	r := &Report{
		Path:        path,
		Width:       m.Width(),
		Height:      m.Height(),
		Mode:        mode,
		Fallback:    true,
		BlackPixels: m.Count(),
	}

	h, ok := bitmap.Binarizer().(*binarizer.Hybrid)
	if !ok {
		return r, nil
	}
	bp, err := h.BlackPoints()
	if err != nil {
		return nil, err
	}
	if bp == nil {
		return r, nil
	}
	r.Fallback = false
	r.BlocksWide = bp.Width
	r.BlocksHigh = bp.Height
	r.DegenerateBlocks = bp.Degenerate
	r.MinThreshold, r.MaxThreshold = 255, 0
	for by := 0; by < bp.Height; by++ {
		for bx := 0; bx < bp.Width; bx++ {
			t := bp.Threshold(bx, by)
			r.MinThreshold = min(r.MinThreshold, t)
			r.MaxThreshold = max(r.MaxThreshold, t)
		}
	}
	return r, nil
}

// AddRow binarizes row y of bitmap and attaches it to r.
func (r *Report) AddRow(bitmap *hybridbin.BinaryBitmap, y int) error {
	row, err := bitmap.BlackRow(y, nil)
	if err != nil {
		return err
	}
	r.Row = &RowReport{Y: y, Black: row.Count(), Bits: row.String()}
	return nil
}

// SetElapsed records how long binarization took.
func (r *Report) SetElapsed(d time.Duration) {
	r.ElapsedMs = float64(d.Microseconds()) / 1000
}

// Write encodes r to w as indented JSON followed by a newline.
func Write(w io.Writer, r *Report) error {
	enc := sonic.ConfigStd.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
