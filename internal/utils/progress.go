package utils

import (
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// DescPackaging is the progress description used while packaging items
const DescPackaging = "Packaging"

// NewProgressBar creates a progress bar writing to w (stderr when nil), so
// that packaged output streamed to stdout stays clean
func NewProgressBar(w io.Writer, total int, description string) *progressbar.ProgressBar {
	if w == nil {
		w = os.Stderr
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(false),
	)
}

// ItemProgress drives a progress bar from per-item callbacks. The bar is
// created on the first step, once the total is known.
type ItemProgress struct {
	w           io.Writer
	description string
	bar         *progressbar.ProgressBar
}

// NewItemProgress creates an ItemProgress writing to w
func NewItemProgress(w io.Writer, description string) *ItemProgress {
	return &ItemProgress{w: w, description: description}
}

// Step records that done of total items are finished, name being the last one
func (p *ItemProgress) Step(done, total int, name string) {
	if p.bar == nil {
		p.bar = NewProgressBar(p.w, total, p.description)
	}
	p.bar.Describe(p.description + " " + name)
	_ = p.bar.Set(done)
	if done >= total {
		_ = p.bar.Finish()
	}
}
