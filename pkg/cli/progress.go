package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// progress prints a single-line completion counter
type progress struct {
	w     io.Writer
	count *color.Color
}

func newProgress(w io.Writer) *progress {
	return &progress{
		w:     w,
		count: color.New(color.FgCyan, color.Bold),
	}
}

// Update is called serially by the dispatcher
func (p *progress) Update(done, total int) {
	_, _ = fmt.Fprint(p.w, "\r")
	_, _ = p.count.Fprintf(p.w, "%d/%d", done, total)
	_, _ = fmt.Fprint(p.w, " repositories")
	if done == total {
		_, _ = fmt.Fprintln(p.w)
	}
}
