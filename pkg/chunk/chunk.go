package chunk

import (
	"fmt"
	"strings"
)

const (
	DefaultMaxChunkSize = 1000
	DefaultOverlap      = 200

	// Chunks at or below this length are dropped as noise, usually trailing
	// fragments left over from the overlap arithmetic.
	MinChunkLen = 50
)

type Options struct {
	MaxChunkSize int
	Overlap      int
}

func (o Options) withDefaults() Options {
	if o.MaxChunkSize <= 0 {
		o.MaxChunkSize = DefaultMaxChunkSize
	}
	if o.Overlap < 0 {
		o.Overlap = DefaultOverlap
	}
	return o
}

// Split cuts text into overlapping windows of at most MaxChunkSize
// characters. When a window does not end the text, the cut snaps back to just
// after the last sentence-ending period or newline, but only when that
// boundary sits past the midpoint of the window; otherwise the raw cut
// stands. The next window starts Overlap characters before the window end.
//
// Overlap >= MaxChunkSize can never make progress, so it is rejected up
// front. A boundary snap can still pull the next start at or behind the
// current one when Overlap is at least half of MaxChunkSize; that case falls
// back to the raw-cut advancement so the loop always terminates.
func Split(text string, opts Options) ([]string, error) {
	opts = opts.withDefaults()
	if opts.Overlap >= opts.MaxChunkSize {
		return nil, fmt.Errorf("chunk overlap %d must be smaller than max chunk size %d", opts.Overlap, opts.MaxChunkSize)
	}

	runes := []rune(text)

	var chunks []string
	start := 0
	for start < len(runes) {
		end := start + opts.MaxChunkSize

		if end < len(runes) {
			lastPeriod := lastIndexBefore(runes, '.', end)
			lastNewline := lastIndexBefore(runes, '\n', end)
			breakPoint := lastPeriod
			if lastNewline > breakPoint {
				breakPoint = lastNewline
			}

			if breakPoint > start+opts.MaxChunkSize/2 {
				end = breakPoint + 1
			}
		}

		sliceEnd := end
		if sliceEnd > len(runes) {
			sliceEnd = len(runes)
		}
		chunks = append(chunks, strings.TrimSpace(string(runes[start:sliceEnd])))

		next := end - opts.Overlap
		if next <= start {
			next = start + opts.MaxChunkSize - opts.Overlap
		}
		start = next
	}

	var out []string
	for _, c := range chunks {
		if len([]rune(c)) > MinChunkLen {
			out = append(out, c)
		}
	}
	return out, nil
}

// lastIndexBefore returns the highest index <= limit at which r occurs, or -1.
func lastIndexBefore(runes []rune, r rune, limit int) int {
	if limit >= len(runes) {
		limit = len(runes) - 1
	}
	for i := limit; i >= 0; i-- {
		if runes[i] == r {
			return i
		}
	}
	return -1
}
