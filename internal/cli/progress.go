package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/Veraticus/banknotify/internal/model"
)

var verdictOrder = []model.Verdict{
	model.VerdictEmit,
	model.VerdictDuplicate,
	model.VerdictInternal,
	model.VerdictFiltered,
	model.VerdictIgnored,
	model.VerdictDropped,
}

// ReplayProgress tracks a replay run: a progress bar plus per-verdict tallies.
type ReplayProgress struct {
	startTime time.Time
	writer    io.Writer
	bar       *progressbar.ProgressBar
	counts    map[model.Verdict]int
	total     int
	processed int
	failures  int
	mu        sync.Mutex
}

// NewReplayProgress creates a tracker for total messages.
func NewReplayProgress(writer io.Writer, total int) *ReplayProgress {
	if writer == nil {
		writer = os.Stdout
	}

	p := &ReplayProgress{
		writer:    writer,
		total:     total,
		counts:    make(map[model.Verdict]int),
		startTime: time.Now(),
	}
	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(writer),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Replaying messages...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(writer); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
	return p
}

// Record counts one processed message. A non-nil err marks a failed write.
func (p *ReplayProgress) Record(v model.Verdict, err error) {
	p.mu.Lock()
	p.processed++
	p.counts[v]++
	if err != nil {
		p.failures++
	}
	p.mu.Unlock()

	if barErr := p.bar.Add(1); barErr != nil {
		slog.Warn("Failed to update progress bar", "error", barErr)
	}
}

// Count returns how many messages got verdict v.
func (p *ReplayProgress) Count(v model.Verdict) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.counts[v]
}

// Status describes how far the replay got.
func (p *ReplayProgress) Status() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return fmt.Sprintf("Processed %d of %d messages", p.processed, p.total)
}

// Summary renders the final tallies in a box.
func (p *ReplayProgress) Summary() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	var b strings.Builder
	fmt.Fprintf(&b, "%s Results:\n", ChartIcon)
	fmt.Fprintf(&b, "  • Messages: %d of %d\n", p.processed, p.total)
	for _, v := range verdictOrder {
		if n := p.counts[v]; n > 0 {
			fmt.Fprintf(&b, "  • %s: %d\n", FormatVerdict(v), n)
		}
	}
	if p.failures > 0 {
		fmt.Fprintf(&b, "  • %s\n", ErrorStyle.Render(fmt.Sprintf("Failed writes: %d", p.failures)))
	}
	fmt.Fprintf(&b, "  • Time taken: %s", time.Since(p.startTime).Round(time.Millisecond))

	return RenderBox("Replay Complete", b.String())
}
