package progress

import (
	"fmt"
	"io"
	"math"
	"os"
	"sync"
	"time"
)

// Observer は走査の進捗通知を受け取ります。Publish は走査中に何度も、
// Done は完了時に一度だけ呼ばれます。
type Observer interface {
	Publish(Snapshot)
	Done(Snapshot)
}

type NoopObserver struct{}

func (NoopObserver) Publish(Snapshot) {}
func (NoopObserver) Done(Snapshot)    {}

// ObserverFunc adapts a plain function to the Observer interface. Done is a
// no-op, which suits one-shot consumers like the SSE bridge.
type ObserverFunc func(Snapshot)

func (f ObserverFunc) Publish(s Snapshot) { f(s) }
func (ObserverFunc) Done(Snapshot)        {}

// ShouldShowProgress decides whether a progress line should be drawn at all.
// An explicit off wins over an explicit on; otherwise both stdout and stderr
// must be terminals so the carriage-return redraw does not corrupt piped
// output.
func ShouldShowProgress(force, no bool) bool {
	if no {
		return false
	}
	if force {
		return true
	}
	return isTerminal(os.Stdout) && isTerminal(os.Stderr)
}

// NewAutoObserver は出力先が端末なら上書き描画、そうでなければ 1 行ずつ
// 追記するオブザーバを返します。
func NewAutoObserver(w io.Writer) Observer {
	if w == nil {
		w = os.Stderr
	}
	f, ok := w.(*os.File)
	return &writerObserver{w: w, redraw: ok && isTerminal(f)}
}

// writerObserver renders snapshots to a single writer. With redraw it keeps
// rewriting one terminal line; without it every notification becomes its own
// plain-text line.
type writerObserver struct {
	mu     sync.Mutex
	w      io.Writer
	redraw bool
}

func (o *writerObserver) Publish(s Snapshot) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.redraw {
		fmt.Fprintf(o.w, "\r\033[K%s", ttyLine(s))
		return
	}
	fmt.Fprintln(o.w, plainLine(s))
}

func (o *writerObserver) Done(Snapshot) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.redraw {
		fmt.Fprint(o.w, "\r\033[K")
	}
}

func ttyLine(s Snapshot) string {
	rate := "--/s"
	eta := "--:--"
	p90 := ""
	if !s.Warmup {
		if s.RateEMA > 0 {
			rate = fmt.Sprintf("%.1f/s", s.RateEMA)
		}
		if s.ETAP50 > 0 {
			eta = clockETA(s.ETAP50)
		}
		if s.ETAP90 > 0 {
			p90 = fmt.Sprintf(" (P90 %s)", clockETA(s.ETAP90))
		}
	}
	return fmt.Sprintf("[tagx] %3d%% %d/%d %s ETA %s%s", percent(s.Done, s.Total), s.Done, s.Total, rate, eta, p90)
}

func plainLine(s Snapshot) string {
	return fmt.Sprintf("progress stage=%s done=%d total=%d rate=%.3f eta_p50=%g eta_p90=%g warmup=%t at=%s",
		s.Stage, s.Done, s.Total, s.RateEMA,
		etaSeconds(s.ETAP50), etaSeconds(s.ETAP90), s.Warmup,
		s.UpdatedAt.Format(time.RFC3339Nano))
}

// clockETA renders a duration as HH:MM:SS, capping the hour field so the
// column width stays fixed.
func clockETA(d time.Duration) string {
	sec := int(math.Round(d.Seconds()))
	if sec < 0 {
		sec = 0
	}
	h := sec / 3600
	if h > 99 {
		h = 99
	}
	return fmt.Sprintf("%02d:%02d:%02d", h, (sec%3600)/60, sec%60)
}

func etaSeconds(d time.Duration) float64 {
	if d <= 0 {
		return -1
	}
	return d.Seconds()
}

func percent(done, total int) int {
	switch {
	case done <= 0:
		return 0
	case total <= 0, done >= total:
		return 100
	}
	return done * 100 / total
}

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
