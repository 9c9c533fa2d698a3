package guish

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene.
var globalDebug bool

// debugOut is where debug stats and warnings go.
var debugOut io.Writer = os.Stderr

// dispatchStats counts dispatcher activity since the last reset.
type dispatchStats struct {
	events        [inputTypeCount]uint64
	raised        [eventKindCount]uint64
	queryFailures uint64
}

func (st *dispatchStats) total() uint64 {
	var n uint64
	for _, c := range st.raised {
		n += c
	}
	return n
}

// frameStats holds per-frame timing. Only populated in debug mode.
type frameStats struct {
	dispatchTime time.Duration
	drawTime     time.Duration
	triangles    int
}

// DispatchStats is a snapshot of dispatcher counters.
type DispatchStats struct {
	Events        map[InputType]uint64
	Raised        map[EventKind]uint64
	QueryFailures uint64
}

// Stats returns the dispatcher's counters.
func (d *Dispatcher) Stats() DispatchStats {
	out := DispatchStats{
		Events:        make(map[InputType]uint64, inputTypeCount),
		Raised:        make(map[EventKind]uint64, eventKindCount),
		QueryFailures: d.stats.queryFailures,
	}
	for i, c := range d.stats.events {
		if c > 0 {
			out.Events[InputType(i)] = c
		}
	}
	for i, c := range d.stats.raised {
		if c > 0 {
			out.Raised[EventKind(i)] = c
		}
	}
	return out
}

// ResetStats zeroes the dispatcher's counters.
func (d *Dispatcher) ResetStats() {
	d.stats = dispatchStats{}
}

// formatStats renders counters as one line, e.g.
// "raised 1,204 | Click 12 | MouseMove 1,180 | query failures 0".
func formatStats(st *dispatchStats) string {
	var b strings.Builder
	b.WriteString("raised ")
	b.WriteString(humanize.Comma(int64(st.total())))
	for k, c := range st.raised {
		if c == 0 {
			continue
		}
		fmt.Fprintf(&b, " | %s %s", EventKind(k), humanize.Comma(int64(c)))
	}
	fmt.Fprintf(&b, " | query failures %s", humanize.Comma(int64(st.queryFailures)))
	return b.String()
}

// debugLog prints frame timing and dispatch counters.
func (s *Scene) debugLog(fs frameStats) {
	if !s.debug {
		return
	}
	_, _ = fmt.Fprintf(debugOut,
		"[guish] dispatch: %v | draw: %v | triangles: %s\n",
		fs.dispatchTime, fs.drawTime, humanize.Comma(int64(fs.triangles)))
	_, _ = fmt.Fprintf(debugOut, "[guish] %s\n", formatStats(&s.dispatcher.stats))
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("guish debug: %s on disposed node %q", op, n.Name))
	}
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(debugOut, "[guish] warning: tree depth %d exceeds %d (node %q)\n",
			depth, debugMaxTreeDepth, n.Name)
	}
}
