package telemetry

import (
	"fmt"
	"io"
	"time"

	"github.com/robinvdvleuten/banksim/output"
)

// slowThreshold marks operations highlighted in styled reports.
const slowThreshold = 100 * time.Millisecond

// formatTimingTree writes the tree rooted at root:
//
//	banksim run: 12ms
//	├─ loader.load transactions.txt: 4ms
//	│  ├─ parser.lexing: 1ms
//	│  └─ parser.parsing (1204 tokens): 2ms
//	└─ simulation.run (301 transactions): 7ms
func formatTimingTree(w io.Writer, root *timerNode, styles *output.Styles) {
	now := time.Now()
	duration := formatDuration(root.duration(now))

	if styles != nil {
		_, _ = fmt.Fprintf(w, "%s: %s\n", styles.Keyword(root.name), duration)
	} else {
		_, _ = fmt.Fprintf(w, "%s: %s\n", root.name, duration)
	}

	for i, child := range root.children {
		formatNode(w, child, "", i == len(root.children)-1, styles, now)
	}
}

func formatNode(w io.Writer, node *timerNode, prefix string, isLast bool, styles *output.Styles, now time.Time) {
	d := node.duration(now)

	branch, extension := "├─ ", "│  "
	if isLast {
		branch, extension = "└─ ", "   "
	}

	if styles != nil {
		timing := styles.Timing(formatDuration(d), d >= slowThreshold)
		_, _ = fmt.Fprintf(w, "%s%s: %s\n", styles.Dim(prefix+branch), node.name, timing)
	} else {
		_, _ = fmt.Fprintf(w, "%s%s%s: %s\n", prefix, branch, node.name, formatDuration(d))
	}

	for i, child := range node.children {
		formatNode(w, child, prefix+extension, i == len(node.children)-1, styles, now)
	}
}

func (n *timerNode) duration(now time.Time) time.Duration {
	if n.end.IsZero() {
		return now.Sub(n.start)
	}
	return n.end.Sub(n.start)
}

// formatDuration shows milliseconds below one second and seconds above.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.0fms", float64(d)/float64(time.Millisecond))
	}
	return fmt.Sprintf("%.2fs", float64(d)/float64(time.Second))
}
