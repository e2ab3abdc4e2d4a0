package bench

import (
	"fmt"
	"io"
	"time"
)

// PrintWorkload draws the per-driver comparison box for one workload.
func PrintWorkload(w io.Writer, wl Workload, stats []SampleStats) {
	var ref float64
	if len(stats) > 0 {
		ref = stats[0].Iteration
	}

	fmt.Fprintf(w, "\n╔═════════════════════════════════════════════════════════════╗\n")
	fmt.Fprintf(w, "║  %-59s║\n", clip(wl.Title, 58))
	fmt.Fprintf(w, "║  %-59s║\n", clip(wl.DisplaySQL, 58))
	fmt.Fprintf(w, "╠═══════════════════╦════════════════╦══════════╦═════════════╣\n")
	fmt.Fprintf(w, "║  Driver           ║  ops/s         ║  ±rme    ║  mean       ║\n")
	fmt.Fprintf(w, "╠═══════════════════╬════════════════╬══════════╬═════════════╣\n")
	for _, s := range stats {
		fmt.Fprintf(w, "║  %-16s ║  %-13.1f ║  %-6.1f%% ║  %-10s ║\n",
			s.Name, s.Iteration, s.Variation, FmtDur(time.Duration(s.Stats.Mean*float64(time.Second))))
	}
	fmt.Fprintf(w, "╠═══════════════════╩════════════════╩══════════╩═════════════╣\n")
	for _, s := range stats[min(1, len(stats)):] {
		diff := 0.0
		if ref > 0 {
			diff = (s.Iteration - ref) / ref * 100
		}
		fmt.Fprintf(w, "║  %-59s║\n", fmt.Sprintf("%s vs %s: %+.1f%%", s.Name, stats[0].Name, diff))
	}
	fmt.Fprintf(w, "╚═════════════════════════════════════════════════════════════╝\n")
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func FmtDur(d time.Duration) string {
	us := float64(d.Nanoseconds()) / 1000
	if us < 1000 {
		return fmt.Sprintf("%.1fµs", us)
	}
	return fmt.Sprintf("%.2fms", us/1000)
}
