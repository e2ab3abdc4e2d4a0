package bench

import (
	"fmt"
	"os"
	"sync"

	"github.com/bytedance/sonic"
)

// Results accumulates per-driver statistics keyed by workload title.
type Results struct {
	mu      sync.Mutex
	titles  []string
	byTitle map[string][]SampleStats
}

func NewResults() *Results {
	return &Results{byTitle: map[string][]SampleStats{}}
}

func (r *Results) Record(title string, s SampleStats) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byTitle[title]; !ok {
		r.titles = append(r.titles, title)
	}
	r.byTitle[title] = append(r.byTitle[title], s)
}

// Titles returns workload titles in first-recorded order.
func (r *Results) Titles() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.titles...)
}

func (r *Results) Get(title string) []SampleStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]SampleStats(nil), r.byTitle[title]...)
}

// Marshal encodes the whole store with sorted keys.
func (r *Results) Marshal() ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return sonic.ConfigStd.Marshal(r.byTitle)
}

// Flush writes the store to path in one write, replacing any previous content.
func (r *Results) Flush(path string) error {
	data, err := r.Marshal()
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}
