package stats

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/aybabtme/uniplot/histogram"
	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"
)

// GameRow is one line of a summary.
type GameRow struct {
	Secret  string `yaml:"secret"`
	Score   int    `yaml:"score"`
	Status  string `yaml:"status"`
	Guesses int    `yaml:"guesses"`
	Error   string `yaml:"error,omitempty"`
}

// Summary collects per-game results. It is safe for concurrent Add calls.
type Summary struct {
	mu      sync.Mutex
	stat    Statistic
	rows    []GameRow
	aborted int
}

func NewSummary() *Summary {
	return &Summary{}
}

func (s *Summary) Add(row GameRow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, row)
	s.stat.Push(float64(row.Score))
	if row.Error != "" {
		s.aborted++
	}
}

func (s *Summary) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stat.Count()
}

func (s *Summary) Aborted() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.aborted
}

// Average is the mean score, 0 with no games.
func (s *Summary) Average() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stat.Mean()
}

func (s *Summary) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := 0
	for _, r := range s.rows {
		t += r.Score
	}
	return t
}

// Rows returns the games in the order they were added.
func (s *Summary) Rows() []GameRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.rows)
}

func (s *Summary) sortedScores() []float64 {
	xs := make([]float64, len(s.rows))
	for i, r := range s.rows {
		xs[i] = float64(r.Score)
	}
	slices.Sort(xs)
	return xs
}

// Quantile returns the empirical p-quantile of the scores.
func (s *Summary) Quantile(p float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.rows) == 0 {
		return 0
	}
	return stat.Quantile(p, stat.Empirical, s.sortedScores(), nil)
}

// Report is the serializable form of a summary.
type Report struct {
	Games   int       `yaml:"games"`
	Aborted int       `yaml:"aborted"`
	Total   int       `yaml:"total"`
	Mean    float64   `yaml:"mean"`
	Stdev   float64   `yaml:"stdev"`
	CI95    float64   `yaml:"ci95"`
	Min     float64   `yaml:"min"`
	Max     float64   `yaml:"max"`
	Median  float64   `yaml:"median"`
	P90     float64   `yaml:"p90"`
	Results []GameRow `yaml:"results"`
}

func (s *Summary) Report() Report {
	r := Report{
		Median:  s.Quantile(0.5),
		P90:     s.Quantile(0.9),
		Total:   s.Total(),
		Results: s.Rows(),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	r.Games = s.stat.Count()
	r.Aborted = s.aborted
	r.Mean = s.stat.Mean()
	r.Stdev = s.stat.Stdev()
	r.Min = s.stat.Min()
	r.Max = s.stat.Max()
	if r.Games > 1 {
		r.CI95 = s.stat.MarginOfError(95)
	}
	return r
}

func (s *Summary) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s.Report()); err != nil {
		return err
	}
	return enc.Close()
}

// Histogram renders the score distribution as text.
func (s *Summary) Histogram(bins int) (string, error) {
	s.mu.Lock()
	scores := s.sortedScores()
	s.mu.Unlock()
	if len(scores) == 0 {
		return "", nil
	}
	var sb strings.Builder
	h := histogram.Hist(bins, scores)
	if err := histogram.Fprint(&sb, h, histogram.Linear(40)); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (s *Summary) String() string {
	r := s.Report()
	return fmt.Sprintf("games=%d aborted=%d mean=%.3f±%.3f stdev=%.3f median=%.1f p90=%.1f min=%.0f max=%.0f",
		r.Games, r.Aborted, r.Mean, r.CI95, r.Stdev, r.Median, r.P90, r.Min, r.Max)
}
