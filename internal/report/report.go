// Package report writes simulation results to disk as JSON.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/lox/blackjack/internal/statistics"
)

// Report is the JSON document written after a simulation run
type Report struct {
	RunID    string   `json:"run_id"`
	Metadata Metadata `json:"metadata"`
	Config   Settings `json:"configuration"`
	Results  Results  `json:"results"`
}

// Metadata contains run execution details
type Metadata struct {
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationSeconds float64   `json:"duration_seconds"`
	RoundsPerSecond float64   `json:"rounds_per_second"`
	Version         string    `json:"version,omitempty"`
}

// Settings records what the run was configured with
type Settings struct {
	RandMethod    string `json:"rand_method"`
	TwisterInit   string `json:"twister_init,omitempty"`
	Seed          uint64 `json:"seed"`
	DeckRanks     int    `json:"deck_ranks"`
	DealerStandOn int    `json:"dealer_stand_on"`
	Strategy      string `json:"strategy"`
	Rounds        int    `json:"rounds"`
	Workers       int    `json:"workers"`
}

// Results contains the aggregated outcome of every round
type Results struct {
	Rounds           int            `json:"rounds"`
	PlayerWins       int            `json:"player_wins"`
	DealerWins       int            `json:"dealer_wins"`
	Pushes           int            `json:"pushes"`
	PlayerBusts      int            `json:"player_busts"`
	DealerBusts      int            `json:"dealer_busts"`
	PlayerBlackjacks int            `json:"player_blackjacks"`
	DealerBlackjacks int            `json:"dealer_blackjacks"`
	Mean             float64        `json:"mean_net"`
	StdDev           float64        `json:"std_dev"`
	CI95Low          float64        `json:"ci_95_low"`
	CI95High         float64        `json:"ci_95_high"`
	DealerFinals     map[string]int `json:"dealer_finals"`
}

// New builds a report for a finished run
func New(settings Settings, stats *statistics.Statistics, start, end time.Time) *Report {
	duration := end.Sub(start)
	var perSecond float64
	if duration > 0 {
		perSecond = float64(stats.Rounds) / duration.Seconds()
	}

	low, high := stats.ConfidenceInterval95()
	finals := make(map[string]int)
	for total, n := range stats.DealerFinals {
		if n == 0 {
			continue
		}
		key := fmt.Sprint(total)
		if total == len(stats.DealerFinals)-1 {
			key = "bust"
		}
		finals[key] = n
	}

	return &Report{
		RunID: newRunID(),
		Metadata: Metadata{
			StartTime:       start,
			EndTime:         end,
			DurationSeconds: duration.Seconds(),
			RoundsPerSecond: perSecond,
		},
		Config: settings,
		Results: Results{
			Rounds:           stats.Rounds,
			PlayerWins:       stats.PlayerWins,
			DealerWins:       stats.DealerWins,
			Pushes:           stats.Pushes,
			PlayerBusts:      stats.PlayerBusts,
			DealerBusts:      stats.DealerBusts,
			PlayerBlackjacks: stats.PlayerBlackjacks,
			DealerBlackjacks: stats.DealerBlackjacks,
			Mean:             stats.Mean(),
			StdDev:           stats.StdDev(),
			CI95Low:          low,
			CI95High:         high,
			DealerFinals:     finals,
		},
	}
}

// newRunID returns a time-ordered identifier, falling back to a random one
func newRunID() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}

// Write saves the report as indented JSON. Readers see either the previous
// file or the complete new one.
func (r *Report) Write(filename string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	data = append(data, '\n')
	return writeFileAtomic(filename, data, 0o644)
}

// Load reads a report written by Write
func Load(filename string) (*Report, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to decode report %s: %w", filename, err)
	}
	return &r, nil
}

// writeFileAtomic writes to a temp file in the same directory and renames it
// over filename.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)
	base := filepath.Base(filename)

	tmpFile, err := os.CreateTemp(dir, base+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		if tmpFile != nil {
			tmpFile.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	tmpFile = nil

	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, filename); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}
