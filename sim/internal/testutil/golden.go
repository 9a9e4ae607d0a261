// Package testutil provides shared test infrastructure for the MLFQ simulator.
// It holds the golden scenario types and the loader used by sim/ and cmd/ tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/mlfq-sim/mlfq-sim/sim"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase represents a single scenario with its expected outcome.
type GoldenTestCase struct {
	Name        string            `json:"name"`
	QueueNum    int               `json:"queue_num"`
	TimeQuantum []int64           `json:"time_quantum"`
	Processes   []sim.ProcessSpec `json:"processes"`
	Expected    GoldenOutcome     `json:"expected"`
}

// Config returns the scenario as a simulator input.
func (tc GoldenTestCase) Config() sim.Config {
	processes := tc.Processes
	if processes == nil {
		processes = []sim.ProcessSpec{}
	}
	return sim.Config{QueueNum: tc.QueueNum, TimeQuanta: tc.TimeQuantum, Processes: processes}
}

// GoldenOutcome holds the exact figures a scenario must reproduce.
type GoldenOutcome struct {
	Gantt              string `json:"gantt"`
	FinalClock         int64  `json:"final_clock"`
	IdleTime           int64  `json:"idle_time"`
	Demotions          int    `json:"demotions"`
	ArrivalPreemptions int    `json:"arrival_preemptions"`
	CompletedProcesses int    `json:"completed_processes"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}
	if len(dataset.Tests) == 0 {
		t.Fatal("Golden dataset has no test cases")
	}

	return &dataset
}
