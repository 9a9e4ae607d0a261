package input

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlfq-sim/mlfq-sim/sim"
)

const scenarioYAML = `queue_num: 2
time_quantum: [2, 4]
processes:
  - name: A
    arrival: 0
    burst: 4
  - name: B
    arrival: 1
    burst: 2
`

func TestParseYAML_FullConfig(t *testing.T) {
	cfg, err := ParseYAML("scenario.yaml", []byte(scenarioYAML))
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.QueueNum)
	assert.Equal(t, []int64{2, 4}, cfg.TimeQuanta)
	assert.Equal(t, []sim.ProcessSpec{
		{Name: "A", ArrivalTime: 0, BurstTime: 4},
		{Name: "B", ArrivalTime: 1, BurstTime: 2},
	}, cfg.Processes)
}

func TestParseYAML_UnknownField_Rejected(t *testing.T) {
	// GIVEN a misspelled key
	_, err := ParseYAML("typo.yaml", []byte("queue_num: 1\ntime_quanta: [1]\n"))

	// THEN strict decoding refuses it
	assert.ErrorIs(t, err, sim.ErrInvalidConfig)
}

func TestParseYAML_EmptyDocument(t *testing.T) {
	_, err := ParseYAML("empty.yaml", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, sim.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "empty document")
}

func TestParseYAML_NoProcesses(t *testing.T) {
	cfg, err := ParseYAML("bare.yaml", []byte("queue_num: 1\ntime_quantum: [3]\n"))
	require.NoError(t, err)
	assert.NotNil(t, cfg.Processes)
	assert.Empty(t, cfg.Processes)
}

func TestWriteYAML_RoundTrip(t *testing.T) {
	cfg, err := ParseYAML("scenario.yaml", []byte(scenarioYAML))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, cfg))
	again, err := ParseYAML("written.yaml", buf.Bytes())

	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}
