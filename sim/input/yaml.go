package input

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/mlfq-sim/mlfq-sim/sim"
)

// yamlConfig is the YAML rendering of a sim.Config.
// All fields must be listed to satisfy KnownFields(true) strict parsing.
type yamlConfig struct {
	QueueNum    int               `yaml:"queue_num"`
	TimeQuantum []int64           `yaml:"time_quantum"`
	Processes   []sim.ProcessSpec `yaml:"processes"`
}

// ParseYAML decodes a YAML configuration with strict field checking:
// a misspelled key is an error rather than a silently ignored value.
func ParseYAML(name string, data []byte) (*sim.Config, error) {
	var yc yamlConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&yc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %s: empty document", sim.ErrInvalidConfig, name)
		}
		return nil, fmt.Errorf("%w: %s: %v", sim.ErrInvalidConfig, name, err)
	}
	processes := yc.Processes
	if processes == nil {
		processes = []sim.ProcessSpec{}
	}
	return &sim.Config{
		QueueNum:   yc.QueueNum,
		TimeQuanta: yc.TimeQuantum,
		Processes:  processes,
	}, nil
}

// WriteYAML encodes cfg in the layout ParseYAML reads.
func WriteYAML(w io.Writer, cfg *sim.Config) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(yamlConfig{
		QueueNum:    cfg.QueueNum,
		TimeQuantum: cfg.TimeQuanta,
		Processes:   cfg.Processes,
	}); err != nil {
		return err
	}
	return encoder.Close()
}
