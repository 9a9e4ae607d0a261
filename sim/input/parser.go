// Package input reads simulator configurations from the line-oriented
// keyword = value text format and from YAML.
package input

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/viant/parsly"

	"github.com/mlfq-sim/mlfq-sim/sim"
)

// Keywords of the text format.
const (
	KeywordQueueNum         = "queue_num"
	KeywordTimeQuantum      = "time_quantum"
	KeywordProcessTableSize = "process_table_size"
	KeywordProcessTable     = "process_table"
)

var keywords = map[int]string{
	queueNumCode:         KeywordQueueNum,
	timeQuantumCode:      KeywordTimeQuantum,
	processTableSizeCode: KeywordProcessTableSize,
	processTableCode:     KeywordProcessTable,
}

// ParseText parses the text format:
//
//	# comment
//	queue_num = 2
//	time_quantum = 2 4
//	process_table_size = 2
//	process_table =
//	A 0 4
//	B 1 2
//
// Blank lines and lines starting with '#' are skipped everywhere, including
// inside the process table. Numbers that do not parse are errors, never zero.
// The result is not validated; sim.Config.Validate does that.
func ParseText(name string, data []byte) (*sim.Config, error) {
	p := &textParser{name: name, lines: strings.Split(string(data), "\n")}
	return p.parse()
}

type textParser struct {
	name  string
	lines []string
	pos   int // index of the next unread line

	cfg          sim.Config
	seen         map[int]bool
	tableSize    int
	tableRead    bool
	tableSizeSet bool
}

func (p *textParser) parse() (*sim.Config, error) {
	p.seen = make(map[int]bool)
	for {
		lineNo, line, ok := p.nextLine()
		if !ok {
			break
		}
		if err := p.parseLine(lineNo, line); err != nil {
			return nil, err
		}
	}
	if !p.seen[queueNumCode] {
		return nil, fmt.Errorf("%w: %s: missing %s", sim.ErrInvalidConfig, p.name, KeywordQueueNum)
	}
	if !p.seen[timeQuantumCode] {
		return nil, fmt.Errorf("%w: %s: missing %s", sim.ErrInvalidConfig, p.name, KeywordTimeQuantum)
	}
	if p.tableSize > 0 && !p.tableRead {
		return nil, fmt.Errorf("%w: %s: %s = %d but no %s given",
			sim.ErrInvalidConfig, p.name, KeywordProcessTableSize, p.tableSize, KeywordProcessTable)
	}
	if p.cfg.Processes == nil {
		p.cfg.Processes = []sim.ProcessSpec{}
	}
	return &p.cfg, nil
}

// nextLine returns the next line that is neither blank nor a comment, 1-based.
func (p *textParser) nextLine() (int, string, bool) {
	for p.pos < len(p.lines) {
		line := strings.TrimRight(p.lines[p.pos], "\r")
		p.pos++
		if isSkip(line) {
			continue
		}
		return p.pos, line, true
	}
	return 0, "", false
}

func isSkip(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == "" || strings.HasPrefix(trimmed, "#")
}

func (p *textParser) parseLine(lineNo int, line string) error {
	cur := parsly.NewCursor(p.name, []byte(line), 0)
	matched := cur.MatchAfterOptional(whitespaceToken, processTableSizeToken, processTableToken, queueNumToken, timeQuantumToken)
	code := matched.Code
	switch code {
	case queueNumCode, timeQuantumCode, processTableSizeCode, processTableCode:
	default:
		return p.errorf(sim.ErrInvalidConfig, lineNo, "unrecognized line %q", strings.TrimSpace(line))
	}
	if p.seen[code] {
		return p.errorf(sim.ErrInvalidConfig, lineNo, "%s given more than once", keywords[code])
	}
	p.seen[code] = true

	switch code {
	case queueNumCode:
		values, err := p.assignedInts(cur, lineNo, KeywordQueueNum, 1)
		if err != nil {
			return err
		}
		p.cfg.QueueNum = int(values[0])
	case timeQuantumCode:
		values, err := p.assignedInts(cur, lineNo, KeywordTimeQuantum, -1)
		if err != nil {
			return err
		}
		if len(values) == 0 {
			return p.errorf(sim.ErrInvalidConfig, lineNo, "%s has no values", KeywordTimeQuantum)
		}
		p.cfg.TimeQuanta = values
	case processTableSizeCode:
		values, err := p.assignedInts(cur, lineNo, KeywordProcessTableSize, 1)
		if err != nil {
			return err
		}
		if values[0] < 0 {
			return p.errorf(sim.ErrInvalidConfig, lineNo, "%s must be non-negative, got %d", KeywordProcessTableSize, values[0])
		}
		p.tableSize = int(values[0])
		p.tableSizeSet = true
	case processTableCode:
		cur.MatchAfterOptional(whitespaceToken, assignToken, colonToken)
		if err := p.expectEnd(cur, lineNo, sim.ErrInvalidConfig); err != nil {
			return err
		}
		if !p.tableSizeSet {
			return p.errorf(sim.ErrInvalidConfig, lineNo, "%s must precede %s", KeywordProcessTableSize, KeywordProcessTable)
		}
		return p.parseTable(lineNo)
	}
	return nil
}

// parseTable reads tableSize process rows following the process_table line.
func (p *textParser) parseTable(headerLine int) error {
	p.tableRead = true
	// the declared size is unchecked input; never reserve more rows than remain
	p.cfg.Processes = make([]sim.ProcessSpec, 0, min(p.tableSize, len(p.lines)-p.pos))
	for i := 0; i < p.tableSize; i++ {
		lineNo, line, ok := p.nextLine()
		if !ok {
			return p.errorf(sim.ErrInvalidConfig, headerLine, "%s has %d of %d rows", KeywordProcessTable, i, p.tableSize)
		}
		spec, err := p.parseRow(lineNo, line)
		if err != nil {
			return err
		}
		p.cfg.Processes = append(p.cfg.Processes, spec)
	}
	return nil
}

// parseRow parses "<name> <arrival> <burst>".
func (p *textParser) parseRow(lineNo int, line string) (sim.ProcessSpec, error) {
	cur := parsly.NewCursor(p.name, []byte(line), 0)
	matched := cur.MatchAfterOptional(whitespaceToken, wordToken)
	if matched.Code != wordCode {
		return sim.ProcessSpec{}, p.errorf(sim.ErrInvalidProcess, lineNo, "expected process name")
	}
	spec := sim.ProcessSpec{Name: matched.Text(cur)}
	for _, field := range []struct {
		label string
		dest  *int64
	}{{"arrival time", &spec.ArrivalTime}, {"burst time", &spec.BurstTime}} {
		v, err := p.integer(cur)
		if err != nil {
			return sim.ProcessSpec{}, p.errorf(sim.ErrInvalidProcess, lineNo, "process %s %s: %v", spec.Name, field.label, err)
		}
		*field.dest = v
	}
	if err := p.expectEnd(cur, lineNo, sim.ErrInvalidProcess); err != nil {
		return sim.ProcessSpec{}, err
	}
	return spec, nil
}

// assignedInts parses "= v1 v2 ...". want < 0 accepts any count.
func (p *textParser) assignedInts(cur *parsly.Cursor, lineNo int, keyword string, want int) ([]int64, error) {
	if cur.MatchAfterOptional(whitespaceToken, assignToken).Code != assignCode {
		return nil, p.errorf(sim.ErrInvalidConfig, lineNo, "expected '=' after %s", keyword)
	}
	var values []int64
	for {
		cur.MatchOne(whitespaceToken)
		if !cur.HasMore() {
			break
		}
		v, err := p.integer(cur)
		if err != nil {
			return nil, p.errorf(sim.ErrInvalidConfig, lineNo, "%s: %v", keyword, err)
		}
		values = append(values, v)
	}
	if want >= 0 && len(values) != want {
		return nil, p.errorf(sim.ErrInvalidConfig, lineNo, "%s expects %d value(s), got %d", keyword, want, len(values))
	}
	return values, nil
}

// integer parses one whitespace-delimited integer at the cursor.
func (p *textParser) integer(cur *parsly.Cursor) (int64, error) {
	cur.MatchOne(whitespaceToken)
	start := cur.Pos
	matched := cur.MatchOne(integerToken)
	if matched.Code != integerCode || (cur.HasMore() && !isSpace(cur.Input[cur.Pos])) {
		cur.Pos = start
		word := cur.MatchOne(wordToken)
		if word.Code != wordCode {
			return 0, fmt.Errorf("missing value")
		}
		return 0, fmt.Errorf("%q is not an integer", word.Text(cur))
	}
	text := matched.Text(cur)
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", text, err)
	}
	return v, nil
}

func (p *textParser) expectEnd(cur *parsly.Cursor, lineNo int, kind error) error {
	cur.MatchOne(whitespaceToken)
	if cur.HasMore() {
		return p.errorf(kind, lineNo, "unexpected trailing text %q", string(cur.Input[cur.Pos:]))
	}
	return nil
}

func (p *textParser) errorf(kind error, lineNo int, format string, args ...any) error {
	return fmt.Errorf("%w: %s:%d: %s", kind, p.name, lineNo, fmt.Sprintf(format, args...))
}
