package input

import (
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

// Token codes start at 1 to avoid clashing with parsly.EOF.
const (
	whitespaceCode = iota + 1
	queueNumCode
	timeQuantumCode
	processTableSizeCode
	processTableCode
	assignCode
	colonCode
	integerCode
	wordCode
)

// process_table_size must be tried before process_table: the latter is its prefix.
var (
	whitespaceToken       = parsly.NewToken(whitespaceCode, "Whitespace", matcher.NewWhiteSpace())
	queueNumToken         = parsly.NewToken(queueNumCode, KeywordQueueNum, matcher.NewFragment(KeywordQueueNum))
	timeQuantumToken      = parsly.NewToken(timeQuantumCode, KeywordTimeQuantum, matcher.NewFragment(KeywordTimeQuantum))
	processTableSizeToken = parsly.NewToken(processTableSizeCode, KeywordProcessTableSize, matcher.NewFragment(KeywordProcessTableSize))
	processTableToken     = parsly.NewToken(processTableCode, KeywordProcessTable, matcher.NewFragment(KeywordProcessTable))
	assignToken           = parsly.NewToken(assignCode, "=", matcher.NewByte('='))
	colonToken            = parsly.NewToken(colonCode, ":", matcher.NewByte(':'))
	integerToken          = parsly.NewToken(integerCode, "Integer", &integerMatcher{})
	wordToken             = parsly.NewToken(wordCode, "Word", &wordMatcher{})
)

// integerMatcher matches an optionally signed run of decimal digits.
type integerMatcher struct{}

func (m *integerMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	pos := cursor.Pos
	size := cursor.InputSize

	i := pos
	if i < size && (input[i] == '-' || input[i] == '+') {
		i++
	}
	digits := 0
	for i < size && isDigit(input[i]) {
		i++
		digits++
	}
	if digits == 0 {
		return 0
	}
	return i - pos
}

// wordMatcher matches a run of non-whitespace bytes.
type wordMatcher struct{}

func (m *wordMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	matched := 0
	for i := cursor.Pos; i < cursor.InputSize; i++ {
		if isSpace(input[i]) {
			break
		}
		matched++
	}
	return matched
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\v', '\f':
		return true
	}
	return false
}
