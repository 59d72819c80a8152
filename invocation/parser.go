// Package invocation parses the textual `slotName <body>` surface of the fork
// command.  The slot name consists of letters, digits and underscores and is
// terminated by the first space or line break; the remainder of the input is
// the body expression, passed through verbatim.
package invocation

import (
	"github.com/viant/parsly"

	"github.com/viant/slotor/model"
)

// Fork is the parsed form of a fork invocation.
type Fork struct {
	Slot string // target slot name
	Body string // raw body expression, may be empty
}

// Parse parses raw invocation text in the format: slotName <body>.
// Leading whitespace before the slot name is skipped.  A slot name that is
// empty, or terminated by anything other than a space, a line break or end of
// input, yields model.ErrInvalidSlotName.
func Parse(input []byte) (*Fork, error) {
	cursor := parsly.NewCursor("", input, 0)

	matched := cursor.MatchAfterOptional(whitespaceToken, slotToken)
	if matched.Code != slotToken.Code {
		return nil, model.ErrInvalidSlotName
	}
	fork := &Fork{Slot: matched.Text(cursor)}

	pos := cursor.Pos
	if pos >= cursor.InputSize { // end of input terminates the slot name
		return fork, nil
	}
	switch cursor.Input[pos] {
	case ' ', '\n':
		fork.Body = string(cursor.Input[pos+1:])
		return fork, nil
	default:
		return nil, model.ErrInvalidSlotName
	}
}
