package invocation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/slotor/model"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		description string
		input       string
		expected    *Fork
		shouldError bool
	}{
		{
			description: "slot with body",
			input:       "worker1 print hello",
			expected:    &Fork{Slot: "worker1", Body: "print hello"},
		},
		{
			description: "slot only",
			input:       "worker1",
			expected:    &Fork{Slot: "worker1"},
		},
		{
			description: "empty body after separator",
			input:       "worker1 ",
			expected:    &Fork{Slot: "worker1"},
		},
		{
			description: "line break terminates slot name",
			input:       "worker1\nprint hello",
			expected:    &Fork{Slot: "worker1", Body: "print hello"},
		},
		{
			description: "leading whitespace skipped",
			input:       "  etl_2 run",
			expected:    &Fork{Slot: "etl_2", Body: "run"},
		},
		{
			description: "underscores and digits",
			input:       "_9_task_ x",
			expected:    &Fork{Slot: "_9_task_", Body: "x"},
		},
		{
			description: "body kept verbatim after single separator",
			input:       "worker1  padded",
			expected:    &Fork{Slot: "worker1", Body: " padded"},
		},
		{
			description: "dash inside slot name",
			input:       "bad-name body",
			shouldError: true,
		},
		{
			description: "slot starting with dash",
			input:       "-bad body",
			shouldError: true,
		},
		{
			description: "empty input",
			input:       "",
			shouldError: true,
		},
		{
			description: "whitespace only",
			input:       "   ",
			shouldError: true,
		},
		{
			description: "punctuation terminator",
			input:       "worker1:go",
			shouldError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			result, err := Parse([]byte(tc.input))

			if tc.shouldError {
				assert.EqualError(t, err, model.ErrInvalidSlotName.Error())
				return
			}
			assert.NoError(t, err)
			assert.EqualValues(t, tc.expected, result)
		})
	}
}
