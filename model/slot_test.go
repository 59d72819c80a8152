package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSlot(t *testing.T) {
	var testCases = []struct {
		description string
		slot        string
		valid       bool
	}{
		{description: "letters", slot: "worker", valid: true},
		{description: "mixed case with digits and underscore", slot: "Worker_1", valid: true},
		{description: "underscore only", slot: "_", valid: true},
		{description: "digits only", slot: "42", valid: true},
		{description: "empty", slot: "", valid: false},
		{description: "dash", slot: "bad-name", valid: false},
		{description: "embedded space", slot: "two words", valid: false},
		{description: "dot", slot: "a.b", valid: false},
		{description: "non ascii letter", slot: "wörker", valid: false},
		{description: "colon prefix", slot: ":fork", valid: false},
	}

	for _, testCase := range testCases {
		err := ValidateSlot(testCase.slot)
		if testCase.valid {
			assert.Nil(t, err, testCase.description)
			continue
		}
		assert.EqualError(t, err, "Slot name must contain alpha, numbers and '_' only. Usage :fork slotName <body>", testCase.description)
	}
}
