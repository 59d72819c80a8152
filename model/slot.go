package model

import "errors"

// ErrInvalidSlotName rejects slot names outside the {letters, digits, '_'}
// grammar. The message is part of the public invocation surface and is
// reported verbatim to the user.
var ErrInvalidSlotName = errors.New("Slot name must contain alpha, numbers and '_' only. Usage :fork slotName <body>")

// ValidateSlot checks name against the slot grammar: one or more characters
// from [A-Za-z0-9_]. Slot names are case-sensitive.
func ValidateSlot(name string) error {
	if name == "" {
		return ErrInvalidSlotName
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_' {
			continue
		}
		return ErrInvalidSlotName
	}
	return nil
}
