package dao

// Parameter is a named filter passed to List. The slot stores understand a
// single "Slot" parameter holding one name or a list of names; anything else
// is ignored.
type Parameter struct {
	Name  string
	Value interface{}
}

// NewParameter builds a list filter; a single value is stored as a string,
// several as a []string.
func NewParameter(name string, values ...string) *Parameter {
	if len(values) == 1 {
		return &Parameter{Name: name, Value: values[0]}
	}
	return &Parameter{Name: name, Value: values}
}

// BySlot filters List results to the given slot names.
func BySlot(slots ...string) *Parameter {
	return NewParameter("Slot", slots...)
}
