package criteria

import (
	"github.com/viant/slotor/service/dao"
)

// FilterBySlot matches a registry entry's slot against an optional "Slot"
// list parameter; with no parameters every entry matches.
func FilterBySlot(slot string, parameters []*dao.Parameter) bool {
	switch len(parameters) {
	case 0:
		return true
	case 1:
		if parameters[0].Name == "Slot" {
			switch actual := parameters[0].Value.(type) {
			case string:
				return slot == actual
			case []string:
				for _, s := range actual {
					if slot == s {
						return true
					}
				}
				return false
			}
		}
	}
	return true
}
