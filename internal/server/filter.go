package server

import (
	"fmt"
	"strings"
)

// ParseMembershipFilter parses the list-query restriction expression
// "id in (a,b,c)" into the set of IDs it names. An empty expression
// means no restriction and returns nil.
func ParseMembershipFilter(filter string) ([]string, error) {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return nil, nil
	}

	rest, ok := strings.CutPrefix(filter, "id in (")
	if !ok {
		return nil, fmt.Errorf("unsupported filter expression: %q", filter)
	}
	inner, ok := strings.CutSuffix(rest, ")")
	if !ok {
		return nil, fmt.Errorf("unterminated filter expression: %q", filter)
	}

	var ids []string
	for _, id := range strings.Split(inner, ",") {
		id = strings.TrimSpace(id)
		if id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("empty filter expression: %q", filter)
	}
	return ids, nil
}
