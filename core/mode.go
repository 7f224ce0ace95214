package core

import (
	"fmt"
	"strings"
)

type SearchMode int

const (
	// SearchModeKeyword matches query words literally.
	SearchModeKeyword SearchMode = iota + 1
	// SearchModeSemantic matches expanded query terms approximately.
	SearchModeSemantic
)

func (m SearchMode) String() string {
	switch m {
	case SearchModeKeyword:
		return "keyword"
	case SearchModeSemantic:
		return "semantic"
	default:
		return fmt.Sprintf("SearchMode(%d)", int(m))
	}
}

// ParseSearchMode converts "keyword" or "semantic" (any case) to a SearchMode.
func ParseSearchMode(s string) (SearchMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "keyword":
		return SearchModeKeyword, nil
	case "semantic":
		return SearchModeSemantic, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidSearchMode, s)
	}
}
