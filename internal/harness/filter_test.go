package harness

import (
	"context"
	"testing"
)

func namedCases(names ...string) []Case {
	cases := make([]Case, 0, len(names))
	for _, n := range names {
		cases = append(cases, Case{Name: n, Run: func(ctx context.Context) error { return nil }})
	}
	return cases
}

func TestFilterByName(t *testing.T) {
	tests := []struct {
		name     string
		cases    []Case
		pattern  string
		expected int
	}{
		{
			name:     "empty pattern returns all",
			cases:    namedCases("basic_auth", "list_artists", "create_artist"),
			pattern:  "",
			expected: 3,
		},
		{
			name:     "wildcard prefix",
			cases:    namedCases("create_artist", "create_smartlink", "list_artists"),
			pattern:  "create*",
			expected: 2,
		},
		{
			name:     "wildcard substring",
			cases:    namedCases("list_artists", "search_artists", "list_actionpages"),
			pattern:  "*artists*",
			expected: 2,
		},
		{
			name:     "simple contains match",
			cases:    namedCases("basic_auth", "jwt_auth", "list_artists"),
			pattern:  "auth",
			expected: 2,
		},
		{
			name:     "no matches",
			cases:    namedCases("basic_auth", "jwt_auth"),
			pattern:  "*webhook*",
			expected: 0,
		},
		{
			name:     "multiple wildcards",
			cases:    namedCases("marketing_create_artist", "marketing_list_artists", "publisher_track_play"),
			pattern:  "*marketing*artist*",
			expected: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FilterByName(tt.cases, tt.pattern)
			if len(result) != tt.expected {
				t.Errorf("expected %d matches, got %d", tt.expected, len(result))
			}
		})
	}
}

func TestFilterByName_EmptyCaseList(t *testing.T) {
	if got := FilterByName(nil, "*auth*"); len(got) != 0 {
		t.Errorf("expected empty result, got %d items", len(got))
	}
}
