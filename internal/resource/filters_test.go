package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilters_Merge(t *testing.T) {
	base := Filters{"status": "open", "location": "hamburg"}

	merged := base.Merge(Filters{"status": "closed", "category": "repair"})

	assert.Equal(t, Filters{
		"status":   "closed",
		"location": "hamburg",
		"category": "repair",
	}, merged)
	// Base is untouched.
	assert.Equal(t, "open", base["status"])
}

func TestFilters_MergeEmptyValueClears(t *testing.T) {
	base := Filters{"status": "open", "location": "hamburg"}

	merged := base.Merge(Filters{"location": ""})

	assert.Equal(t, Filters{"status": "open"}, merged)
}

func TestFilters_Equal(t *testing.T) {
	tests := []struct {
		name string
		a, b Filters
		want bool
	}{
		{"both empty", Filters{}, Filters{}, true},
		{"nil vs empty", nil, Filters{}, true},
		{"same", Filters{"a": "1"}, Filters{"a": "1"}, true},
		{"different value", Filters{"a": "1"}, Filters{"a": "2"}, false},
		{"different keys", Filters{"a": "1"}, Filters{"b": "1"}, false},
		{"subset", Filters{"a": "1"}, Filters{"a": "1", "b": "2"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Equal(tt.b))
		})
	}
}

func TestFilters_CloneIndependence(t *testing.T) {
	base := Filters{"status": "open"}
	clone := base.Clone()
	clone["status"] = "closed"

	assert.Equal(t, "open", base["status"])
}
