package config

import (
	"reflect"
	"testing"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []string
	}{
		{"empty", "", nil},
		{"single", "storage.example.com", []string{"storage.example.com"}},
		{"spaces and blanks", " a.example.com , ,b.example.com:9000 ", []string{"a.example.com", "b.example.com:9000"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := splitList(tt.value); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitList(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
