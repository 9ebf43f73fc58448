package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitBarList(t *testing.T) {
	cases := []struct {
		name  string
		value string
		want  []string
	}{
		{"empty", "", nil},
		{"blank", "  ", nil},
		{"single", "s1", []string{"s1"}},
		{"multiple", "s1|s2|s3", []string{"s1", "s2", "s3"}},
		{"drops empty entries", "s1||s2|", []string{"s1", "s2"}},
		{"trims whitespace", " s1 | s2 ", []string{"s1", "s2"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SplitBarList(tc.value))
		})
	}
}
