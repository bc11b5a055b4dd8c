package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatOrderNumber(t *testing.T) {
	tests := []struct {
		seq      int64
		expected string
	}{
		{1001, "ORD-1001"},
		{1002, "ORD-1002"},
		{99999, "ORD-99999"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatOrderNumber(tt.seq))
	}
}
