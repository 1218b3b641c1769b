package browse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNearBottom(t *testing.T) {
	tests := []struct {
		name                              string
		offset, visible, total, threshold int
		want                              bool
	}{
		{name: "empty list", visible: 10, want: true},
		{name: "short list", visible: 10, total: 4, threshold: 3, want: true},
		{name: "top of long list", visible: 10, total: 100, threshold: 3},
		{name: "just outside threshold", offset: 86, visible: 10, total: 100, threshold: 3},
		{name: "at threshold", offset: 87, visible: 10, total: 100, threshold: 3, want: true},
		{name: "at end", offset: 90, visible: 10, total: 100, threshold: 3, want: true},
		{name: "negative threshold is zero", offset: 89, visible: 10, total: 100, threshold: -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NearBottom(tt.offset, tt.visible, tt.total, tt.threshold))
		})
	}
}
