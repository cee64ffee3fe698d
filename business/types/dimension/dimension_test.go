package dimension_test

import (
	"math"
	"testing"

	"github.com/jcpaschoal/kangaroute/business/types/dimension"
	"github.com/stretchr/testify/assert"
)

func Test_Parse(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		ok    bool
	}{
		{"positive", 5, true},
		{"fraction", 0.5, true},
		{"zero", 0, false},
		{"negative", -1, false},
		{"nan", math.NaN(), false},
		{"inf", math.Inf(1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := dimension.Parse(tt.value)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
		})
	}
}

func Test_Volume(t *testing.T) {
	d := dimension.MustParse(5)
	assert.Equal(t, 125.0, dimension.Volume(d, d, d))
	assert.Equal(t, "12.5", dimension.MustParse(12.5).String())
}
