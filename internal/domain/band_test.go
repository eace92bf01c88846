package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyBand(t *testing.T) {
	tests := []struct {
		name string
		freq float64
		want string
	}{
		{"20m lower edge inclusive", 14.0, "20m"},
		{"20m typical wspr", 14.0956, "20m"},
		{"20m upper edge exclusive", 14.35, Unknown},
		{"2200m", 0.1365, "2200m"},
		{"630m", 0.4742, "630m"},
		{"160m", 1.8366, "160m"},
		{"80m", 3.5686, "80m"},
		{"60m", 5.3647, "60m"},
		{"40m", 7.0386, "40m"},
		{"30m", 10.1387, "30m"},
		{"17m", 18.1046, "17m"},
		{"15m", 21.0946, "15m"},
		{"12m", 24.9246, "12m"},
		{"10m", 28.1246, "10m"},
		{"6m", 50.293, "6m"},
		{"2m", 144.489, "2m"},
		{"zero", 0.0, Unknown},
		{"between bands", 8.5, Unknown},
		{"negative", -14.0, Unknown},
		{"above table", 432.3, Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyBand(tt.freq))
		})
	}
}

func TestClassifyBand_NaN(t *testing.T) {
	assert.Equal(t, Unknown, ClassifyBand(math.NaN()))
}

func TestBandPlan_OrderedAndDisjoint(t *testing.T) {
	for i := 1; i < len(bandPlan); i++ {
		prev, cur := bandPlan[i-1], bandPlan[i]
		assert.Less(t, prev.Low, prev.High, prev.Label)
		assert.LessOrEqual(t, prev.High, cur.Low, "%s overlaps %s", prev.Label, cur.Label)
	}
}
