package number

import (
	"testing"

	"github.com/bmizerany/assert"
)

func TestFloor(t *testing.T) {
	data := map[string]string{
		"0.10304":     "0.1",
		"0.109999999": "0.1",
		"0.118":       "0.11",
	}

	for k, v := range data {
		t.Run(k, func(t *testing.T) {
			f := Floor(Decimal(k), 2)
			assert.Equal(t, v, f.String(), "should floor")
		})
	}
}

func TestMin(t *testing.T) {
	assert.Equal(t, "1", Min(Decimal("1"), Decimal("2")).String())
	assert.Equal(t, "1", Min(Decimal("2"), Decimal("1")).String())
}
