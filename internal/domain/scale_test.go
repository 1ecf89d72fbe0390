package domain_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/metamorphocus-api/internal/domain"
)

func TestCheckScale(t *testing.T) {
	tests := []struct {
		value  string
		places int32
		ok     bool
	}{
		{"1", domain.ScaleHours, true},
		{"0.25", domain.ScaleHours, true},
		{"0.001", domain.ScaleHours, false},
		{"2.5000", domain.ScaleHours, true},
		{"0.0001", domain.ScaleQuantity, true},
		{"0.00001", domain.ScaleQuantity, false},
		{"-0.125", domain.ScaleMoney, false},
	}
	for _, tc := range tests {
		t.Run(tc.value, func(t *testing.T) {
			err := domain.CheckScale("campo", decimal.RequireFromString(tc.value), tc.places)
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			var verr *domain.ValidationError
			assert.True(t, errors.As(err, &verr))
			assert.Equal(t, "campo", verr.Field)
		})
	}
}
