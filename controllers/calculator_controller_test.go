// File: /controllers/calculator_controller_test.go
package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateCaloriesMifflinStJeor(t *testing.T) {
	cases := []struct {
		name       string
		req        CalculateCaloriesRequest
		wantBMR    float64
		wantTDEE   float64
		wantTarget float64
	}{
		{
			name: "male moderate maintain",
			req: CalculateCaloriesRequest{
				Gender: "male", Age: 30, WeightKg: 70, HeightCm: 175,
				ActivityLevel: "moderate", Goal: "maintain",
			},
			// 10*70 + 6.25*175 - 5*30 + 5 = 1648.75
			wantBMR:    1649,
			wantTDEE:   2556,
			wantTarget: 2556,
		},
		{
			name: "female sedentary lose",
			req: CalculateCaloriesRequest{
				Gender: "female", Age: 25, WeightKg: 60, HeightCm: 165,
				ActivityLevel: "sedentary", Goal: "lose_weight",
			},
			// 10*60 + 6.25*165 - 5*25 - 161 = 1345.25
			wantBMR:    1345,
			wantTDEE:   1614,
			wantTarget: 1114,
		},
		{
			name: "unknown activity falls back to sedentary",
			req: CalculateCaloriesRequest{
				Gender: "male", Age: 40, WeightKg: 80, HeightCm: 180,
				ActivityLevel: "couch", Goal: "gain_weight",
			},
			// 10*80 + 6.25*180 - 5*40 + 5 = 1730
			wantBMR:    1730,
			wantTDEE:   2076,
			wantTarget: 2376,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := calculateCalories(tc.req)
			assert.Equal(t, tc.wantBMR, result.BMR)
			assert.Equal(t, tc.wantTDEE, result.TDEE)
			assert.Equal(t, tc.wantTarget, result.TargetKcal)
		})
	}
}

func TestCalculateCaloriesUnknownGoalMaintains(t *testing.T) {
	req := CalculateCaloriesRequest{
		Gender: "female", Age: 30, WeightKg: 55, HeightCm: 160,
		ActivityLevel: "light", Goal: "bulk-cut-whatever",
	}
	result := calculateCalories(req)
	assert.Equal(t, result.TDEE, result.TargetKcal)
}
