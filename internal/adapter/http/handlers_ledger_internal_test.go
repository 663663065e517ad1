package adapthttp

import "testing"

func TestMealInputScaled(t *testing.T) {
	cal := func(v float64) *float64 { return &v }

	tests := []struct {
		name    string
		in      mealInput
		wantErr bool
	}{
		{"valid", mealInput{Name: "Rice", Calories: cal(200), Carbs: 45}, false},
		{"zero calories", mealInput{Name: "Water", Calories: cal(0)}, false},
		{"missing calories", mealInput{Name: "Rice"}, true},
		{"fractional calories", mealInput{Name: "Rice", Calories: cal(1.5)}, true},
		{"no name", mealInput{Calories: cal(10)}, true},
		{"negative fat", mealInput{Name: "Rice", Calories: cal(10), Fat: -1}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			food, err := tc.in.scaled()
			if (err != nil) != tc.wantErr {
				t.Fatalf("scaled() error = %v, wantErr %v", err, tc.wantErr)
			}
			if err == nil && food.Name != tc.in.Name {
				t.Errorf("unexpected food %+v", food)
			}
		})
	}
}
