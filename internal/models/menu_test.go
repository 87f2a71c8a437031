package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func menuFixture() []MenuItem {
	return []MenuItem{
		{Name: "Patatas Bravas", DishType: DishTypeTapa, Price: 6.50},
		{Name: "Paella Valenciana", DishType: DishTypeMainCourse, Price: 14.00},
		{Name: "Crema Catalana", DishType: DishTypeDessert, Price: 5.00},
		{Name: "Agua con gas", DishType: DishTypeBeverage, Price: 2.00},
	}
}

func names(items []MenuItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Name)
	}
	return out
}

func TestFilterMenu(t *testing.T) {
	items := menuFixture()

	tests := []struct {
		name   string
		filter MenuFilter
		want   []string
	}{
		{
			name:   "empty filter returns everything",
			filter: MenuFilter{},
			want:   []string{"Patatas Bravas", "Paella Valenciana", "Crema Catalana", "Agua con gas"},
		},
		{
			name:   "all sentinel behaves like no type filter",
			filter: MenuFilter{DishType: DishTypeAll},
			want:   []string{"Patatas Bravas", "Paella Valenciana", "Crema Catalana", "Agua con gas"},
		},
		{
			name:   "by dish type",
			filter: MenuFilter{DishType: DishTypeDessert},
			want:   []string{"Crema Catalana"},
		},
		{
			name:   "substring is case-insensitive",
			filter: MenuFilter{NameSubstring: "paTA"},
			want:   []string{"Patatas Bravas"},
		},
		{
			name:   "both predicates AND together",
			filter: MenuFilter{DishType: DishTypeMainCourse, NameSubstring: "pa"},
			want:   []string{"Paella Valenciana"},
		},
		{
			name:   "no match",
			filter: MenuFilter{DishType: DishTypeStarter, NameSubstring: "paella"},
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(FilterMenu(items, tt.filter)))
		})
	}
}

func TestFilterMenuDoesNotMutateInput(t *testing.T) {
	items := menuFixture()

	FilterMenu(items, MenuFilter{DishType: DishTypeTapa})

	assert.Equal(t, menuFixture(), items)
}
