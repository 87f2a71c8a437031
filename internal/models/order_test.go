package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanAdvance(t *testing.T) {
	tests := []struct {
		name    string
		current OrderStatus
		target  OrderStatus
		want    bool
	}{
		{"pending to served", OrderPending, OrderServed, true},
		{"pending to completed", OrderPending, OrderCompleted, true},
		{"served to completed", OrderServed, OrderCompleted, true},
		{"served to pending", OrderServed, OrderPending, false},
		{"completed to served", OrderCompleted, OrderServed, false},
		{"same status", OrderServed, OrderServed, false},
		{"unknown current", OrderStatus("occupied"), OrderServed, false},
		{"unknown target", OrderPending, OrderStatus("done"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanAdvance(tt.current, tt.target))
		})
	}
}

func TestTableStatusFor(t *testing.T) {
	assert.Equal(t, TablePending, TableStatusFor(OrderPending))
	assert.Equal(t, TableServed, TableStatusFor(OrderServed))
	assert.Equal(t, TableFree, TableStatusFor(OrderCompleted))
}

func TestFilterQuantities(t *testing.T) {
	in := ItemQuantities{"a": 2, "b": 0, "c": -1, "d": 1}

	out := FilterQuantities(in)

	assert.Equal(t, ItemQuantities{"a": 2, "d": 1}, out)
	assert.Equal(t, ItemQuantities{"a": 2, "b": 0, "c": -1, "d": 1}, in, "input must not be mutated")
}

func TestMergeQuantities(t *testing.T) {
	tests := []struct {
		name  string
		base  ItemQuantities
		delta ItemQuantities
		want  ItemQuantities
	}{
		{
			name:  "adds onto existing keys",
			base:  ItemQuantities{"a": 2, "b": 1},
			delta: ItemQuantities{"a": 3},
			want:  ItemQuantities{"a": 5, "b": 1},
		},
		{
			name:  "missing keys count as zero",
			base:  ItemQuantities{"a": 2},
			delta: ItemQuantities{"b": 4},
			want:  ItemQuantities{"a": 2, "b": 4},
		},
		{
			name:  "non-positive deltas are skipped",
			base:  ItemQuantities{"a": 2},
			delta: ItemQuantities{"a": -5, "b": 0},
			want:  ItemQuantities{"a": 2},
		},
		{
			name:  "nil base",
			base:  nil,
			delta: ItemQuantities{"a": 1},
			want:  ItemQuantities{"a": 1},
		},
		{
			name:  "nil delta copies base",
			base:  ItemQuantities{"a": 1},
			delta: nil,
			want:  ItemQuantities{"a": 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MergeQuantities(tt.base, tt.delta))
		})
	}
}

func TestMergeQuantitiesDoesNotAliasBase(t *testing.T) {
	base := ItemQuantities{"a": 1}

	out := MergeQuantities(base, ItemQuantities{"a": 1})
	out["a"] = 99

	assert.Equal(t, 1, base["a"])
}

func TestItemQuantitiesScan(t *testing.T) {
	var q ItemQuantities
	assert.NoError(t, q.Scan([]byte(`{"a":2,"b":1}`)))
	assert.Equal(t, ItemQuantities{"a": 2, "b": 1}, q)

	var empty ItemQuantities
	assert.NoError(t, empty.Scan(nil))
	assert.Equal(t, ItemQuantities{}, empty)

	var bad ItemQuantities
	assert.Error(t, bad.Scan(42))
}
