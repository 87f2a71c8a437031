package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTableStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want TableStatus
	}{
		{"free", TableFree},
		{"pending", TablePending},
		{"served", TableServed},
		{"occupied", TablePending},
		{"OCCUPIED", TablePending},
		{"pendiente", TablePending},
		{"ocupada", TablePending},
		{"servido", TableServed},
		{" served ", TableServed},
		{"", TableFree},
		{"libre", TableFree},
		{"garbage", TableFree},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTableStatus(tt.raw))
		})
	}
}

func TestTableStatusScan(t *testing.T) {
	var s TableStatus
	assert.NoError(t, s.Scan("occupied"))
	assert.Equal(t, TablePending, s)

	assert.NoError(t, s.Scan([]byte("served")))
	assert.Equal(t, TableServed, s)

	assert.NoError(t, s.Scan(nil))
	assert.Equal(t, TableFree, s)

	assert.Error(t, s.Scan(3.14))
}

func TestTableView(t *testing.T) {
	table := Table{Numero: "7", PosX: 120.5, PosY: -40}

	view := table.View()

	assert.Equal(t, Position{X: 120.5, Y: -40}, view.Position)
	assert.Equal(t, "7", view.Numero)
}
