package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPosition_Compare(t *testing.T) {
	tests := []struct {
		name string
		a, b Position
		want int
	}{
		{"same", NewPosition(1, 2), NewPosition(1, 2), 0},
		{"earlier line", NewPosition(0, 9), NewPosition(1, 0), -1},
		{"later line", NewPosition(2, 0), NewPosition(1, 9), 1},
		{"earlier character", NewPosition(1, 1), NewPosition(1, 2), -1},
		{"later character", NewPosition(1, 3), NewPosition(1, 2), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Compare(tt.b))
			assert.Equal(t, tt.want < 0, tt.a.IsBefore(tt.b))
			assert.Equal(t, tt.want > 0, tt.a.IsAfter(tt.b))
		})
	}
}

func TestPosition_Moves(t *testing.T) {
	p := NewPosition(3, 4)

	assert.Equal(t, NewPosition(3, 6), p.AddCharacters(2))
	assert.Equal(t, NewPosition(3, 0), p.RemoveCharacters(10))
	assert.Equal(t, NewPosition(3, 0), p.PutAtStartOfLine())
	assert.Equal(t, NewPosition(4, 0), p.PutAtNextLine())
	assert.Equal(t, "4:5", p.String())
}

func TestNewSelection_NormalizesOrder(t *testing.T) {
	s := NewSelection(2, 5, 1, 0)

	assert.Equal(t, NewPosition(1, 0), s.Start)
	assert.Equal(t, NewPosition(2, 5), s.End)
	assert.False(t, s.IsEmpty())
	assert.True(t, Cursor(NewPosition(1, 1)).IsEmpty())
}

func TestSelection_IsInside(t *testing.T) {
	outer := NewSelection(1, 0, 3, 10)

	tests := []struct {
		name  string
		inner Selection
		want  bool
	}{
		{"strictly inside", NewSelection(2, 0, 2, 4), true},
		{"same boundaries", outer, true},
		{"cursor on start", Cursor(NewPosition(1, 0)), true},
		{"cursor on end", Cursor(NewPosition(3, 10)), true},
		{"starts before", NewSelection(0, 5, 2, 0), false},
		{"ends after", NewSelection(2, 0, 3, 11), false},
		{"disjoint", NewSelection(5, 0, 5, 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.inner.IsInside(outer))
			assert.Equal(t, tt.want, outer.Contains(tt.inner))
		})
	}
}

func TestSelection_Extensions(t *testing.T) {
	s := NewSelection(2, 4, 2, 8)

	assert.Equal(t, NewSelection(2, 0, 2, 8), s.ExtendToStartOfLine())
	assert.Equal(t, NewSelection(2, 4, 3, 0), s.ExtendToStartOfNextLine())

	t.Run("extend start only widens", func(t *testing.T) {
		assert.Equal(t, NewSelection(1, 0, 2, 8), s.ExtendStartTo(Cursor(NewPosition(1, 0))))
		assert.Equal(t, s, s.ExtendStartTo(Cursor(NewPosition(2, 6))))
	})

	t.Run("extend end only widens", func(t *testing.T) {
		assert.Equal(t, NewSelection(2, 4, 4, 1), s.ExtendEndTo(Cursor(NewPosition(4, 1))))
		assert.Equal(t, s, s.ExtendEndTo(Cursor(NewPosition(2, 5))))
	})
}

func TestSelection_Lines(t *testing.T) {
	assert.True(t, NewSelection(1, 0, 1, 9).IsOneLine())
	assert.False(t, NewSelection(1, 0, 2, 0).IsOneLine())
	assert.Equal(t, 2, NewSelection(1, 0, 3, 0).Height())
	assert.True(t, NewSelection(1, 0, 4, 0).IsSameLine(NewSelection(1, 7, 1, 8)))
	assert.Equal(t, "2:1-2:5", NewSelection(1, 0, 1, 4).String())
}
