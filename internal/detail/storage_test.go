package detail

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageConstructAndDestruct(t *testing.T) {
	var s Storage
	assert.False(t, s.Constructed())

	p := Construct(&s, 7)
	require.True(t, s.Constructed())
	assert.Equal(t, 7, *p)
	assert.Same(t, p, Get[int](&s))

	s.Destruct()
	assert.False(t, s.Constructed())
}

func TestStorageReferenceDoesNotCopy(t *testing.T) {
	x := 3
	var s Storage
	Reference(&s, &x)
	*Get[int](&s) = 9
	assert.Equal(t, 9, x)
	s.Destruct()
	assert.Equal(t, 9, x)
}

func TestStoragePairingPanics(t *testing.T) {
	tests := []struct {
		name string
		run  func(s *Storage)
	}{
		{
			name: "construct twice",
			run: func(s *Storage) {
				Construct(s, 1)
				Construct(s, 2)
			},
		},
		{
			name: "reference over value",
			run: func(s *Storage) {
				x := 1
				Construct(s, 1)
				Reference(s, &x)
			},
		},
		{
			name: "destruct empty",
			run:  func(s *Storage) { s.Destruct() },
		},
		{
			name: "destruct twice",
			run: func(s *Storage) {
				Construct(s, 1)
				s.Destruct()
				s.Destruct()
			},
		},
		{
			name: "get empty",
			run:  func(s *Storage) { Get[int](s) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Storage
			assert.Panics(t, func() { tt.run(&s) })
		})
	}
}

func TestBufferFill(t *testing.T) {
	b := NewBuffer[label]()
	assert.False(t, b.Constructed())
	assert.Nil(t, b.Value())
	assert.Same(t, TypeInfoOf[label](), b.TypeInfo())

	p := Fill(b, label{text: "x"})
	assert.True(t, b.Constructed())
	assert.Same(t, p, BufferValue[label](b))

	assert.Panics(t, func() { Fill(NewBuffer[label](), 1) })
}

func TestBufferConstructCopyAndMove(t *testing.T) {
	registerFixtures()

	tests := []struct {
		name       string
		construct  func(b *Buffer, src *parent)
		wantCopies int
		wantMoves  int
		wantSource int
	}{
		{
			name:       "copy",
			construct:  func(b *Buffer, src *parent) { b.ConstructCopy(ptrOf(src)) },
			wantCopies: 1,
			wantSource: 5,
		},
		{
			name:       "move",
			construct:  func(b *Buffer, src *parent) { b.ConstructMove(ptrOf(src)) },
			wantMoves:  1,
			wantSource: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetTally()
			src := parent{i: 5}
			b := NewBuffer[parent]()
			tt.construct(b, &src)

			assert.Equal(t, 5, BufferValue[parent](b).i)
			assert.Equal(t, tt.wantSource, src.i)
			assert.Equal(t, tt.wantCopies, tally.parentCopies)
			assert.Equal(t, tt.wantMoves, tally.parentMoves)
		})
	}
}
