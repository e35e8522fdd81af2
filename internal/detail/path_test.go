package detail

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExplain(t *testing.T) {
	registerFixtures()

	parentInfo, childInfo, labelInfo := TypeInfoOf[parent](), TypeInfoOf[child](), TypeInfoOf[label]()

	tests := []struct {
		name   string
		source *TypeInfo
		target *TypeInfo
		want   []Hop
		ok     bool
	}{
		{name: "same type", source: childInfo, target: childInfo, ok: true},
		{
			name:   "base",
			source: childInfo,
			target: parentInfo,
			want:   []Hop{{Kind: HopBase, From: childInfo, To: parentInfo}},
			ok:     true,
		},
		{
			name:   "conversion through base",
			source: childInfo,
			target: labelInfo,
			want: []Hop{
				{Kind: HopBase, From: childInfo, To: parentInfo},
				{Kind: HopConversion, From: parentInfo, To: labelInfo},
			},
			ok: true,
		},
		{name: "no path", source: labelInfo, target: parentInfo},
		{name: "no downcast", source: parentInfo, target: childInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Explain(tt.source, tt.target)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHopKindString(t *testing.T) {
	assert.Equal(t, "base", HopBase.String())
	assert.Equal(t, "conversion", HopConversion.String())
	assert.Equal(t, "HopKind(7)", HopKind(7).String())
}

func TestNewPathCacheRejectsBadSize(t *testing.T) {
	_, err := NewPathCache(0)
	assert.Error(t, err)
}

func TestPathCacheRecomputesAfterRegistration(t *testing.T) {
	type from struct{}
	type to struct{}

	cache, err := NewPathCache(4)
	require.NoError(t, err)

	src, dst := TypeInfoOf[from](), TypeInfoOf[to]()
	_, ok := cache.Explain(src, dst)
	assert.False(t, ok)
	assert.Equal(t, 1, cache.Len())

	src.RegisterConversion(NewConversion(func(*from) to { return to{} }))

	path, ok := cache.Explain(src, dst)
	require.True(t, ok)
	assert.Equal(t, []Hop{{Kind: HopConversion, From: src, To: dst}}, path)
	assert.Equal(t, 1, cache.Len())
}

func TestPathCacheEvicts(t *testing.T) {
	registerFixtures()

	cache, err := NewPathCache(2)
	require.NoError(t, err)

	infos := []*TypeInfo{TypeInfoOf[parent](), TypeInfoOf[child](), TypeInfoOf[label](), TypeInfoOf[unrelated]()}
	for _, target := range infos {
		cache.Explain(TypeInfoOf[child](), target)
	}
	assert.Equal(t, 2, cache.Len())
}
