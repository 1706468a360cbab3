package kafka

import (
	"testing"

	"github.com/mosaicnetworks/gossamer/src/common"
	"github.com/stretchr/testify/require"
)

func TestStoreOffsetsAreSharedAcrossKeys(t *testing.T) {
	s := NewStore()

	require.Equal(t, 0, s.Append("a", 10))
	require.Equal(t, 1, s.Append("b", 20))
	require.Equal(t, 2, s.Append("a", 11))

	require.Equal(t, 2, s.Len("a"))
	require.Equal(t, 1, s.Len("b"))
	require.Equal(t, 0, s.Len("c"))
	require.Equal(t, 2, s.Keys())
}

func TestStorePoll(t *testing.T) {
	s := NewStore()
	for i := 0; i < 10; i++ {
		key := "even"
		if i%2 == 1 {
			key = "odd"
		}
		s.Append(key, i*100)
	}

	require.Equal(t, []Entry{{4, 400}, {6, 600}, {8, 800}}, s.Poll("even", 3))
	require.Equal(t, []Entry{{5, 500}, {7, 700}, {9, 900}}, s.Poll("odd", 5))
	require.Empty(t, s.Poll("odd", 10))

	unknown := s.Poll("nope", 0)
	require.NotNil(t, unknown)
	require.Empty(t, unknown)
}

func TestStoreCommitNeverMovesBackwards(t *testing.T) {
	s := NewStore()

	_, err := s.Committed("a")
	require.True(t, common.IsStore(err, common.KeyNotFound))

	s.Commit("a", 5)
	s.Commit("a", 3)
	offset, err := s.Committed("a")
	require.NoError(t, err)
	require.Equal(t, 5, offset)

	s.Commit("a", 8)
	offset, err = s.Committed("a")
	require.NoError(t, err)
	require.Equal(t, 8, offset)
}
