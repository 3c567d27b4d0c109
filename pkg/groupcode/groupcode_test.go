package groupcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	testCases := []struct {
		code int
		kind ValueKind
	}{
		{0, String},
		{2, String},
		{5, Handle},
		{8, String},
		{10, Point},
		{39, Point},
		{40, Double},
		{50, Double},
		{62, Int16},
		{70, Int16},
		{90, Int32},
		{100, String},
		{102, String},
		{105, Handle},
		{140, Double},
		{160, Int64},
		{210, Double},
		{280, Byte},
		{290, Bool},
		{310, BinaryChunk},
		{330, ObjectID},
		{360, ObjectID},
		{370, Int16},
		{390, Handle},
		{420, Int32},
		{440, Int32},
		{999, Comment},
		{1000, ExtendedString},
		{1001, ExtendedString},
		{1004, ExtendedChunk},
		{1005, ExtendedHandle},
		{1010, ExtendedDouble},
		{1040, ExtendedDouble},
		{1070, ExtendedInt16},
		{1071, ExtendedInt32},
		{-1, Handle},
		{-3, String},
	}

	for _, tc := range testCases {
		t.Run(tc.kind.String(), func(t *testing.T) {
			k, err := Classify(tc.code)
			require.NoError(t, err)
			assert.Equal(t, tc.kind, k, "code %d", tc.code)
		})
	}
}

func TestClassifyUnknown(t *testing.T) {
	for _, code := range []int{80, 89, 103, 150, 180, 200, 240, 500, 998, 1072, -6} {
		_, err := Classify(code)
		assert.ErrorIs(t, err, ErrUnknownGroupCode, "code %d", code)
	}

	assert.Panics(t, func() { MustClassify(80) })
}

func TestValueKindPredicates(t *testing.T) {
	assert.True(t, ObjectID.IsHandle())
	assert.True(t, ExtendedHandle.IsHandle())
	assert.False(t, String.IsHandle())

	assert.True(t, Comment.IsString())
	assert.True(t, Point.IsFloat())
	assert.True(t, Byte.IsInteger())
	assert.False(t, Bool.IsInteger())
	assert.True(t, ExtendedChunk.IsChunk())

	assert.Equal(t, "ValueKind(200)", ValueKind(200).String())
}
