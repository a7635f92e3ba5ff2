package ranges

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rest2 "github.com/myxu95/TakeA-REST2"
)

func TestEncode(Te *testing.T) {
	for _, c := range []struct {
		in   []int
		want string
	}{
		{[]int{1, 2, 3, 5, 6, 9}, "1-3,5-6,9"},
		{[]int{7}, "7"},
		{[]int{4, 5}, "4-5"},
		{[]int{9, 5, 1, 2, 3, 6}, "1-3,5-6,9"}, //unsorted input
		{[]int{1, 1, 2, 2, 3}, "1-3"},          //duplicates
		{[]int{10, 12, 14}, "10,12,14"},
	} {
		got, err := Encode(c.in)
		require.NoError(Te, err)
		assert.Equal(Te, c.want, got)
	}
}

func TestEncodeEmpty(Te *testing.T) {
	_, err := Encode(nil)
	require.ErrorIs(Te, err, rest2.ErrEmptyIndexSet)
}

func TestEncodeWrap(Te *testing.T) {
	//odd numbers never merge into runs, so the encoding grows fast
	var in []int
	for i := 1; i < 200; i += 2 {
		in = append(in, i)
	}
	got, err := Encode(in)
	require.NoError(Te, err)
	require.Contains(Te, got, " \\\n    ")
	for _, line := range strings.Split(got, "\n") {
		//continuation lines carry a 4-space indent on top of the width
		assert.LessOrEqual(Te, len(strings.TrimRight(line, " \\")), Width+4)
	}
	back, err := Decode(got)
	require.NoError(Te, err)
	assert.Equal(Te, in, back)
}

func TestDecode(Te *testing.T) {
	got, err := Decode("1-3,5-6,9")
	require.NoError(Te, err)
	assert.Equal(Te, []int{1, 2, 3, 5, 6, 9}, got)

	_, err = Decode("")
	require.ErrorIs(Te, err, rest2.ErrEmptyIndexSet)
	_, err = Decode("1-x")
	require.Error(Te, err)
	_, err = Decode("9-5")
	require.Error(Te, err)
}

func TestDecodeContinuation(Te *testing.T) {
	//a line break separates runs even without a comma, so 55 and 57 on
	//adjacent lines must not fuse into 5557
	got, err := Decode("53,55 \\\n    57,59")
	require.NoError(Te, err)
	assert.Equal(Te, []int{53, 55, 57, 59}, got)
	//a comma before the break must not produce an empty run either
	got, err = Decode("1-3, \\\n    5,9")
	require.NoError(Te, err)
	assert.Equal(Te, []int{1, 2, 3, 5, 9}, got)
}

func TestRoundTrip(Te *testing.T) {
	in := []int{1, 2, 3, 4, 10, 11, 20, 35, 36, 37, 100}
	enc, err := Encode(in)
	require.NoError(Te, err)
	back, err := Decode(enc)
	require.NoError(Te, err)
	assert.Equal(Te, in, back)
}
