package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBanKeyRoundTrip(t *testing.T) {
	keys := []BanKey{
		{CommunityID: 1, SubjectID: 2},
		{CommunityID: -1001234567890, SubjectID: 99},
		{CommunityID: 0, SubjectID: 0},
	}
	for _, key := range keys {
		parsed, err := ParseBanKey(key.String())
		require.NoError(t, err)
		assert.Equal(t, key, parsed)
	}
}

func TestParseBanKeyInvalid(t *testing.T) {
	for _, input := range []string{"", "123", "a:b", "1:2:3"} {
		_, err := ParseBanKey(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestIDListRoundTrip(t *testing.T) {
	ids := []int64{5, 1, -3, 5}
	decoded, err := DecodeIDList(EncodeIDList(ids))
	require.NoError(t, err)
	assert.Equal(t, ids, decoded)

	decoded, err = DecodeIDList("")
	require.NoError(t, err)
	assert.Empty(t, decoded)
}

func TestDecodeIDListInvalid(t *testing.T) {
	_, err := DecodeIDList("1,x,3")
	assert.Error(t, err)
}
