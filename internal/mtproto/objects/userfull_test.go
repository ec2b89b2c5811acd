// Copyright (c) 2024 Wiregram Authors

package objects_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wiregram/wiregram/internal/encoding/tl"
	"github.com/wiregram/wiregram/internal/mtproto/objects"
)

func TestUserFullMinimal(t *testing.T) {
	encoded := encodeWith(func(e *tl.Encoder) {
		e.PutCRC(objects.CrcUserFull)
		e.PutUint(0) // flags
		e.PutLong(9000)
		e.PutCRC(objects.CrcPeerNotifySettings)
		e.PutUint(0)
		e.PutInt(3) // common_chats_count
	})

	user, err := objects.DecodeUserFull(tl.NewDecoderBytes(encoded))
	require.NoError(t, err)

	assert.Equal(t, int64(9000), user.ID)
	assert.False(t, user.Blocked)
	assert.Nil(t, user.About)
	assert.Nil(t, user.ProfilePhoto)
	assert.Equal(t, int32(3), user.CommonChatsCount)
	assert.Nil(t, user.TTLPeriod)
	require.NotNil(t, user.NotifySettings)
}

func TestUserFullWithOptionals(t *testing.T) {
	flags := uint32(1<<0 | 1<<1 | 1<<2 | 1<<6 | 1<<14)

	encoded := encodeWith(func(e *tl.Encoder) {
		e.PutCRC(objects.CrcUserFull)
		e.PutUint(flags)
		e.PutLong(77)
		e.PutString("bio") // about, flag 1
		e.PutCRC(objects.CrcPhotoEmpty) // profile_photo, flag 2
		e.PutLong(12)
		e.PutCRC(objects.CrcPeerNotifySettings)
		e.PutUint(0)
		e.PutInt(500) // pinned_msg_id, flag 6
		e.PutInt(10)  // common_chats_count
		e.PutInt(86400) // ttl_period, flag 14
	})

	user, err := objects.DecodeUserFull(tl.NewDecoderBytes(encoded))
	require.NoError(t, err)

	assert.True(t, user.Blocked)
	assert.Equal(t, int64(77), user.ID)
	require.NotNil(t, user.About)
	assert.Equal(t, "bio", *user.About)

	photo, ok := user.ProfilePhoto.(*objects.PhotoEmpty)
	require.True(t, ok)
	assert.Equal(t, int64(12), photo.ID)
	assert.Nil(t, user.PersonalPhoto)
	assert.Nil(t, user.FallbackPhoto)

	require.NotNil(t, user.PinnedMsgID)
	assert.Equal(t, int32(500), *user.PinnedMsgID)
	assert.Equal(t, int32(10), user.CommonChatsCount)
	require.NotNil(t, user.TTLPeriod)
	assert.Equal(t, int32(86400), *user.TTLPeriod)
	assert.Nil(t, user.PrivateForwardName)
}

func TestUserFullWrongConstructor(t *testing.T) {
	_, err := objects.DecodeUserFull(tl.NewDecoderBytes(Hexed("ffffffff")))

	var unknownErr *tl.ErrUnknownConstructor
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "UserFull", unknownErr.Type)
	assert.Equal(t, []uint32{objects.CrcUserFull}, unknownErr.Want)
}
