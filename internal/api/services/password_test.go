package services

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScryptHasher_RoundTrip(t *testing.T) {
	h := cheapHasher()

	v, err := h.Hash("hunter2")
	require.NoError(t, err)

	assert.True(t, h.Verify("hunter2", v))
	assert.False(t, h.Verify("hunter3", v))
	assert.False(t, h.Verify("", v))
}

func TestScryptHasher_Format(t *testing.T) {
	h := cheapHasher()

	v, err := h.Hash("pw")
	require.NoError(t, err)

	digest, salt, ok := strings.Cut(v, ".")
	require.True(t, ok)
	assert.Len(t, digest, 128)
	assert.Len(t, salt, 32)
	_, err = hex.DecodeString(digest)
	assert.NoError(t, err)
	_, err = hex.DecodeString(salt)
	assert.NoError(t, err)
}

func TestScryptHasher_FreshSaltPerHash(t *testing.T) {
	h := cheapHasher()

	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.True(t, h.Verify("same", a))
	assert.True(t, h.Verify("same", b))
}

func TestScryptHasher_MalformedVerifier(t *testing.T) {
	h := cheapHasher()
	good, err := h.Hash("pw")
	require.NoError(t, err)
	digest, salt, _ := strings.Cut(good, ".")

	cases := map[string]string{
		"empty":        "",
		"no separator": digest + salt,
		"empty digest": "." + salt,
		"empty salt":   digest + ".",
		"not hex":      "zz" + digest[2:] + "." + salt,
		"short digest": digest[:64] + "." + salt,
	}
	for name, v := range cases {
		t.Run(name, func(t *testing.T) {
			assert.False(t, h.Verify("pw", v))
		})
	}
}

// Verify compares digests with subtle.ConstantTimeCompare. A same-length
// digest differing only in the last byte must still be rejected, which a
// prefix or length check would miss.
func TestScryptHasher_RejectsSameLengthDigest(t *testing.T) {
	h := cheapHasher()
	good, err := h.Hash("pw")
	require.NoError(t, err)
	digest, salt, _ := strings.Cut(good, ".")

	raw, err := hex.DecodeString(digest)
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0x01
	tampered := hex.EncodeToString(raw) + "." + salt

	require.Len(t, tampered, len(good))
	assert.False(t, h.Verify("pw", tampered))
	assert.True(t, h.Verify("pw", good))
}
