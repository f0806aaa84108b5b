package postgres

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditLog_EncodeRoundTrip(t *testing.T) {
	log, err := NewAuditLog(nil)
	require.NoError(t, err)

	small := json.RawMessage(`{"name":{"old":"a","new":"b"}}`)
	plain, compressed, algo := log.encode(small)
	assert.Equal(t, CompressionNone, algo)
	assert.Nil(t, compressed)
	assert.Equal(t, small, plain)

	large := json.RawMessage(`{"notes":"` + string(bytes.Repeat([]byte("x"), DefaultCompressThreshold)) + `"}`)
	plain, compressed, algo = log.encode(large)
	assert.Equal(t, CompressionZstd, algo)
	assert.Nil(t, plain)
	assert.Less(t, len(compressed), len(large))

	decoded, err := log.decode(plain, compressed, algo)
	require.NoError(t, err)
	assert.Equal(t, large, decoded)
}
