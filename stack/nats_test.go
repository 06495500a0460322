package stack

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMessage(t *testing.T) {
	payload, err := FormatMessage(map[string]string{"user": "u1"})
	require.NoError(t, err)

	var message NatsMessage
	require.NoError(t, json.Unmarshal(payload, &message))
	assert.NotEmpty(t, message.ID)

	var data map[string]string
	require.NoError(t, DecodeData(payload, &data))
	assert.Equal(t, "u1", data["user"])

	assert.Error(t, DecodeData([]byte("{"), &data))
	assert.NoError(t, Discard.PublishEncode(SHEET_UPDATED, data))
}
