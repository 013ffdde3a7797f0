package twilio_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tripline/travel-services/wagateway/pkg/twilio"
)

func TestMessagingResponse_Render(t *testing.T) {
	t.Run("renders single message", func(t *testing.T) {
		var resp twilio.MessagingResponse
		resp.Message("hello traveler")

		out, err := resp.Render()
		require.NoError(t, err)

		assert.Contains(t, out, "<Response>")
		assert.Contains(t, out, "<Message><Body>hello traveler</Body></Message>")
	})

	t.Run("renders multiple messages in order", func(t *testing.T) {
		var resp twilio.MessagingResponse
		resp.Message("first")
		resp.Message("second")

		out, err := resp.Render()
		require.NoError(t, err)

		first := strings.Index(out, "first")
		second := strings.Index(out, "second")
		assert.Greater(t, second, first)
	})

	t.Run("renders media element", func(t *testing.T) {
		var resp twilio.MessagingResponse
		resp.MessageWithMedia("your ticket", "https://files.test/abc")

		out, err := resp.Render()
		require.NoError(t, err)

		assert.Contains(t, out, "<Media>https://files.test/abc</Media>")
	})

	t.Run("escapes xml characters", func(t *testing.T) {
		var resp twilio.MessagingResponse
		resp.Message("TLV<->BKK & back")

		out, err := resp.Render()
		require.NoError(t, err)

		assert.Contains(t, out, "TLV&lt;-&gt;BKK &amp; back")
	})
}

func TestChunkText(t *testing.T) {
	t.Run("empty input yields one empty chunk", func(t *testing.T) {
		chunks := twilio.ChunkText("")
		assert.Equal(t, []string{""}, chunks)
	})

	t.Run("short input is a single chunk", func(t *testing.T) {
		chunks := twilio.ChunkText("short reply")
		assert.Equal(t, []string{"short reply"}, chunks)
	})

	t.Run("long input splits at the safe chunk size", func(t *testing.T) {
		long := strings.Repeat("x", twilio.SafeChunk+10)
		chunks := twilio.ChunkText(long)

		assert.Len(t, chunks, 2)
		assert.Len(t, chunks[0], twilio.SafeChunk)
		assert.Len(t, chunks[1], 10)
	})
}

func TestNormalizeWaID(t *testing.T) {
	assert.Equal(t, "14155551234", twilio.NormalizeWaID("whatsapp:+14155551234"))
	assert.Equal(t, "14155551234", twilio.NormalizeWaID("+14155551234"))
	assert.Equal(t, "14155551234", twilio.NormalizeWaID(" 14155551234"))
	assert.Equal(t, "", twilio.NormalizeWaID(""))
}
