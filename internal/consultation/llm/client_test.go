package llm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedDelays_YieldsConfiguredScheduleThenStops(t *testing.T) {
	b := &fixedDelays{delays: []time.Duration{2 * time.Second, 4 * time.Second, 8 * time.Second}}

	d, stop := b.Next()
	assert.Equal(t, 2*time.Second, d)
	assert.False(t, stop)

	d, stop = b.Next()
	assert.Equal(t, 4*time.Second, d)
	assert.False(t, stop)

	d, stop = b.Next()
	assert.Equal(t, 8*time.Second, d)
	assert.False(t, stop)

	_, stop = b.Next()
	assert.True(t, stop)
}

func TestStripFence_PlainJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripFence(`{"a":1}`))
}

func TestStripFence_FencedJSON(t *testing.T) {
	input := "```json\n{\"a\":1}\n```"
	assert.Equal(t, `{"a":1}`, stripFence(input))
}

func TestDecodeJSON_FencedPayload(t *testing.T) {
	var out struct {
		A int `json:"a"`
	}
	err := decodeJSON("```json\n{\"a\":7}\n```", &out)
	require.NoError(t, err)
	assert.Equal(t, 7, out.A)
}

func TestDecodeJSON_InvalidJSON(t *testing.T) {
	var out map[string]any
	err := decodeJSON("not json", &out)
	assert.Error(t, err)
}
