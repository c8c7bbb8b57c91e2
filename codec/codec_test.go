package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByName(t *testing.T) {
	for _, name := range []string{"json", "go-json"} {
		c, ok := ByName(name)
		require.True(t, ok, name)
		assert.Equal(t, name, c.Name())
	}

	_, ok := ByName("msgpack")
	assert.False(t, ok)
}

func TestCodecsInteroperate(t *testing.T) {
	r := newBenchReport()

	for _, enc := range []Codec{JSON{}, GoJSON{}} {
		for _, dec := range []Codec{JSON{}, GoJSON{}} {
			data := MustMarshal(enc, r)

			var got benchReport
			require.NoError(t, dec.Unmarshal(data, &got), "%s -> %s", enc.Name(), dec.Name())
			assert.Equal(t, r, got)
		}
	}
}

func TestMustMarshalPanics(t *testing.T) {
	assert.Panics(t, func() { MustMarshal(nil, make(chan int)) })
}

func TestGoJSON_MarshalIndent(t *testing.T) {
	out, err := GoJSON{}.MarshalIndent(map[string]int{"k": 3})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"k\": 3\n}", string(out))
}
