package strcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no escapes", "plain", "plain"},
		{"spec example", "my%20name%2E", "my name."},
		{"lowercase hex", "a%2fb", "a/b"},
		{"trailing percent", "abc%", "abc%"},
		{"short triplet", "abc%2", "abc%2"},
		{"invalid hex passes through", "abc%ZZ", "abc%ZZ"},
		{"empty", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DecodeString(tc.in))
		})
	}
}

func TestEncodeString_RoundTrips(t *testing.T) {
	inputs := []string{
		"plain",
		"my name.",
		"has\ttab\nand newline",
		"100% sure",
		"",
		string([]byte{0x00, 0x01, 0x7F, 0xFF}),
	}

	for _, in := range inputs {
		encoded := EncodeString(in)
		assert.Equal(t, in, DecodeString(encoded), "decode(encode(%q)) must equal input", in)
	}
}

func TestDecodeString_DecodedLengthNeverExceedsInput(t *testing.T) {
	inputs := []string{"%20%20%20", "abc", "%", "%2", "%%%%"}
	for _, in := range inputs {
		assert.LessOrEqual(t, len(DecodeString(in)), len(in))
	}
}
