package richmsg

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveHexWrongLength(t *testing.T) {
	for _, hex := range []string{"#1", "#10", "#100", "#1000000", "#12345678"} {
		t.Run(hex, func(t *testing.T) {
			_, err := Resolve(NamedColour(hex))
			require.ErrorIs(t, err, ErrInvalidColourHexLength)

			var rerr *Error
			require.True(t, errors.As(err, &rerr))
			assert.Equal(t, hex, rerr.Input)
		})
	}
}

func TestResolveHexWrongValue(t *testing.T) {
	_, err := Resolve(NamedColour("#gggggg"))
	require.ErrorIs(t, err, ErrInvalidColourHexValue)

	var rerr *Error
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, "#gggggg", rerr.Input)
	assert.NotNil(t, rerr.Err, "the strconv cause should be kept")
}

func TestResolveValidHex(t *testing.T) {
	tests := []struct {
		hex  string
		want int
	}{
		{"#000000", 0},
		{"#000001", 1},
		{"#000010", 16},
		{"#234099", 2310297},
		{"#abcdef", 11259375},
		{"#ABCDEF", 11259375},
	}
	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			got, err := Resolve(NamedColour(tt.hex))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveUnknownName(t *testing.T) {
	_, err := Resolve(NamedColour("abc"))
	require.ErrorIs(t, err, ErrUnknownColourName)

	var rerr *Error
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, "abc", rerr.Input)
	assert.Contains(t, err.Error(), `"abc"`)
}

func TestResolveNamesAreCaseSensitive(t *testing.T) {
	v, err := Resolve(NamedColour("RED"))
	require.NoError(t, err)
	assert.Equal(t, 0xE74C3C, v)

	_, err = Resolve(NamedColour("red"))
	assert.ErrorIs(t, err, ErrUnknownColourName)
}

func TestResolveIntegerAndRGB(t *testing.T) {
	v, err := Resolve(IntegerColour(0xFFFFFFFF))
	require.NoError(t, err)
	assert.Equal(t, 0xFFFFFFFF, v, "integers are not range checked")

	v, err = Resolve(RGBColour(0x12, 0x34, 0x56))
	require.NoError(t, err)
	assert.Equal(t, 0x123456, v)
}

func TestResolveHexRoundTrip(t *testing.T) {
	step := 1
	if testing.Short() {
		step = 4099
	}
	for v := 0; v < 1<<24; v += step {
		got, err := Resolve(NamedColour(FormatHex(v)))
		if err != nil || got != v {
			t.Fatalf("round trip of %d via %q: got %d, %v", v, FormatHex(v), got, err)
		}
	}
}

func TestColourNames(t *testing.T) {
	names := ColourNames()
	require.Len(t, names, 28)
	assert.Equal(t, "BLITZ_BLUE", names[0])
	assert.Equal(t, "TEAL", names[len(names)-1])
	for _, name := range names {
		_, ok := LookupColour(name)
		assert.True(t, ok, name)
	}
}

func TestFormatHex(t *testing.T) {
	assert.Equal(t, "#000000", FormatHex(0))
	assert.Equal(t, "#e74c3c", FormatHex(0xE74C3C))
	assert.Equal(t, fmt.Sprintf("#%06x", 4096), FormatHex(4096))
}
