package encoding

import (
	"bytes"
	"encoding"
	"errors"
	"testing"
)

// Assert interface implemented.
var (
	_ encoding.TextMarshaler   = (*HexEncoding)(nil)
	_ encoding.TextUnmarshaler = (*HexEncoding)(nil)
)

func TestHexEncoder_RoundTrip(t *testing.T) {
	t.Parallel()

	records := []Record{
		{Addr: 0x1FC00000, Data: []byte("FLUID PROFILE")},
		{Addr: 0x1FC00100, Data: []byte{0xAC, 0x12, 0xAD, 0x13, 0xAE, 0x10}},
	}

	enc := HexEncoding{Records: records}

	text, err := enc.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}

	var dec HexEncoding
	if err := dec.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}

	if len(dec.Records) != len(records) {
		t.Fatalf("got %d records, want %d", len(dec.Records), len(records))
	}

	for i, rec := range records {
		if dec.Records[i].Addr != rec.Addr {
			t.Errorf("record %d: addr = %#x, want %#x", i, dec.Records[i].Addr, rec.Addr)
		}

		if !bytes.Equal(dec.Records[i].Data, rec.Data) {
			t.Errorf("record %d: data = %x, want %x", i, dec.Records[i].Data, rec.Data)
		}
	}
}

func TestHexEncoder_MarshalText_Empty(t *testing.T) {
	t.Parallel()

	enc := HexEncoding{}

	out, err := enc.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}

	const want = ":000000000001ff\n"

	if string(out) != want {
		t.Errorf("got: %q, want: %q", out, want)
	}
}

func TestHexEncoder_UnmarshalText_Errors(t *testing.T) {
	t.Parallel()

	tcs := []struct {
		name, input string
		expectErr   error
	}{
		{name: "empty", input: "", expectErr: errEmpty},
		{name: "eof only", input: ":000000000001ff\n", expectErr: errEmpty},
		{name: "eof with blank lines", input: "\n\n:000000000001ff\n\n", expectErr: errEmpty},
		{name: "invalid bytes", input: ":invalidhexhexhexhex", expectErr: errInvalidHex},
		{name: "nonsense", input: "u wot mate", expectErr: errInvalidHex},
		{name: "missing colon", input: "000000000001ff", expectErr: errInvalidHex},
		{name: "too short", input: ":0", expectErr: errInvalidHex},
		{name: "too short", input: ":00000000000", expectErr: errInvalidHex},
	}

	for _, tc := range tcs {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var dec HexEncoding

			err := dec.UnmarshalText([]byte(tc.input))
			if !errors.Is(err, tc.expectErr) {
				t.Errorf("got: %v, want: %v", err, tc.expectErr)
			}
		})
	}
}
