// Package firmware loads and dumps BIOS ROM images for the bus, and renders them as the
// Intel-Hex-style text format internal/encoding implements, for easy inspection and distribution
// over plain-text channels.
package firmware

import (
	"fmt"
	"io"

	"mipscore/internal/bus"
	"mipscore/internal/encoding"
)

// RecordSize is the number of bytes packed into each emitted hex record.
const RecordSize = 32

// Load reads a raw BIOS image from r and installs it on b.
func Load(b *bus.Bus, r io.Reader) error {
	img, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("firmware: read: %w", err)
	}

	return b.LoadBIOS(img)
}

// LoadHex reads a BIOS image encoded as Intel-Hex-style text from r and installs it on b. Records
// are concatenated in file order; gaps between records are not supported, matching how a BIOS ROM
// is dumped as one contiguous image.
func LoadHex(b *bus.Bus, r io.Reader) error {
	text, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("firmware: read: %w", err)
	}

	var enc encoding.HexEncoding
	if err := enc.UnmarshalText(text); err != nil {
		return fmt.Errorf("firmware: decode: %w", err)
	}

	var img []byte
	for _, rec := range enc.Records {
		img = append(img, rec.Data...)
	}

	return b.LoadBIOS(img)
}

// Dump renders img as Intel-Hex-style text, split into RecordSize-byte chunks starting at base.
func Dump(w io.Writer, base uint32, img []byte) error {
	var enc encoding.HexEncoding

	for offset := 0; offset < len(img); offset += RecordSize {
		end := offset + RecordSize
		if end > len(img) {
			end = len(img)
		}

		enc.Records = append(enc.Records, encoding.Record{
			Addr: base + uint32(offset),
			Data: img[offset:end],
		})
	}

	text, err := enc.MarshalText()
	if err != nil {
		return fmt.Errorf("firmware: encode: %w", err)
	}

	_, err = w.Write(text)

	return err
}
