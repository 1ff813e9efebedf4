package bus

import (
	"errors"
	"testing"
)

func TestMirrorCoherence(t *testing.T) {
	b := New()

	if err := b.Write32(0x00001000, 0xCAFEBABE); err != nil {
		t.Fatalf("write32: %v", err)
	}

	for _, addr := range []uint32{0x00001000, 0x80001000, 0xA0001000} {
		got, err := b.Read32(addr)
		if err != nil {
			t.Fatalf("read32(%#x): %v", addr, err)
		}

		if got != 0xCAFEBABE {
			t.Errorf("read32(%#x) = %#x, want 0xCAFEBABE", addr, got)
		}
	}
}

func TestMirrorCoherenceByte(t *testing.T) {
	b := New()

	for _, v := range []byte{0x00, 0x42, 0xFF} {
		b.Write8(0x80002000, v)

		for _, addr := range []uint32{0x00002000, 0x80002000, 0xA0002000} {
			if got := b.Read8(addr); got != v {
				t.Errorf("after write8(0x80002000,%#x): read8(%#x) = %#x", v, addr, got)
			}
		}
	}
}

func TestBIOSWriteDiscarded(t *testing.T) {
	b := New()

	img := make([]byte, 16)
	img[0] = 0xAB

	if err := b.LoadBIOS(img); err != nil {
		t.Fatalf("LoadBIOS: %v", err)
	}

	b.Write8(BIOSBase, 0xFF)

	if got := b.Read8(BIOSBase); got != 0xAB {
		t.Errorf("read8(BIOSBase) = %#x, want 0xAB (write must be discarded)", got)
	}

	for _, addr := range []uint32{BIOSBase, KSEG0Base | BIOSBase, KSEG1Base | BIOSBase} {
		if got := b.Read8(addr); got != 0xAB {
			t.Errorf("read8(%#x) = %#x, want 0xAB", addr, got)
		}
	}
}

func TestLoadBIOSTooLarge(t *testing.T) {
	b := New()

	img := make([]byte, BIOSSize+1)
	if err := b.LoadBIOS(img); err == nil {
		t.Fatal("expected ErrBiosTooLarge, got nil")
	}
}

func TestLoadBIOSZeroPads(t *testing.T) {
	b := New()

	if err := b.LoadBIOS([]byte{0x11, 0x22}); err != nil {
		t.Fatalf("LoadBIOS: %v", err)
	}

	if got := b.Read8(BIOSBase); got != 0x11 {
		t.Errorf("byte 0 = %#x, want 0x11", got)
	}

	if got := b.Read8(BIOSBase + 2); got != 0 {
		t.Errorf("byte 2 = %#x, want 0 (zero-padded)", got)
	}
}

func TestWriteReadRoundTrip32(t *testing.T) {
	b := New()

	for _, addr := range []uint32{0x00000000, 0x00000004, 0x001FFFFC} {
		want := uint32(0x11223344)
		if err := b.Write32(addr, want); err != nil {
			t.Fatalf("write32(%#x): %v", addr, err)
		}

		got, err := b.Read32(addr)
		if err != nil {
			t.Fatalf("read32(%#x): %v", addr, err)
		}

		if got != want {
			t.Errorf("read32(%#x) = %#x, want %#x", addr, got, want)
		}
	}
}

func TestLittleEndianHalfwordSplit(t *testing.T) {
	b := New()

	const addr = 0x100

	if err := b.Write32(addr, 0x11223344); err != nil {
		t.Fatalf("write32: %v", err)
	}

	lo, err := b.Read16(addr)
	if err != nil {
		t.Fatalf("read16(lo): %v", err)
	}

	hi, err := b.Read16(addr + 2)
	if err != nil {
		t.Fatalf("read16(hi): %v", err)
	}

	if lo != 0x3344 || hi != 0x1122 {
		t.Errorf("read16 split = (%#x, %#x), want (0x3344, 0x1122)", lo, hi)
	}
}

func TestUnalignedAccessFaults(t *testing.T) {
	b := New()

	if _, err := b.Read16(0x101); err == nil {
		t.Error("read16 at odd address: expected AddressError")
	}

	if _, err := b.Read32(0x102); err == nil {
		t.Error("read32 at non-4-aligned address: expected AddressError")
	}

	if err := b.Write32(0x101, 0); err == nil {
		t.Error("write32 at unaligned address: expected AddressError")
	}

	var addrErr *AddressError
	_, err := b.Read32(0x102)

	if err == nil {
		t.Fatal("expected error")
	} else if !errors.As(err, &addrErr) {
		t.Fatalf("error is not an *AddressError: %v", err)
	} else if addrErr.Code() != 4 {
		t.Errorf("load address error code = %d, want 4", addrErr.Code())
	}
}

func TestOpenBusRead(t *testing.T) {
	b := New(WithOpenBusValue(0xFF))

	if got := b.Read8(0x1FA10000); got != 0xFF {
		t.Errorf("open bus read = %#x, want 0xFF", got)
	}
}

func TestDiscardedROMWriteReadsZero(t *testing.T) {
	// A write to a zero byte of the BIOS ROM is discarded, so the byte still reads as zero: writes
	// to a read-only page never stick.
	b := New()

	b.Write8(BIOSBase+0x10, 0x7A)

	if got := b.Read8(BIOSBase + 0x10); got != 0 {
		t.Errorf("bios byte after discarded write = %#x, want 0", got)
	}
}

func TestMMIONarrowerShadowsWider(t *testing.T) {
	m := NewMMIO()

	m.Register(0, 4, func(uint32) byte { return 0xAA }, nil)
	m.Register(1, 1, func(uint32) byte { return 0xBB }, nil)

	if got := m.Read(1); got != 0xBB {
		t.Errorf("Read(1) = %#x, want 0xBB (narrower handler should shadow the wider one)", got)
	}

	if got := m.Read(0); got != 0xAA {
		t.Errorf("Read(0) = %#x, want 0xAA", got)
	}
}

func TestMMIOUnregisteredOffsetUsesShadow(t *testing.T) {
	m := NewMMIO()

	m.Write(5, 0x42)

	if got := m.Read(5); got != 0x42 {
		t.Errorf("Read(5) = %#x, want 0x42 (shadow byte)", got)
	}
}
