package word

import (
	"bytes"
	"errors"
	"testing"
)

func TestPackUnpackRoundTrip(t *testing.T) {
	cases := []struct {
		width, lsb uint
		value      uint32
	}{
		{4, 28, 0xF},
		{3, 6, 0x5},
		{3, 3, 0x0},
		{3, 0, 0x7},
		{25, 0, 0x1FFFFFF},
		{1, 31, 1},
		{32, 0, 0xDEADBEEF},
	}
	for _, c := range cases {
		packed, err := Pack(0, c.width, c.lsb, c.value)
		if err != nil {
			t.Fatalf("Pack(%d,%d,%d): %v", c.width, c.lsb, c.value, err)
		}
		got := Unpack(packed, c.width, c.lsb)
		if got != c.value {
			t.Errorf("Unpack(Pack(%d,%d)) = %d, want %d", c.width, c.lsb, got, c.value)
		}
	}
}

func TestPackPreservesOtherBits(t *testing.T) {
	w := uint32(0xFFFFFFFF)
	w, err := Pack(w, 4, 28, 0x3)
	if err != nil {
		t.Fatal(err)
	}
	if Unpack(w, 28, 0) != 0x0FFFFFFF {
		t.Errorf("Pack clobbered bits outside the target field: %#08x", w)
	}
	if Unpack(w, 4, 28) != 0x3 {
		t.Errorf("Pack did not set the target field: %#08x", w)
	}
}

func TestPackInvalidField(t *testing.T) {
	cases := []struct {
		name       string
		width, lsb uint
		value      uint32
	}{
		{"zero width", 0, 0, 0},
		{"field runs past bit 31", 8, 28, 0},
		{"value too wide for field", 3, 0, 8},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := Pack(0, c.width, c.lsb, c.value); !errors.Is(err, ErrInvalidField) {
				t.Errorf("got err=%v, want ErrInvalidField", err)
			}
		})
	}
}

func TestReadWriteWordRoundTrip(t *testing.T) {
	words := []uint32{0, 1, 0xDEADBEEF, 0xFFFFFFFF, 0x80000000}
	for _, w := range words {
		var buf bytes.Buffer
		if err := WriteWord(&buf, w); err != nil {
			t.Fatalf("WriteWord(%d): %v", w, err)
		}
		got, err := ReadWord(&buf)
		if err != nil {
			t.Fatalf("ReadWord after WriteWord(%d): %v", w, err)
		}
		if got != w {
			t.Errorf("round trip: got %d, want %d", got, w)
		}
	}
}

func TestReadWordByteOrder(t *testing.T) {
	buf := bytes.NewReader([]byte{0x01, 0x02, 0x03, 0x04})
	got, err := ReadWord(buf)
	if err != nil {
		t.Fatal(err)
	}
	if want := uint32(0x01020304); got != want {
		t.Errorf("got %#08x, want %#08x", got, want)
	}
}

func TestReadWordShort(t *testing.T) {
	cases := [][]byte{{}, {0x01}, {0x01, 0x02}, {0x01, 0x02, 0x03}}
	for _, c := range cases {
		if _, err := ReadWord(bytes.NewReader(c)); !errors.Is(err, ErrShortRead) {
			t.Errorf("ReadWord(%d bytes): got err=%v, want ErrShortRead", len(c), err)
		}
	}
}
