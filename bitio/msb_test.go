package bitio

import "testing"

func TestMSBReaderReadBits(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		n    int
		want uint32
	}{
		{"high nibble", []byte{0xAB}, 4, 0xA},
		{"full byte", []byte{0xAB}, 8, 0xAB},
		{"cross byte boundary", []byte{0x01, 0xFF}, 9, 0x003},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewMSBReader(tt.data)
			got, err := r.ReadBits(tt.n)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %#x want %#x", got, tt.want)
			}
		})
	}
}

func TestMSBReaderReadByteAligned(t *testing.T) {
	r := NewMSBReader([]byte{0b11110000, 0b00001111})
	if _, err := r.ReadBits(4); err != nil {
		t.Fatal(err)
	}
	b, err := r.ReadByte()
	if err != nil {
		t.Fatal(err)
	}
	if b != 0b00000000 {
		t.Errorf("got %#x want 0x00", b)
	}
}

func TestMSBReaderFlush(t *testing.T) {
	r := NewMSBReader([]byte{0xFF, 0xAA, 0x55})
	if _, err := r.ReadBits(3); err != nil {
		t.Fatal(err)
	}
	if n := r.Flush(); n != 1 {
		t.Errorf("Flush() = %d, want 1", n)
	}
	b, err := r.ReadByte()
	if err != nil {
		t.Fatal(err)
	}
	if b != 0xAA {
		t.Errorf("got %#x want 0xAA", b)
	}
	if n := r.Flush(); n != 2 {
		t.Errorf("Flush() = %d, want 2", n)
	}
}

func TestMSBReaderUnderrun(t *testing.T) {
	r := NewMSBReader([]byte{0x01})
	if _, err := r.ReadBits(16); err == nil {
		t.Fatal("expected underrun error")
	}
}
