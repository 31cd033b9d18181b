package bitio

import "testing"

func TestLSBReaderReadBit(t *testing.T) {
	// 0b1011_0001 -> LSB-first bit order: 1,0,0,0,1,1,0,1
	r := NewLSBReader([]byte{0xB1})
	want := []int{1, 0, 0, 0, 1, 1, 0, 1}
	for i, w := range want {
		bit, err := r.ReadBit()
		if err != nil {
			t.Fatalf("bit %d: unexpected error: %v", i, err)
		}
		if bit != w {
			t.Errorf("bit %d: got %d want %d", i, bit, w)
		}
	}
}

func TestLSBReaderReadBits(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		n    int
		want uint32
	}{
		{"low nibble", []byte{0x0F}, 4, 0xF},
		{"low nibble of 0xF0", []byte{0xF0}, 4, 0x0},
		{"full byte", []byte{0xAB}, 8, 0xAB},
		{"cross byte boundary", []byte{0xFF, 0x01}, 9, 0x1FF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewLSBReader(tt.data)
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

func TestLSBReaderUnderrun(t *testing.T) {
	r := NewLSBReader([]byte{0x01})
	if _, err := r.ReadBits(16); err == nil {
		t.Fatal("expected underrun error")
	}
}

func TestLSBReaderPos(t *testing.T) {
	r := NewLSBReader([]byte{0x01, 0x02, 0x03})
	if _, err := r.ReadBits(4); err != nil {
		t.Fatal(err)
	}
	if r.Pos() != 1 {
		t.Errorf("Pos() = %d, want 1", r.Pos())
	}
	if _, err := r.ReadBits(8); err != nil {
		t.Fatal(err)
	}
	if r.Pos() != 2 {
		t.Errorf("Pos() = %d, want 2", r.Pos())
	}
}
