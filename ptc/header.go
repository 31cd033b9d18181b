package ptc

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"

	"github.com/flightsimlib/terraincodec/internal/errs"
)

const (
	fileHeaderSize  = 40
	frameHeaderSize = 76
)

var magic = [8]byte{'P', 'T', 'C', '+', 'M', 'S', 'H', 'M'}

// FileHeader is the fixed 40-byte PTC container header.
type FileHeader struct {
	Magic         [8]byte
	VersionMajor  int16
	VersionMinor  int16
	DataLength    int32
	NumFrames     int32
	OffsetToFrame int32
}

// FrameHeader is the fixed 76-byte per-frame metadata block that follows
// the frame-length prefix.
type FrameHeader struct {
	CompressedLength int32
	TileLength       int32
	TileCount        int32
	OneBitAlpha      uint16
	// Flags packs: bits 0-1 color entropy-coder type, bits 2-3 alpha
	// entropy-coder type, bits 4-7 colorspace, bits 8-10 Bayer pattern,
	// bit 11 no-post-processing, bit 12 has-alpha, bit 13 HDR.
	Flags        uint16
	QSColor      int32
	QSAlpha      int32
	Height       int32
	Width        int32
	BitCount     int16
	BitDepth     int16
	NumChannels  int16
	ChunkWidth   int16
	Scale        float32
	FloatMode    int32
	OffsetToData int32
}

// cursor is a little-endian byte reader over a fixed buffer, tracking a
// read offset the way the codestream parser tracks a marker offset.
type cursor struct {
	data   []byte
	offset int
}

func (c *cursor) remaining() int { return len(c.data) - c.offset }

func (c *cursor) seek(pos int) error {
	if pos < 0 || pos > len(c.data) {
		return errors.Wrap(errs.ErrUnderrun, "ptc: seek out of range")
	}
	c.offset = pos
	return nil
}

func (c *cursor) take(n int) ([]byte, error) {
	if c.remaining() < n {
		return nil, errors.Wrap(errs.ErrUnderrun, "ptc: short read")
	}
	b := c.data[c.offset : c.offset+n]
	c.offset += n
	return b, nil
}

func (c *cursor) u16() (uint16, error) {
	b, err := c.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (c *cursor) i16() (int16, error) {
	v, err := c.u16()
	return int16(v), err
}

func (c *cursor) u32() (uint32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (c *cursor) i32() (int32, error) {
	v, err := c.u32()
	return int32(v), err
}

func (c *cursor) f32() (float32, error) {
	v, err := c.u32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

func parseFileHeader(c *cursor) (FileHeader, error) {
	var h FileHeader
	raw, err := c.take(8)
	if err != nil {
		return h, errors.Wrap(err, "ptc: file header magic")
	}
	copy(h.Magic[:], raw)
	if h.Magic != magic {
		return h, errors.Wrap(errs.ErrInvalidSignature, "ptc: bad magic")
	}
	if h.VersionMajor, err = c.i16(); err != nil {
		return h, err
	}
	if h.VersionMinor, err = c.i16(); err != nil {
		return h, err
	}
	if _, err = c.take(4); err != nil { // Reserved1/Reserved2
		return h, err
	}
	if h.DataLength, err = c.i32(); err != nil {
		return h, err
	}
	if h.NumFrames, err = c.i32(); err != nil {
		return h, err
	}
	if _, err = c.take(12); err != nil { // Reserved3/4/5
		return h, err
	}
	if h.OffsetToFrame, err = c.i32(); err != nil {
		return h, err
	}
	if h.NumFrames != 1 {
		return h, errors.Wrap(errs.ErrInvalidHeader, "ptc: frame count must be 1")
	}
	if h.VersionMajor > 0x1AE {
		return h, errors.Wrap(errs.ErrInvalidHeader, "ptc: version too new")
	}
	return h, nil
}

func parseFrameHeader(c *cursor) (FrameHeader, error) {
	var f FrameHeader
	var err error
	if f.CompressedLength, err = c.i32(); err != nil {
		return f, err
	}
	if f.TileLength, err = c.i32(); err != nil {
		return f, err
	}
	if f.TileCount, err = c.i32(); err != nil {
		return f, err
	}
	if _, err = c.take(8); err != nil { // Reserved1/2
		return f, err
	}
	if f.OneBitAlpha, err = c.u16(); err != nil {
		return f, err
	}
	if f.Flags, err = c.u16(); err != nil {
		return f, err
	}
	if f.QSColor, err = c.i32(); err != nil {
		return f, err
	}
	if f.QSAlpha, err = c.i32(); err != nil {
		return f, err
	}
	if f.Height, err = c.i32(); err != nil {
		return f, err
	}
	if f.Width, err = c.i32(); err != nil {
		return f, err
	}
	if _, err = c.take(8); err != nil { // Reserved3/4
		return f, err
	}
	if f.BitCount, err = c.i16(); err != nil {
		return f, err
	}
	if f.BitDepth, err = c.i16(); err != nil {
		return f, err
	}
	if f.NumChannels, err = c.i16(); err != nil {
		return f, err
	}
	if f.ChunkWidth, err = c.i16(); err != nil {
		return f, err
	}
	if _, err = c.take(8); err != nil { // Reserved5/6
		return f, err
	}
	if f.Scale, err = c.f32(); err != nil {
		return f, err
	}
	if f.FloatMode, err = c.i32(); err != nil {
		return f, err
	}
	if f.OffsetToData, err = c.i32(); err != nil {
		return f, err
	}
	if f.Width <= 0 || f.Height <= 0 || f.NumChannels <= 0 || f.NumChannels > 16 || f.ChunkWidth <= 0 {
		return f, errors.Wrap(errs.ErrInvalidHeader, "ptc: invalid frame dimensions")
	}
	return f, nil
}

// ChannelInfo reports per-channel metadata derived from the frame flags
// and one-bit-alpha mask.
type ChannelInfo struct {
	IsAlpha           bool
	IsOneBitAlpha     bool
	IsScaledQuantized bool
}

// getChannelInfo mirrors the reference decoder's classification of
// channel `channel` out of NumChannels for a frame with the given flags
// and one-bit-alpha mask.
func getChannelInfo(f FrameHeader, channel int) ChannelInfo {
	var info ChannelInfo
	if channel == int(f.NumChannels)-1 && f.Flags&0x1000 != 0 {
		info.IsAlpha = true
	}
	if f.OneBitAlpha&(1<<uint(channel)) != 0 {
		info.IsOneBitAlpha = true
	}
	colorSpace := (f.Flags >> 4) & 0xF
	if f.NumChannels >= 3 && colorSpace >= 1 && colorSpace <= 3 && channel >= 1 && channel <= 3 {
		info.IsScaledQuantized = true
	}
	return info
}

// colorspace extracts the colorspace selector from the frame flags,
// forced to Y (0) for fewer than 3 channels unless it names YCrCxDc (4).
func (f FrameHeader) colorspace() int {
	cs := int((f.Flags >> 4) & 0xF)
	if f.NumChannels < 3 && cs != 4 {
		return 0
	}
	return cs
}
