package codec

import (
	"github.com/flightsimlib/terraincodec/bitpack"
	"github.com/flightsimlib/terraincodec/delta"
	"github.com/flightsimlib/terraincodec/lz"
	"github.com/flightsimlib/terraincodec/ptc"
)

type deltaCodec struct{}

func (deltaCodec) UID() string  { return "delta" }
func (deltaCodec) Name() string { return "bgl-delta" }
func (deltaCodec) Decode(data []byte, p DecodeParams) (*DecodeResult, error) {
	out, err := delta.Decode(data, p.UncompressedSize)
	if err != nil {
		return nil, err
	}
	return &DecodeResult{Pixels: out}, nil
}

type bitPackCodec struct{}

func (bitPackCodec) UID() string  { return "bitpack" }
func (bitPackCodec) Name() string { return "bgl-bitpack" }
func (bitPackCodec) Decode(data []byte, p DecodeParams) (*DecodeResult, error) {
	out, err := bitpack.Decode(data, p.UncompressedSize, p.Rows, p.Cols)
	if err != nil {
		return nil, err
	}
	return &DecodeResult{Pixels: out}, nil
}

type lz1Codec struct{}

func (lz1Codec) UID() string  { return "lz1" }
func (lz1Codec) Name() string { return "bgl-lz1" }
func (lz1Codec) Decode(data []byte, p DecodeParams) (*DecodeResult, error) {
	out, err := lz.DecodeLZ1(data, p.UncompressedSize)
	if err != nil {
		return nil, err
	}
	return &DecodeResult{Pixels: out}, nil
}

type lz2Codec struct{}

func (lz2Codec) UID() string  { return "lz2" }
func (lz2Codec) Name() string { return "bgl-lz2" }
func (lz2Codec) Decode(data []byte, p DecodeParams) (*DecodeResult, error) {
	out, err := lz.DecodeLZ2(data, p.UncompressedSize)
	if err != nil {
		return nil, err
	}
	return &DecodeResult{Pixels: out}, nil
}

type ptcCodec struct{}

func (ptcCodec) UID() string  { return "ptc" }
func (ptcCodec) Name() string { return "ptc" }
func (ptcCodec) Decode(data []byte, _ DecodeParams) (*DecodeResult, error) {
	result, err := ptc.Decode(data, ptc.Options{})
	if err != nil {
		return nil, err
	}
	return &DecodeResult{
		Pixels:     result.Pixels,
		Width:      result.Width,
		Height:     result.Height,
		Components: int(result.Frame.NumChannels),
	}, nil
}

func init() {
	Register(deltaCodec{})
	Register(bitPackCodec{})
	Register(lz1Codec{})
	Register(lz2Codec{})
	Register(ptcCodec{})
}
