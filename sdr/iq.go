package sdr

import (
	"encoding/binary"
	"fmt"
	"math"
)

// BytesPerSample is the size of one complex sample on the wire:
// two little-endian float32 components.
const BytesPerSample = 8

// PowerStats summarizes the per-sample power of an IQ capture in dB.
type PowerStats struct {
	DBLow  float64
	DBHigh float64
	DBAvg  float64
}

// Power computes min/max/average power over the capture. The average is
// taken over linear power and converted to dB afterwards. An empty capture
// yields -Inf across the board.
func Power(data []complex64) PowerStats {
	if len(data) == 0 {
		inf := math.Inf(-1)
		return PowerStats{DBLow: inf, DBHigh: inf, DBAvg: inf}
	}
	low := math.Inf(1)
	high := math.Inf(-1)
	sum := 0.0
	for _, s := range data {
		p := float64(real(s))*float64(real(s)) + float64(imag(s))*float64(imag(s))
		if p < low {
			low = p
		}
		if p > high {
			high = p
		}
		sum += p
	}
	return PowerStats{
		DBLow:  powerTodB(low),
		DBHigh: powerTodB(high),
		DBAvg:  powerTodB(sum / float64(len(data))),
	}
}

func powerTodB(p float64) float64 {
	if p == 0 {
		return math.Inf(-1)
	}
	return 10 * math.Log10(p)
}

// EncodeCF32 serializes IQ samples as interleaved little-endian float32
// pairs (I then Q), the layout used on the wire and in data archives.
func EncodeCF32(data []complex64) []byte {
	buf := make([]byte, len(data)*BytesPerSample)
	for i, s := range data {
		binary.LittleEndian.PutUint32(buf[i*8:], math.Float32bits(real(s)))
		binary.LittleEndian.PutUint32(buf[i*8+4:], math.Float32bits(imag(s)))
	}
	return buf
}

// DecodeCF32 is the inverse of EncodeCF32.
func DecodeCF32(buf []byte) ([]complex64, error) {
	if len(buf)%BytesPerSample != 0 {
		return nil, fmt.Errorf("IQ byte stream length %d is not a multiple of %d", len(buf), BytesPerSample)
	}
	data := make([]complex64, len(buf)/BytesPerSample)
	for i := range data {
		re := math.Float32frombits(binary.LittleEndian.Uint32(buf[i*8:]))
		im := math.Float32frombits(binary.LittleEndian.Uint32(buf[i*8+4:]))
		data[i] = complex(re, im)
	}
	return data, nil
}
