// Package bitbuf packs variable-width values into fixed-width words and
// flushes complete words to a sink.
//
// Bits are packed LSB-first within a word and words are emitted low index
// first, each as WordWidth/8 little-endian bytes. There is no framing: bits
// that never complete a word are dropped when the buffer is flushed.
package bitbuf

import (
	"encoding/binary"
	"fmt"
)

// Accumulator is a fixed-capacity bit buffer. It is owned by a single
// caller for the duration of a run and is not safe for concurrent use.
type Accumulator struct {
	storage      []uint64
	out          []byte
	wordWidth    uint
	wordMask     uint64
	capacityBits uint
	position     uint
}

// New creates an empty accumulator
func New(cfg *Config) (*Accumulator, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	switch cfg.WordWidth {
	case 8, 16, 32, 64:
	default:
		return nil, ErrInvalidWordWidth
	}

	if cfg.CapacityWords < 1 {
		return nil, ErrInvalidCapacity
	}

	return &Accumulator{
		storage:      make([]uint64, cfg.CapacityWords),
		out:          make([]byte, cfg.CapacityWords*int(cfg.WordWidth/8)),
		wordWidth:    cfg.WordWidth,
		wordMask:     lowMask(cfg.WordWidth),
		capacityBits: uint(cfg.CapacityWords) * cfg.WordWidth,
	}, nil
}

// Position returns the number of bits currently held
func (a *Accumulator) Position() uint {
	return a.position
}

// CapacityBits returns the total number of bits the buffer can hold
func (a *Accumulator) CapacityBits() uint {
	return a.capacityBits
}

// WordWidth returns the bit width of one storage word
func (a *Accumulator) WordWidth() uint {
	return a.wordWidth
}

// Append adds the low width bits of value to the buffer. When the bits do
// not fit, the buffer is flushed to sink first and filling restarts at
// position zero. A flush failure is returned and value is not appended.
func (a *Accumulator) Append(value uint64, width uint, sink Sink) error {
	if sink == nil {
		return ErrNilSink
	}

	if width > a.wordWidth {
		return ErrInvalidWidth
	}

	if a.position > a.capacityBits {
		return ErrOverflow
	}

	if width == 0 {
		return nil
	}

	if a.position+width > a.capacityBits {
		if _, err := a.Flush(sink); err != nil {
			return err
		}
	}

	value &= lowMask(width)

	index := a.position / a.wordWidth
	offset := a.position % a.wordWidth

	// Zero a word the first time it is touched so stale bits never leak
	if offset == 0 {
		a.storage[index] = 0
	}
	a.storage[index] |= (value << offset) & a.wordMask

	if offset+width > a.wordWidth {
		a.storage[index+1] = value >> (a.wordWidth - offset)
	}

	a.position += width
	return nil
}

// Flush writes every complete word to sink and returns the number of words
// the sink accepted. The position is reset to zero even when the write
// fails; a trailing partial word is discarded.
func (a *Accumulator) Flush(sink Sink) (int, error) {
	if sink == nil {
		return 0, ErrNilSink
	}

	words := int(a.position / a.wordWidth)
	a.position = 0

	if words == 0 {
		return 0, nil
	}

	bytesPerWord := int(a.wordWidth / 8)
	buf := a.out[:words*bytesPerWord]
	for i := 0; i < words; i++ {
		putWord(buf[i*bytesPerWord:], a.storage[i], a.wordWidth)
	}

	written, err := sink.Write(buf)
	if written < len(buf) {
		if written < 0 {
			written = 0
		}
		return written / bytesPerWord, &WriteError{
			Written:   written,
			Requested: len(buf),
			Err:       err,
		}
	}
	if err != nil {
		return words, fmt.Errorf("failed to write words: %w", err)
	}

	return words, nil
}

func putWord(dst []byte, word uint64, width uint) {
	switch width {
	case 8:
		dst[0] = byte(word)
	case 16:
		binary.LittleEndian.PutUint16(dst, uint16(word))
	case 32:
		binary.LittleEndian.PutUint32(dst, uint32(word))
	default:
		binary.LittleEndian.PutUint64(dst, word)
	}
}

func lowMask(width uint) uint64 {
	if width >= 64 {
		return ^uint64(0)
	}
	return uint64(1)<<width - 1
}
