// This file is part of PowerMeter.
//
// PowerMeter is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// PowerMeter is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with PowerMeter.  If not, see <https://www.gnu.org/licenses/>.

package wearlog

import (
	"encoding/binary"

	"github.com/ololoshka2871/elbike-power-meter/curated"
	"github.com/ololoshka2871/elbike-power-meter/hardware/eeprom"
	"github.com/ololoshka2871/elbike-power-meter/logger"
)

// RecordSizeInvariant is returned by New when records would straddle page
// boundaries.
const RecordSizeInvariant = "wearlog: %d byte records do not divide the %d byte page"

// an erased slot reads back as all ones, so all ones can never be a live
// sequence number
const sentinelSeq = ^uint32(0)

// size of the sequence number prefix on every record
const seqSize = 4

// Store is the persistence surface the log writes through. Both
// *eeprom.EEPROM and *eeprom.Memory satisfy the interface.
//
// The log relies on Read and PageWrite failing with the
// eeprom.InvalidAddress pattern when an access runs past the end of the
// store. That signal, not an explicit size, is how the log wraps.
type Store interface {
	Read(offset int, data []byte) error
	PageWrite(offset int, data []byte) error
	PageSize() int
}

// Log appends records of T around a Store. It is not safe for concurrent
// use.
type Log[T any] struct {
	store Store
	codec Codec[T]

	recordSize int

	// slot index of the next append and the sequence number it will
	// carry
	writeOffset int
	seq         uint32

	last    T
	hasLast bool
}

// New builds a log over the store and recovers the write position from
// whatever records are already there. The record size (sequence prefix
// plus encoded value) must divide the store's page size, so that records
// never straddle a page boundary.
func New[T any](store Store, codec Codec[T]) (*Log[T], error) {
	l := &Log[T]{
		store:      store,
		codec:      codec,
		recordSize: seqSize + codec.Size(),
	}

	if store.PageSize()%l.recordSize != 0 {
		return nil, curated.Errorf(RecordSizeInvariant, l.recordSize, store.PageSize())
	}

	if err := l.recover(); err != nil {
		return nil, err
	}

	return l, nil
}

// nextSeq is the successor of s in the record chain. The sequence wraps
// like the counter it is, except that the sentinel is skipped.
func nextSeq(s uint32) uint32 {
	s++
	if s == sentinelSeq {
		s = 0
	}
	return s
}

// readSlot decodes the record in the given slot. The error is the
// store's, most usefully eeprom.InvalidAddress past the last slot.
func (l *Log[T]) readSlot(idx int) (uint32, T, error) {
	var v T

	buf := make([]byte, l.recordSize)
	if err := l.store.Read(idx*l.recordSize, buf); err != nil {
		return 0, v, err
	}

	seq := binary.LittleEndian.Uint32(buf)
	if seq != sentinelSeq {
		v = l.codec.Decode(buf[seqSize:])
	}
	return seq, v, nil
}

// recover walks the record chain from the first slot until the sequence
// numbers stop being contiguous. The next append goes where the chain
// broke; if the chain runs off the end of the store the log has wrapped
// before and the next append goes back to the first slot.
//
// The only store error recover absorbs is eeprom.InvalidAddress past the
// last slot. Anything else is a bus fault and is returned as is.
func (l *Log[T]) recover() error {
	seq, v, err := l.readSlot(0)
	if err != nil {
		return err
	}
	if seq == sentinelSeq {
		// a virgin store. the chain starts here
		l.writeOffset = 0
		l.seq = 0
		l.hasLast = false
		logger.Log(logger.Allow, "wearlog", "no records recovered")
		return nil
	}

	prev := seq
	l.last = v
	l.hasLast = true

	idx := 1
	for {
		seq, v, err = l.readSlot(idx)
		if err != nil {
			if !curated.Has(err, eeprom.InvalidAddress) {
				return err
			}

			// off the end of the store. the chain is unbroken all the
			// way around, so the oldest record is in the first slot and
			// there is no record in the slot before the write position
			l.writeOffset = 0
			var zero T
			l.last = zero
			l.hasLast = false
			break
		}
		if seq != nextSeq(prev) {
			l.writeOffset = idx
			break
		}

		prev = seq
		l.last = v
		idx++
	}

	l.seq = nextSeq(prev)
	logger.Logf(logger.Allow, "wearlog", "recovered to slot %d, sequence %d", l.writeOffset, l.seq)

	return nil
}

// Last is the most recently appended value. The second return value is
// false when the next append goes to the first slot and nothing has been
// appended this run: a virgin store, or one recovered as a single
// contiguous filled run.
func (l *Log[T]) Last() (T, bool) {
	return l.last, l.hasLast
}

// WriteOffset is the slot index the next append will use. Exposed for
// inspection and tests.
func (l *Log[T]) WriteOffset() int {
	return l.writeOffset
}

// Sequence is the sequence number the next append will carry.
func (l *Log[T]) Sequence() uint32 {
	return l.seq
}

// Append writes v as the next record in the chain. A write rejected by
// the store as out of range is retried once at the first slot; that is
// the wraparound, not an error. Any other store error is returned as is.
func (l *Log[T]) Append(v T) error {
	buf := make([]byte, l.recordSize)
	binary.LittleEndian.PutUint32(buf, l.seq)
	l.codec.Encode(buf[seqSize:], v)

	err := l.store.PageWrite(l.writeOffset*l.recordSize, buf)
	if err != nil && l.writeOffset != 0 && curated.Has(err, eeprom.InvalidAddress) {
		l.writeOffset = 0
		err = l.store.PageWrite(0, buf)
	}
	if err != nil {
		return err
	}

	l.last = v
	l.hasLast = true
	l.seq = nextSeq(l.seq)
	l.writeOffset++

	return nil
}
