// Talon - UCI chess engine in Go
//
// MIT License. See LICENSE.

// Package transpositiontable implements a 4-way set-associative hash
// table keyed by the position's zobrist key, as described in spec
// sections 3 and 4.E. The bucket array is fixed for the table's
// lifetime; resizing discards and reallocates it.
package transpositiontable

import (
	"math/bits"
	"sync"
	"unsafe"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	. "github.com/talonchess/talon/internal/types"
)

var out = message.NewPrinter(language.English)

// Flag classifies how the stored value relates to the search window
// that produced it.
type Flag uint8

// Flag values.
const (
	None Flag = iota
	Exact
	LowerBound
	UpperBound
)

// Entry is one slot of a bucket.
type Entry struct {
	Verification uint32
	Move         Move
	Value        Value
	Depth        int8
	Flag         Flag
}

const slotsPerBucket = 4

// bucket is 4 slots sharing one index; replacement picks the slot with
// the lowest stored depth, per spec section 4.E "TT replacement".
type bucket [slotsPerBucket]Entry

// TtTable is the shared, mutex-guarded transposition table.
type TtTable struct {
	mu          sync.Mutex
	buckets     []bucket
	sizeInBytes uint64
	usedEntries int
}

// Stats is a snapshot of table occupancy, used for UCI's hashfull info.
type Stats struct {
	NumberOfEntries int
	UsedEntries     int
	SizeInBytes     uint64
}

// NewTtTable allocates a table sized to the nearest power-of-two number
// of buckets that fits within sizeInMb megabytes.
func NewTtTable(sizeInMb int) *TtTable {
	tt := &TtTable{}
	tt.Resize(sizeInMb)
	return tt
}

// Resize discards the current table and allocates a new one sized to
// the nearest power-of-two bucket count fitting sizeInMb megabytes.
func (tt *TtTable) Resize(sizeInMb int) {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	sizeInBytes := uint64(sizeInMb) * 1024 * 1024
	entrySize := uint64(unsafe.Sizeof(Entry{}))
	bucketSize := entrySize * slotsPerBucket
	numBuckets := sizeInBytes / bucketSize
	if numBuckets == 0 {
		numBuckets = 1
	}
	pow := uint64(1) << uint(bits.Len64(numBuckets)-1)
	tt.buckets = make([]bucket, pow)
	tt.sizeInBytes = pow * bucketSize
	tt.usedEntries = 0
}

// index uses the high half of the key modulo the bucket count, per
// spec section 3; the low half is reserved as the slot verification.
func (tt *TtTable) index(key uint64) uint64 {
	return (key >> 32) & uint64(len(tt.buckets)-1)
}

// Probe looks up key and returns the matching entry and true if the
// bucket contains a slot whose verification half matches.
func (tt *TtTable) Probe(key uint64) (Entry, bool) {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	b := &tt.buckets[tt.index(key)]
	verification := uint32(key)
	for i := range b {
		if b[i].Flag != None && b[i].Verification == verification {
			return b[i], true
		}
	}
	return Entry{}, false
}

// Store writes (or overwrites) an entry for key, replacing whichever
// slot in the bucket has the lowest stored depth when the bucket is
// full and no slot already holds this key.
func (tt *TtTable) Store(key uint64, depth int, flag Flag, value Value, best Move) {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	b := &tt.buckets[tt.index(key)]
	verification := uint32(key)

	slot := -1
	for i := range b {
		if b[i].Flag == None {
			slot = i
			break
		}
		if b[i].Verification == verification {
			slot = i
			break
		}
	}
	if slot == -1 {
		slot = 0
		for i := 1; i < slotsPerBucket; i++ {
			if b[i].Depth < b[slot].Depth {
				slot = i
			}
		}
	}
	if b[slot].Flag == None {
		tt.usedEntries++
	}
	b[slot] = Entry{
		Verification: verification,
		Move:         best,
		Value:        value,
		Depth:        int8(depth),
		Flag:         flag,
	}
}

// Clear empties the table without reallocating it.
func (tt *TtTable) Clear() {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	for i := range tt.buckets {
		tt.buckets[i] = bucket{}
	}
	tt.usedEntries = 0
}

// Hashfull returns occupancy in permille (0-1000), sampling the first
// 1000 slots the way UCI's hashfull info line expects.
func (tt *TtTable) Hashfull() int {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	sampleSlots := 1000
	totalSlots := len(tt.buckets) * slotsPerBucket
	if totalSlots < sampleSlots {
		sampleSlots = totalSlots
	}
	if sampleSlots == 0 {
		return 0
	}
	used := 0
	checked := 0
	for i := 0; i < len(tt.buckets) && checked < sampleSlots; i++ {
		for s := 0; s < slotsPerBucket && checked < sampleSlots; s++ {
			if tt.buckets[i][s].Flag != None {
				used++
			}
			checked++
		}
	}
	return used * 1000 / sampleSlots
}

// Len returns the number of buckets currently allocated.
func (tt *TtTable) Len() int {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	return len(tt.buckets)
}

// String renders a human-readable summary, using the same localized
// number-printer idiom used across the search/logging packages.
func (tt *TtTable) String() string {
	return out.Sprintf("TT: %d buckets (%d bytes), %d used entries", len(tt.buckets), tt.sizeInBytes, tt.usedEntries)
}

// ValueToTT adjusts a mate score to be stored relative to the root
// instead of the current ply, per spec section 4.E step 5 and the
// resolved open question in section 9-1.
func ValueToTT(v Value, ply int) Value {
	if v >= CheckmateThreshold {
		return v + Value(ply)
	}
	if v <= -CheckmateThreshold {
		return v - Value(ply)
	}
	return v
}

// ValueFromTT reverses ValueToTT when reading a stored mate score back
// at the current ply.
func ValueFromTT(v Value, ply int) Value {
	if v >= CheckmateThreshold {
		return v - Value(ply)
	}
	if v <= -CheckmateThreshold {
		return v + Value(ply)
	}
	return v
}
