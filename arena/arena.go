// Package arena implements a non-freeing bump allocator for byte storage.
//
// Memory is handed out from fixed-size chunks in one direction and released
// all at once with Clear. An Arena is not safe for concurrent use.
package arena

import (
	"unsafe"
)

const DefaultChunkSize = 4096

// alignThreshold is the largest alignment served without rounding the cursor.
const alignThreshold = int(unsafe.Sizeof(uintptr(0)))

// Arena hands out byte slices from a list of chunks.
type Arena struct {
	chunks    [][]byte
	used      int // bytes used in the latest chunk
	total     int // bytes handed out over all chunks
	chunkSize int
}

// Stats describes the arena's current footprint.
type Stats struct {
	Chunks   int
	Used     int
	Reserved int
}

// New returns an arena allocating chunks of chunkSize bytes. A non-positive
// size selects DefaultChunkSize.
func New(chunkSize int) *Arena {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Arena{chunkSize: chunkSize}
}

func (a *Arena) ChunkSize() int { return a.chunkSize }

// Alloc returns size bytes aligned to alignment. Alignments above the
// pointer size round the cursor up; smaller ones are served as-is. The
// returned slice is valid until Clear and its capacity is clipped to size.
func (a *Arena) Alloc(size, alignment int) []byte {
	if size <= 0 {
		return nil
	}
	if a.chunkSize <= 0 {
		a.chunkSize = DefaultChunkSize
	}
	if len(a.chunks) > 0 && alignment > alignThreshold {
		a.used = a.alignedOffset(alignment)
	}
	if len(a.chunks) == 0 || a.used+size > len(a.chunks[len(a.chunks)-1]) {
		cs := a.chunkSize
		if size > cs {
			cs = size
		}
		a.chunks = append(a.chunks, make([]byte, cs))
		a.used = 0
		if alignment > alignThreshold {
			a.used = a.alignedOffset(alignment)
			if a.used+size > cs {
				// make only guarantees word alignment; retry with slack.
				a.chunks[len(a.chunks)-1] = make([]byte, cs+alignment)
				a.used = a.alignedOffset(alignment)
			}
		}
	}
	chunk := a.chunks[len(a.chunks)-1]
	b := chunk[a.used : a.used+size : a.used+size]
	a.used += size
	a.total += size
	return b
}

// Copy allocates len(b) bytes and copies b into them.
func (a *Arena) Copy(b []byte) []byte {
	dst := a.Alloc(len(b), 1)
	copy(dst, b)
	return dst
}

func (a *Arena) alignedOffset(alignment int) int {
	chunk := a.chunks[len(a.chunks)-1]
	base := uintptr(unsafe.Pointer(unsafe.SliceData(chunk)))
	addr := base + uintptr(a.used)
	mask := uintptr(alignment - 1)
	return int((addr+mask)&^mask - base)
}

// Clear releases every chunk. Slices handed out earlier stay reachable by
// their holders, but the arena no longer tracks them.
func (a *Arena) Clear() {
	for i := range a.chunks {
		a.chunks[i] = nil
	}
	a.chunks = a.chunks[:0]
	a.used = 0
	a.total = 0
}

func (a *Arena) Stats() Stats {
	st := Stats{Chunks: len(a.chunks), Used: a.total}
	for _, c := range a.chunks {
		st.Reserved += len(c)
	}
	return st
}
