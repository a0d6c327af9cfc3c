// seehuhn.de/go/snap - a spatial snapping index for 2D drawings
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package snap

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"

	"seehuhn.de/go/geom/vec"
)

// Snapper publishes the current [Index] of a drawing to concurrent readers.
// Readers never block, and an index is only replaced wholesale by a newly
// built one.  The zero value holds no index.
type Snapper struct {
	current atomic.Pointer[Index]

	mu     sync.Mutex
	gen    uint64 // number of Store and Rebuild calls so far
	stored uint64 // generation of the current index
}

// Index returns the current index, or nil.
func (s *Snapper) Index() *Index {
	return s.current.Load()
}

// Store replaces the current index.
func (s *Snapper) Store(idx *Index) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.stored = s.gen
	s.current.Store(idx)
}

// Query runs [Index.Query] on the current index.
func (s *Snapper) Query(pos vec.Vec2, radius float64) Result {
	idx := s.current.Load()
	if idx == nil {
		return Result{}
	}
	return idx.Query(pos, radius)
}

// Rebuild builds a new index on a separate goroutine and swaps it in once
// it is complete.  Until then, queries see the previous index.
//
// If ctx is cancelled first, Rebuild returns ctx.Err() and the previous
// index stays in place.  If several rebuilds overlap, the one started last
// wins, regardless of the order in which they finish.
func (s *Snapper) Rebuild(ctx context.Context, lines []Line, curves []Cubic, opt *Options) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	type built struct {
		idx *Index
		err error
	}
	done := make(chan built, 1)
	lines = slices.Clone(lines)
	curves = slices.Clone(curves)
	go func() {
		idx, err := Build(lines, curves, opt)
		done <- built{idx, err}
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case b := <-done:
		if b.err != nil {
			return b.err
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		if gen > s.stored {
			s.stored = gen
			s.current.Store(b.idx)
		}
		return nil
	}
}
