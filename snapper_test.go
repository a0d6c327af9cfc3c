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
	"errors"
	"math"
	"math/rand"
	"sync"
	"testing"

	"seehuhn.de/go/geom/vec"
)

func TestSnapperZero(t *testing.T) {
	var s Snapper
	if s.Index() != nil {
		t.Error("zero Snapper has an index")
	}
	res := s.Query(vec.Vec2{}, 10)
	if res.Edge != nil || res.Vertex != nil || res.Intersection != nil {
		t.Errorf("zero Snapper found %v", res)
	}
}

func TestSnapperStore(t *testing.T) {
	var s Snapper
	idx := mustBuild(t, []Line{{Start: vec.Vec2{X: 0, Y: 0}, End: vec.Vec2{X: 10, Y: 0}}}, nil)
	s.Store(idx)
	if s.Index() != idx {
		t.Fatal("stored index not returned")
	}
	res := s.Query(vec.Vec2{X: 5, Y: 1}, 2)
	if res.Edge == nil || *res.Edge != (vec.Vec2{X: 5, Y: 0}) {
		t.Errorf("edge %v, want (5,0)", res.Edge)
	}
}

func TestSnapperRebuild(t *testing.T) {
	var s Snapper
	old := mustBuild(t, nil, nil)
	s.Store(old)

	lines := []Line{{Start: vec.Vec2{X: 0, Y: 0}, End: vec.Vec2{X: 10, Y: 10}}}
	if err := s.Rebuild(context.Background(), lines, nil, nil); err != nil {
		t.Fatal(err)
	}
	if s.Index() == old {
		t.Fatal("index not replaced")
	}
	if s.Index().Len() != 1 {
		t.Errorf("new index has %d primitives, want 1", s.Index().Len())
	}

	// a later Store wins over an earlier Rebuild
	s.Store(old)
	if s.Index() != old {
		t.Error("Store after Rebuild did not replace the index")
	}
}

func TestSnapperRebuildCancelled(t *testing.T) {
	var s Snapper
	old := mustBuild(t, nil, nil)
	s.Store(old)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	lines := []Line{{Start: vec.Vec2{X: 0, Y: 0}, End: vec.Vec2{X: 10, Y: 10}}}
	err := s.Rebuild(ctx, lines, nil, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got error %v, want context.Canceled", err)
	}
	if s.Index() != old {
		t.Error("index replaced by cancelled rebuild")
	}
}

func TestSnapperRebuildError(t *testing.T) {
	var s Snapper
	old := mustBuild(t, nil, nil)
	s.Store(old)

	lines := []Line{{Start: vec.Vec2{X: math.NaN(), Y: 0}, End: vec.Vec2{X: 1, Y: 1}}}
	err := s.Rebuild(context.Background(), lines, nil, nil)
	if !errors.Is(err, ErrNonFinite) {
		t.Errorf("got error %v, want ErrNonFinite", err)
	}
	if s.Index() != old {
		t.Error("index replaced by failed rebuild")
	}
}

// TestSnapperConcurrent queries while the index is rebuilt.  Every query
// must see either the old or the new index, never a partial one.
func TestSnapperConcurrent(t *testing.T) {
	rng := rand.New(rand.NewSource(0))
	lines := randomLines(rng, 1000)

	var s Snapper
	s.Store(mustBuild(t, nil, nil))

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				idx := s.Index()
				if n := idx.Len(); n != 0 && n != len(lines) {
					t.Errorf("index with %d primitives", n)
					return
				}
				s.Query(vec.Vec2{X: 500, Y: 500}, 20)
			}
		}()
	}

	for range 5 {
		if err := s.Rebuild(context.Background(), lines, nil, nil); err != nil {
			t.Error(err)
		}
	}
	close(stop)
	wg.Wait()

	if s.Index().Len() != len(lines) {
		t.Errorf("final index has %d primitives, want %d", s.Index().Len(), len(lines))
	}
}
