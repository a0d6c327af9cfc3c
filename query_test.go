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
	"maps"
	"math"
	"math/rand"
	"slices"
	"sync"
	"testing"

	"github.com/dhconnelly/rtreego"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/snap/testcases"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestQuerySingleSegment(t *testing.T) {
	idx := mustBuild(t, []Line{{Start: vec.Vec2{X: 0, Y: 0}, End: vec.Vec2{X: 10, Y: 0}}}, nil)

	res := idx.Query(vec.Vec2{X: 5, Y: 5}, 10)
	want := Result{
		Edge:       &vec.Vec2{X: 5, Y: 0},
		Vertex:     &vec.Vec2{X: 0, Y: 0}, // tie with (10,0), first wins
		Candidates: 1,
	}
	if d := cmp.Diff(want, res, approx); d != "" {
		t.Errorf("unexpected result (-want +got):\n%s", d)
	}
}

func TestQueryIntersection(t *testing.T) {
	idx := mustBuild(t, []Line{
		{Start: vec.Vec2{X: 0, Y: 0}, End: vec.Vec2{X: 10, Y: 10}},
		{Start: vec.Vec2{X: 0, Y: 10}, End: vec.Vec2{X: 10, Y: 0}},
	}, nil)

	res := idx.Query(vec.Vec2{X: 5, Y: 5.1}, 1)
	if res.Intersection == nil {
		t.Fatal("no intersection found")
	}
	if !near(*res.Intersection, vec.Vec2{X: 5, Y: 5}, epsilon) {
		t.Errorf("intersection at %v, want (5,5)", *res.Intersection)
	}
	if res.Vertex != nil {
		t.Errorf("unexpected vertex %v", *res.Vertex)
	}
	if res.Edge == nil {
		t.Error("no edge found")
	}
	if res.IntersectionSkipped {
		t.Error("intersection search skipped")
	}
}

func TestQueryOutOfRange(t *testing.T) {
	rng := rand.New(rand.NewSource(0))
	idx := mustBuild(t, randomLines(rng, 200), randomCurves(rng, 50))

	for _, pos := range []vec.Vec2{{X: -500, Y: -500}, {X: 2000, Y: 500}, {X: 500, Y: 3000}} {
		res := idx.Query(pos, 10)
		if res.Edge != nil || res.Vertex != nil || res.Intersection != nil {
			t.Errorf("query at %v found %v", pos, res)
		}
	}
}

func TestQueryRadius(t *testing.T) {
	idx := mustBuild(t, []Line{{Start: vec.Vec2{X: 0, Y: 0}, End: vec.Vec2{X: 10, Y: 0}}}, nil)
	pos := vec.Vec2{X: 5, Y: 5}

	if res := idx.Query(pos, 5); res.Edge != nil {
		t.Errorf("edge at distance 5 reported for radius 5: %v", *res.Edge)
	}
	if res := idx.Query(pos, 5.001); res.Edge == nil {
		t.Error("edge at distance 5 missing for radius 5.001")
	}
	for _, r := range []float64{0, -1, math.NaN()} {
		res := idx.Query(vec.Vec2{X: 5, Y: 0}, r)
		if res.Edge != nil || res.Vertex != nil || res.Intersection != nil {
			t.Errorf("radius %g: got %v", r, res)
		}
	}
	res := idx.Query(vec.Vec2{X: math.NaN(), Y: 0}, 100)
	if d := cmp.Diff(Result{}, res); d != "" {
		t.Errorf("non-finite position (-want +got):\n%s", d)
	}
}

// TestQueryCurveIntersection checks that a line crossing a curve still
// gives edge and vertex results, but no intersection.
func TestQueryCurveIntersection(t *testing.T) {
	lines := []Line{{Start: vec.Vec2{X: 0, Y: 5}, End: vec.Vec2{X: 10, Y: 5}}}
	curves := []Cubic{{
		P0: vec.Vec2{X: 5, Y: 0}, P1: vec.Vec2{X: 6, Y: 3},
		P2: vec.Vec2{X: 4, Y: 7}, P3: vec.Vec2{X: 5, Y: 10},
	}}
	idx := mustBuild(t, lines, curves)

	res := idx.Query(vec.Vec2{X: 5, Y: 5}, 2)
	if res.Edge == nil {
		t.Error("no edge found")
	}
	if res.Intersection != nil {
		t.Errorf("unexpected intersection %v", *res.Intersection)
	}
	if res.IntersectionSkipped {
		t.Error("intersection search skipped")
	}
	if res.Candidates != 2 {
		t.Errorf("%d candidates, want 2", res.Candidates)
	}
}

// TestQueryManyCandidates checks that the intersection search is skipped,
// and reported as skipped, for large candidate sets.
func TestQueryManyCandidates(t *testing.T) {
	spokes := func(n int) []Line {
		lines := make([]Line, n)
		for i := range lines {
			s, c := math.Sincos(math.Pi * float64(i) / float64(n))
			lines[i] = Line{
				Start: vec.Vec2{X: -100 * c, Y: -100 * s},
				End:   vec.Vec2{X: 100 * c, Y: 100 * s},
			}
		}
		return lines
	}
	origin := vec.Vec2{}

	idx := mustBuild(t, spokes(MaxIntersectionCandidates+100), nil)
	res := idx.Query(origin, 1)
	if res.Candidates != MaxIntersectionCandidates+100 {
		t.Errorf("%d candidates, want %d", res.Candidates, MaxIntersectionCandidates+100)
	}
	if !res.IntersectionSkipped {
		t.Error("intersection search not skipped")
	}
	if res.Intersection != nil {
		t.Errorf("unexpected intersection %v", *res.Intersection)
	}
	if res.Edge == nil || !near(*res.Edge, origin, epsilon) {
		t.Errorf("edge %v, want origin", res.Edge)
	}
	if res.Vertex != nil {
		t.Errorf("unexpected vertex %v", *res.Vertex)
	}

	idx = mustBuild(t, spokes(MaxIntersectionCandidates-100), nil)
	res = idx.Query(origin, 1)
	if res.IntersectionSkipped {
		t.Error("intersection search skipped")
	}
	if res.Intersection == nil || !near(*res.Intersection, origin, epsilon) {
		t.Errorf("intersection %v, want origin", res.Intersection)
	}
}

// distances summarises a query result by the distances of the snap
// targets from the query position.  Missing targets are -1.
type distances struct {
	Edge, Vertex, Intersection float64
}

func resultDistances(res Result, pos vec.Vec2) distances {
	d := func(p *vec.Vec2) float64 {
		if p == nil {
			return -1
		}
		return p.Sub(pos).Length()
	}
	return distances{d(res.Edge), d(res.Vertex), d(res.Intersection)}
}

// bruteForce computes the expected query result by looking at every
// primitive.
func bruteForce(lines []Line, curves []Cubic, pos vec.Vec2, radius float64, skipIntersections bool) distances {
	var prims []Primitive
	for _, l := range lines {
		prims = append(prims, l)
	}
	for _, c := range curves {
		prims = append(prims, c)
	}

	res := distances{-1, -1, -1}
	r2 := radius * radius
	best := func(cur *float64, d float64) {
		if *cur < 0 || d < *cur {
			*cur = d
		}
	}
	for _, p := range prims {
		if d := p.ClosestPoint(pos).Sub(pos).Length(); d < radius {
			best(&res.Edge, d)
		}
		a, b := p.Endpoints()
		for _, v := range [2]vec.Vec2{a, b} {
			if dist2(v, pos) < r2 {
				best(&res.Vertex, v.Sub(pos).Length())
			}
		}
	}
	if !skipIntersections {
		// an intersection within the radius lies on two lines within the radius
		var within []Line
		for _, l := range lines {
			if l.ClosestPoint(pos).Sub(pos).Length() < radius {
				within = append(within, l)
			}
		}
		for i, a := range within {
			for _, b := range within[i+1:] {
				x, ok := Intersect(a, b)
				if ok && dist2(x, pos) < r2 {
					best(&res.Intersection, x.Sub(pos).Length())
				}
			}
		}
	}
	return res
}

func TestQueryRandomBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(0))
	lines := randomLines(rng, 2000)
	curves := randomCurves(rng, 300)
	idx := mustBuild(t, lines, curves)

	for range 300 {
		pos := randomPoint(rng, 1000)
		radius := rng.Float64() * 40
		res := idx.Query(pos, radius)

		want := bruteForce(lines, curves, pos, radius, res.IntersectionSkipped)
		got := resultDistances(res, pos)
		if d := cmp.Diff(want, got, approx); d != "" {
			t.Errorf("pos=%v radius=%g (-want +got):\n%s", pos, radius, d)
		}
	}
}

func TestQueryTestCases(t *testing.T) {
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			t.Run(category+"/"+tc.Name, func(t *testing.T) {
				lines, curves := FromPath(tc.Path)
				idx := mustBuild(t, lines, curves)
				checkInvariants(t, idx, lines, curves)

				for _, probe := range tc.Probes {
					res := idx.Query(probe.At, probe.Radius)
					want := bruteForce(lines, curves, probe.At, probe.Radius, res.IntersectionSkipped)
					got := resultDistances(res, probe.At)
					if d := cmp.Diff(want, got, approx); d != "" {
						t.Errorf("probe %v (-want +got):\n%s", probe, d)
					}
				}
			})
		}
	}
}

// TestCandidatesComplete checks that every primitive within the radius
// survives the pruning.
func TestCandidatesComplete(t *testing.T) {
	rng := rand.New(rand.NewSource(0))
	lines := randomLines(rng, 1000)
	curves := randomCurves(rng, 200)
	idx := mustBuild(t, lines, curves)

	var prims []Primitive
	for _, l := range lines {
		prims = append(prims, l)
	}
	for _, c := range curves {
		prims = append(prims, c)
	}

	for range 200 {
		pos := randomPoint(rng, 1000)
		radius := rng.Float64() * 50

		found := make(map[Primitive]bool)
		for _, leaf := range idx.candidates(pos, radius) {
			found[leaf.Primitive()] = true
		}
		for _, p := range prims {
			if p.ClosestPoint(pos).Sub(pos).Length() < radius && !found[p] {
				t.Errorf("pos=%v radius=%g: %v within radius but pruned", pos, radius, p)
			}
		}
	}
}

type rtreeItem struct {
	prim Primitive
	bb   rtreego.Rect
}

func (it *rtreeItem) Bounds() rtreego.Rect {
	return it.bb
}

// TestCandidatesRTree compares the candidate set with a box search in an
// independent R-tree implementation.
func TestCandidatesRTree(t *testing.T) {
	rng := rand.New(rand.NewSource(0))
	lines := randomLines(rng, 1000)
	curves := randomCurves(rng, 200)
	idx := mustBuild(t, lines, curves)

	var items []rtreego.Spatial
	add := func(p Primitive) {
		b := p.Bounds()
		bb, err := rtreego.NewRect(rtreego.Point{b.LLx, b.LLy}, []float64{width(b), height(b)})
		if err != nil {
			return // degenerate box
		}
		items = append(items, &rtreeItem{prim: p, bb: bb})
	}
	for _, l := range lines {
		add(l)
	}
	for _, c := range curves {
		add(c)
	}
	oracle := rtreego.NewTree(2, 4, 16, items...)

	for range 200 {
		pos := randomPoint(rng, 1000)
		radius := 1 + rng.Float64()*50

		found := make(map[Primitive]bool)
		for _, leaf := range idx.candidates(pos, radius) {
			found[leaf.Primitive()] = true
		}
		query, err := rtreego.NewRect(rtreego.Point{pos.X - radius, pos.Y - radius}, []float64{2 * radius, 2 * radius})
		if err != nil {
			t.Fatal(err)
		}
		for _, hit := range oracle.SearchIntersect(query) {
			p := hit.(*rtreeItem).prim
			if !found[p] {
				t.Errorf("pos=%v radius=%g: %v missing from candidates", pos, radius, p)
			}
		}
	}
}

func TestQueryIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(0))
	idx := mustBuild(t, randomLines(rng, 500), randomCurves(rng, 100))

	type probe struct {
		pos    vec.Vec2
		radius float64
	}
	probes := make([]probe, 100)
	want := make([]Result, len(probes))
	for i := range probes {
		probes[i] = probe{randomPoint(rng, 1000), rng.Float64() * 60}
		want[i] = idx.Query(probes[i].pos, probes[i].radius)
	}

	const workers = 8
	got := make([][]Result, workers)
	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, p := range probes {
				got[w] = append(got[w], idx.Query(p.pos, p.radius))
			}
		}()
	}
	wg.Wait()

	for w := range workers {
		if d := cmp.Diff(want, got[w]); d != "" {
			t.Errorf("worker %d (-want +got):\n%s", w, d)
		}
	}
}

func TestNearest(t *testing.T) {
	rng := rand.New(rand.NewSource(0))
	lines := randomLines(rng, 500)
	curves := randomCurves(rng, 100)
	idx := mustBuild(t, lines, curves)

	for range 100 {
		pos := randomPoint(rng, 1400).Sub(vec.Vec2{X: 200, Y: 200})

		want := math.Inf(1)
		for _, l := range lines {
			want = min(want, l.ClosestPoint(pos).Sub(pos).Length())
		}
		for _, c := range curves {
			want = min(want, c.ClosestPoint(pos).Sub(pos).Length())
		}

		p, d, ok := idx.Nearest(pos)
		if !ok {
			t.Fatalf("no nearest point for %v", pos)
		}
		if !cmp.Equal(want, d, approx) {
			t.Errorf("pos=%v: distance %g, want %g", pos, d, want)
		}
		if !cmp.Equal(d, p.Sub(pos).Length(), approx) {
			t.Errorf("pos=%v: point %v is not at distance %g", pos, p, d)
		}
	}
}
