package geometry

import (
	"errors"
	"math"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/log"
)

// ErrNoObjects is returned when building a BVH from an empty object list.
var ErrNoObjects = errors.New("geometry: cannot build a BVH without objects")

// Number of uniform bins used when evaluating split candidates.
const numBins = 8

// pruneSlack keeps best-distance pruning conservative when a box entry
// distance and a primitive distance round differently.
const pruneSlack = 1e-9

// BVHNode is either a leaf holding exactly one object or an internal node
// whose box is the union of its two children's boxes.
type BVHNode struct {
	BoundingBox core.BoundingBox
	Left        *BVHNode
	Right       *BVHNode
	Object      *Object // Set for leaves only
}

// IsLeaf reports whether the node holds an object
func (n *BVHNode) IsLeaf() bool {
	return n.Object != nil
}

// BVH is a bounding volume hierarchy over scene objects.
// It is never modified after NewBVH returns, so concurrent queries are safe.
type BVH struct {
	Root *BVHNode
}

// BVHStats describes the shape of a built tree
type BVHStats struct {
	Nodes    int
	Leaves   int
	MaxDepth int
}

// TraversalStats counts the intersection tests made by ClosestHitCounted.
// A counter belongs to one goroutine; merge counters with Add.
type TraversalStats struct {
	BoxTests      int64
	SphereTests   int64
	TriangleTests int64
}

// Add accumulates other into s
func (s *TraversalStats) Add(other TraversalStats) {
	s.BoxTests += other.BoxTests
	s.SphereTests += other.SphereTests
	s.TriangleTests += other.TriangleTests
}

// bvhEntry caches an object's box and centroid during construction
type bvhEntry struct {
	box      core.BoundingBox
	centroid core.Vec3
	object   *Object
}

// bvhBin accumulates the objects whose centroids fall into one bin
type bvhBin struct {
	box   core.BoundingBox
	count int
}

// NewBVH builds a BVH using binned SAH splits
func NewBVH(objects []*Object) (*BVH, error) {
	if len(objects) == 0 {
		return nil, ErrNoObjects
	}

	start := time.Now()

	entries := make([]bvhEntry, len(objects))
	for i, object := range objects {
		box := object.BoundingBox()
		entries[i] = bvhEntry{box: box, centroid: box.Centroid(), object: object}
	}

	bvh := &BVH{Root: buildBVH(entries)}

	stats := bvh.Stats()
	log.New("bvh").Debugf(
		"BVH build time: %d ms, objects: %d, nodes: %d, leaves: %d, maxDepth: %d",
		time.Since(start).Nanoseconds()/1e6, len(objects),
		stats.Nodes, stats.Leaves, stats.MaxDepth,
	)

	return bvh, nil
}

// buildBVH recursively builds the tree; entries is never empty
func buildBVH(entries []bvhEntry) *BVHNode {
	if len(entries) == 1 {
		return &BVHNode{BoundingBox: entries[0].box, Object: entries[0].object}
	}

	leftEntries, rightEntries := partitionEntries(entries)
	left := buildBVH(leftEntries)
	right := buildBVH(rightEntries)

	return &BVHNode{
		BoundingBox: core.Union(left.BoundingBox, right.BoundingBox),
		Left:        left,
		Right:       right,
	}
}

// partitionEntries splits entries along the widest centroid axis using
// the SAH cost of the 7 inner bin boundaries. Both halves are non-empty.
func partitionEntries(entries []bvhEntry) ([]bvhEntry, []bvhEntry) {
	centroidBox := core.EmptyBox()
	for _, entry := range entries {
		centroidBox = centroidBox.AddPoint(entry.centroid)
	}

	axis := centroidBox.LongestAxis()
	axisMin := centroidBox.Min.Axis(axis)
	axisMax := centroidBox.Max.Axis(axis)
	binSize := (axisMax - axisMin) / numBins

	// All centroids (nearly) coincide along the widest axis
	if binSize < core.Epsilon {
		return medianSplit(entries)
	}

	var bins [numBins]bvhBin
	for i := range bins {
		bins[i].box = core.EmptyBox()
	}

	assignments := make([]int, len(entries))
	for i, entry := range entries {
		bin := binIndex(entry.centroid.Axis(axis), axisMin, binSize)
		assignments[i] = bin
		bins[bin].box = bins[bin].box.Union(entry.box)
		bins[bin].count++
	}

	boundary := bestBoundary(&bins)

	left := make([]bvhEntry, 0, len(entries))
	right := make([]bvhEntry, 0, len(entries))
	for i, entry := range entries {
		if assignments[i] < boundary {
			left = append(left, entry)
		} else {
			right = append(right, entry)
		}
	}

	if len(left) == 0 || len(right) == 0 {
		return medianSplit(entries)
	}
	return left, right
}

// binIndex returns the first bin whose upper boundary is at or past c
func binIndex(c, axisMin, binSize float64) int {
	for i := 0; i < numBins; i++ {
		if c <= axisMin+binSize*float64(i+1)+core.Epsilon {
			return i
		}
	}
	return numBins - 1
}

// bestBoundary returns the boundary index in [1, numBins-1] with the lowest
// cost area(L)*n(L) + area(R)*n(R). Ties keep the lowest index.
func bestBoundary(bins *[numBins]bvhBin) int {
	best := 1
	bestCost := math.Inf(1)

	for boundary := 1; boundary < numBins; boundary++ {
		left := combineBins(bins[:boundary])
		right := combineBins(bins[boundary:])

		cost := left.box.SurfaceArea()*float64(left.count) +
			right.box.SurfaceArea()*float64(right.count)
		if cost < bestCost {
			best = boundary
			bestCost = cost
		}
	}

	return best
}

func combineBins(bins []bvhBin) bvhBin {
	result := bvhBin{box: core.EmptyBox()}
	for _, bin := range bins {
		result.box = result.box.Union(bin.box)
		result.count += bin.count
	}
	return result
}

// medianSplit splits entries at the middle of the list, keeping input order
func medianSplit(entries []bvhEntry) ([]bvhEntry, []bvhEntry) {
	mid := len(entries) / 2
	return entries[:mid], entries[mid:]
}

// ClosestHit returns the nearest intersection along the ray, if any.
// When two objects hit at exactly the same distance the one reached
// through the right child wins.
func (bvh *BVH) ClosestHit(ray core.Ray) (*Hit, bool) {
	return bvh.ClosestHitCounted(ray, nil)
}

// ClosestHitCounted is ClosestHit that also counts the box and primitive
// tests it makes into stats. A nil stats counts nothing.
func (bvh *BVH) ClosestHitCounted(ray core.Ray, stats *TraversalStats) (*Hit, bool) {
	if bvh.Root == nil {
		return nil, false
	}
	hit := closestHit(bvh.Root, ray, math.Inf(1), stats)
	return hit, hit != nil
}

// closestHit returns a hit in the subtree at distance <= best, or nil.
// Subtrees whose box is entered strictly after best cannot contain
// such a hit and are skipped.
func closestHit(node *BVHNode, ray core.Ray, best float64, stats *TraversalStats) *Hit {
	if node.IsLeaf() {
		if stats != nil {
			stats.countPrimitive(node.Object.Surface)
		}
		hit, ok := node.Object.Intersect(ray)
		if !ok || hit.Distance > best {
			return nil
		}
		return hit
	}

	if stats != nil {
		stats.BoxTests++
	}
	entry, ok := node.BoundingBox.Entry(ray)
	if !ok || entry > best+pruneSlack*math.Max(1, best) {
		return nil
	}

	closest := closestHit(node.Left, ray, best, stats)
	if closest != nil {
		best = closest.Distance
	}
	if right := closestHit(node.Right, ray, best, stats); right != nil {
		closest = right
	}
	return closest
}

func (s *TraversalStats) countPrimitive(surface Surface) {
	switch surface.(type) {
	case *Triangle:
		s.TriangleTests++
	case *Sphere:
		s.SphereTests++
	}
}

// BoundingBox returns the box enclosing every object in the tree
func (bvh *BVH) BoundingBox() core.BoundingBox {
	if bvh.Root == nil {
		return core.EmptyBox()
	}
	return bvh.Root.BoundingBox
}

// Stats walks the tree and reports its size and depth
func (bvh *BVH) Stats() BVHStats {
	var stats BVHStats
	if bvh.Root != nil {
		collectStats(bvh.Root, 0, &stats)
	}
	return stats
}

func collectStats(node *BVHNode, depth int, stats *BVHStats) {
	stats.Nodes++
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	if node.IsLeaf() {
		stats.Leaves++
		return
	}
	collectStats(node.Left, depth+1, stats)
	collectStats(node.Right, depth+1, stats)
}
