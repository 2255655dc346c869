package terrain

import "github.com/Faultbox/marching-terrain/pkg/math"

// slot names one of the eight candidate vertices of a marching-squares cell.
type slot uint8

const (
	slotBL     slot = iota // bottom-left corner
	slotBottom             // crossing between bottom-left and bottom-right
	slotBR                 // bottom-right corner
	slotTL                 // top-left corner
	slotTop                // crossing between top-left and top-right
	slotTR                 // top-right corner
	slotLeft               // crossing between bottom-left and top-left
	slotRight              // crossing between bottom-right and top-right
)

// cellFans lists the polygons emitted for each case index
// (bit0 bottom-left, bit1 bottom-right, bit2 top-left, bit3 top-right).
// Each polygon is emitted as a triangle fan from its first vertex. The saddle
// cases 6 and 9 are two disjoint triangles; no disambiguation is attempted.
var cellFans = [16][][]slot{
	0:  nil,
	1:  {{slotBL, slotLeft, slotBottom}},
	2:  {{slotBR, slotBottom, slotRight}},
	3:  {{slotBL, slotLeft, slotRight, slotBR}},
	4:  {{slotTL, slotTop, slotLeft}},
	5:  {{slotBL, slotTL, slotTop, slotBottom}},
	6:  {{slotBR, slotBottom, slotRight}, {slotTL, slotTop, slotLeft}},
	7:  {{slotBL, slotTL, slotTop, slotRight, slotBR}},
	8:  {{slotTR, slotRight, slotTop}},
	9:  {{slotBL, slotLeft, slotBottom}, {slotTR, slotRight, slotTop}},
	10: {{slotBottom, slotTop, slotTR, slotBR}},
	11: {{slotBR, slotBL, slotLeft, slotTop, slotTR}},
	12: {{slotLeft, slotTL, slotTR, slotRight}},
	13: {{slotTL, slotTR, slotRight, slotBottom, slotBL}},
	14: {{slotTR, slotBR, slotBottom, slotLeft, slotTL}},
	15: {{slotBL, slotTL, slotTR, slotBR}},
}

// caseIndex packs the four corner states into a cellFans index.
func caseIndex(bl, br, tl, tr *Cell) int {
	i := 0
	if bl.State {
		i |= 1
	}
	if br.State {
		i |= 2
	}
	if tl.State {
		i |= 4
	}
	if tr.State {
		i |= 8
	}
	return i
}

// Refresh rebuilds the mesh from the current cell state.
func (c *Chunk) Refresh() {
	c.triangulate()
}

func (c *Chunk) triangulate() {
	c.vertices = c.vertices[:0]
	c.indices = c.indices[:0]

	c.fillFirstRowCache()

	rows := c.resolution - 1
	if c.north != nil {
		rows++
	}
	for y := 0; y < rows; y++ {
		c.triangulateRow(y)
	}
}

// rowCells returns how many cells of row y can be meshed: one fewer than the
// resolution, plus the gap cell when the neighbours it spans exist.
func (c *Chunk) rowCells(y int) int {
	n := c.resolution - 1
	if c.east == nil {
		return n
	}
	if y < c.resolution-1 || c.northEast != nil {
		n++
	}
	return n
}

func (c *Chunk) fillFirstRowCache() {
	c.cacheFirstCorner(&c.cells[0])

	n := c.resolution - 1
	if c.east != nil {
		n++
	}
	for x := 0; x < n; x++ {
		left, _ := c.cellAt(x, 0)
		right, _ := c.cellAt(x+1, 0)
		c.cacheNextXEdgeAndCorner(x*2, &left, &right)
	}
}

func (c *Chunk) triangulateRow(y int) {
	c.swapRowCaches()

	bottom, _ := c.cellAt(0, y)
	top, _ := c.cellAt(0, y+1)
	c.cacheFirstCorner(&top)
	c.cacheNextYEdge(&bottom, &top)

	for x, n := 0, c.rowCells(y); x < n; x++ {
		bl, _ := c.cellAt(x, y)
		br, _ := c.cellAt(x+1, y)
		tl, _ := c.cellAt(x, y+1)
		tr, _ := c.cellAt(x+1, y+1)

		i := x * 2
		c.cacheNextXEdgeAndCorner(i, &tl, &tr)
		c.cacheNextYEdge(&br, &tr)
		c.triangulateCell(i, &bl, &br, &tl, &tr)
	}
}

func (c *Chunk) swapRowCaches() {
	c.rowCacheMin, c.rowCacheMax = c.rowCacheMax, c.rowCacheMin
}

func (c *Chunk) cacheFirstCorner(cell *Cell) {
	if cell.State {
		c.rowCacheMax[0] = c.addVertex(cell.Position.X, cell.Position.Y)
	}
}

func (c *Chunk) cacheNextXEdgeAndCorner(i int, xMin, xMax *Cell) {
	if xMin.State != xMax.State {
		c.rowCacheMax[i+1] = c.addVertex(xMin.XEdge, xMin.Position.Y)
	}
	if xMax.State {
		c.rowCacheMax[i+2] = c.addVertex(xMax.Position.X, xMax.Position.Y)
	}
}

// cacheNextYEdge shifts the rolling pair of vertical crossings one cell right.
// The right slot keeps its previous value when the new column has no crossing;
// no case reads it then.
func (c *Chunk) cacheNextYEdge(yMin, yMax *Cell) {
	c.edgeCacheMin = c.edgeCacheMax
	if yMin.State != yMax.State {
		c.edgeCacheMax = c.addVertex(yMin.Position.X, yMin.YEdge)
	}
}

func (c *Chunk) addVertex(x, y float32) int {
	c.vertices = append(c.vertices, math.Vec3{X: x, Y: y})
	return len(c.vertices) - 1
}

func (c *Chunk) triangulateCell(i int, bl, br, tl, tr *Cell) {
	for _, poly := range cellFans[caseIndex(bl, br, tl, tr)] {
		a := c.slotVertex(i, poly[0])
		for k := 1; k+1 < len(poly); k++ {
			c.indices = append(c.indices,
				uint32(a),
				uint32(c.slotVertex(i, poly[k])),
				uint32(c.slotVertex(i, poly[k+1])),
			)
		}
	}
}

func (c *Chunk) slotVertex(i int, s slot) int {
	switch s {
	case slotBL:
		return c.rowCacheMin[i]
	case slotBottom:
		return c.rowCacheMin[i+1]
	case slotBR:
		return c.rowCacheMin[i+2]
	case slotTL:
		return c.rowCacheMax[i]
	case slotTop:
		return c.rowCacheMax[i+1]
	case slotTR:
		return c.rowCacheMax[i+2]
	case slotLeft:
		return c.edgeCacheMin
	default:
		return c.edgeCacheMax
	}
}
