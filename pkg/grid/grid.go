package grid

// Grid is a fixed-size grid graph with a start and an end marker.
// The zero value is not usable; create grids with [New].
type Grid struct {
	width  int
	height int
	conn   Connectivity
	nodes  []Node
	edges  []Edge
	start  int
	end    int
}

// orthogonal neighbor offsets in wiring order: up, down, left, right.
var orthogonal = [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}

// diagonal neighbor offsets in wiring order: up-left, down-left, up-right, down-right.
var diagonal = [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}

// New allocates a width×height grid, wires adjacency and places the start
// marker at the top-left corner and the end marker at the bottom-right.
//
// Returns ErrInvalidSize if either dimension is not positive.
// Complexity: O(W·H·d), d = 4 or 8.
func New(width, height int, opts ...Option) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidSize
	}
	g := &Grid{width: width, height: height, conn: Conn4}
	for _, opt := range opts {
		opt(g)
	}

	g.nodes = make([]Node, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g.nodes[g.Index(x, y)] = Node{X: x, Y: y, Dist: Unreached, Parent: NoParent}
		}
	}

	offsets := g.neighborOffsets()
	for i := range g.nodes {
		n := &g.nodes[i]
		n.Neighbors = make([]int, 0, len(offsets))
		for _, d := range offsets {
			vx, vy := n.X+d[0], n.Y+d[1]
			if !g.InBounds(vx, vy) {
				continue
			}
			j := g.Index(vx, vy)
			n.Neighbors = append(n.Neighbors, j)
			if i < j {
				g.edges = append(g.edges, Edge{A: i, B: j})
			}
		}
	}

	g.start = 0
	g.end = len(g.nodes) - 1
	return g, nil
}

func (g *Grid) neighborOffsets() [][2]int {
	offsets := make([][2]int, 0, 8)
	offsets = append(offsets, orthogonal[:]...)
	if g.conn == Conn8 {
		offsets = append(offsets, diagonal[:]...)
	}
	return offsets
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Len returns the number of nodes.
func (g *Grid) Len() int { return len(g.nodes) }

// Connectivity returns the adjacency mode chosen at construction.
func (g *Grid) Connectivity() Connectivity { return g.conn }

// Index returns the row-major index of (x, y). It does not bounds-check.
func (g *Grid) Index(x, y int) int { return y*g.width + x }

// Coordinate converts a row-major index back to (x, y).
func (g *Grid) Coordinate(i int) (x, y int) { return i % g.width, i / g.width }

// InBounds reports whether (x, y) lies inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Node returns a pointer into the node arena. The pointer stays valid for
// the lifetime of the grid.
func (g *Grid) Node(i int) *Node { return &g.nodes[i] }

// Start returns the index of the start marker.
func (g *Grid) Start() int { return g.start }

// End returns the index of the end marker.
func (g *Grid) End() int { return g.end }

// Edges returns every undirected adjacency once. The slice is shared; do not modify it.
func (g *Grid) Edges() []Edge { return g.edges }

// ToggleObstacle flips the obstacle flag at (x, y).
func (g *Grid) ToggleObstacle(x, y int) error {
	if !g.InBounds(x, y) {
		return ErrOutOfBounds
	}
	i := g.Index(x, y)
	if i == g.start || i == g.end {
		return ErrMarkerCell
	}
	g.nodes[i].Obstacle = !g.nodes[i].Obstacle
	return nil
}

// SetStart moves the start marker to (x, y) and clears the obstacle flag there.
func (g *Grid) SetStart(x, y int) error {
	if !g.InBounds(x, y) {
		return ErrOutOfBounds
	}
	g.start = g.Index(x, y)
	g.nodes[g.start].Obstacle = false
	return nil
}

// SetEnd moves the end marker to (x, y) and clears the obstacle flag there.
func (g *Grid) SetEnd(x, y int) error {
	if !g.InBounds(x, y) {
		return ErrOutOfBounds
	}
	g.end = g.Index(x, y)
	g.nodes[g.end].Obstacle = false
	return nil
}

// Reset clears the search state of every node.
func (g *Grid) Reset() {
	for i := range g.nodes {
		n := &g.nodes[i]
		n.Visited = false
		n.Dist = Unreached
		n.Parent = NoParent
	}
}

// Obstacles returns the indices of all obstacle cells in row-major order.
func (g *Grid) Obstacles() []int {
	var out []int
	for i := range g.nodes {
		if g.nodes[i].Obstacle {
			out = append(out, i)
		}
	}
	return out
}
