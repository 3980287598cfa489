package grid

// Default cost model.
const (
	// DefaultImpassableThreshold marks a cell as non-traversable when its
	// entry cost is greater than or equal to it.
	DefaultImpassableThreshold int32 = 5

	WalkableCost int32 = 0
	BlockedCost  int32 = 999
)

// Topology identifies the adjacency relation between cells.
type Topology uint8

const (
	// TopologySquare is 4-neighbor axis-aligned adjacency.
	TopologySquare Topology = iota
)

// String returns the topology name.
func (t Topology) String() string {
	switch t {
	case TopologySquare:
		return "square"
	default:
		return "unknown"
	}
}
