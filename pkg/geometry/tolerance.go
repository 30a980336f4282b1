package geometry

import "math"

// Key identifies the spatial hash cell containing a point at resolution eps.
// Points within eps of each other land in the same cell or in one of its 26
// neighbors, so an eps-match only needs to probe the NeighborKeys set.
type Key struct {
	I, J, K int64
}

// KeyOf buckets a point into its spatial hash cell.
func KeyOf(p Point, eps float64) Key {
	return Key{
		I: int64(math.Floor(p.X / eps)),
		J: int64(math.Floor(p.Y / eps)),
		K: int64(math.Floor(p.Z / eps)),
	}
}

// NeighborKeys returns the 27 cells (the cell itself plus its neighbors)
// that can contain a point within eps of any point in k's cell.
func NeighborKeys(k Key) []Key {
	keys := make([]Key, 0, 27)
	for di := int64(-1); di <= 1; di++ {
		for dj := int64(-1); dj <= 1; dj++ {
			for dk := int64(-1); dk <= 1; dk++ {
				keys = append(keys, Key{k.I + di, k.J + dj, k.K + dk})
			}
		}
	}
	return keys
}
