package grid

import (
	"github.com/paulmach/orb"
	"math/rand"
)

// RandomCurve creates a reproducible curve of count points from one point to another. The points follow the straight
// line with a random sideways offset of up to a quarter of the distance between consecutive points.
func RandomCurve(seed int64, from orb.Point, to orb.Point, count int) []orb.Point {
	if count <= 0 {
		return nil
	}
	if count == 1 {
		return []orb.Point{from}
	}

	random := rand.New(rand.NewSource(seed))
	stepLon := (to.Lon() - from.Lon()) / float64(count-1)
	stepLat := (to.Lat() - from.Lat()) / float64(count-1)

	points := make([]orb.Point, count)
	points[0] = from
	for i := 1; i < count-1; i++ {
		offset := (random.Float64() - 0.5) / 2
		points[i] = orb.Point{
			from.Lon() + float64(i)*stepLon - offset*stepLat,
			from.Lat() + float64(i)*stepLat + offset*stepLon,
		}
	}
	points[count-1] = to

	return points
}
