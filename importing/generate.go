package importing

import (
	"dggsvt/feature"
	"dggsvt/grid"
	"dggsvt/index"
	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/orb"
	"math/rand"
	"time"
)

// maxCurveExtent is the largest lon/lat distance between the end points of a generated curve.
const maxCurveExtent = 20.0

// Generate inserts curveCount reproducible random curves of pointCount points each. Feature IDs start at 1.
func Generate(tree *index.VectorTree, seed int64, curveCount int, pointCount int) *feature.Store {
	store := feature.NewStore()
	importStartTime := time.Now()
	random := rand.New(rand.NewSource(seed))

	for i := 0; i < curveCount; i++ {
		from := orb.Point{random.Float64()*340 - 170, random.Float64()*160 - 80}
		to := orb.Point{
			from.Lon() + (random.Float64()*2-1)*maxCurveExtent,
			from.Lat() + (random.Float64()*2-1)*maxCurveExtent,
		}

		curve := &feature.Curve{
			ID:     index.FeatureID(i + 1),
			Source: feature.SourceGenerated,
			Points: grid.RandomCurve(random.Int63(), from, to, pointCount),
		}

		// IDs are unique, adding can't fail
		_ = store.Add(curve)
		tree.InsertFeatureCurve(curve.ID, curve.Points)
	}

	sigolo.Infof("Generated %d curves with %d points each in %s", store.Len(), pointCount, time.Since(importStartTime))
	return store
}
