package importing

import (
	"dggsvt/feature"
	"dggsvt/index"
	ownIo "dggsvt/io"
	ownOsm "dggsvt/osm"
	"github.com/hauke96/sigolo/v2"
	"github.com/pkg/errors"
	"os"
	"strings"
	"time"
)

// densityResolution is the resolution the node density of OSM input is reported for.
const densityResolution = 6

// Import reads the curves of an .osm, .pbf or .geojson file into the store and the vector tree.
func Import(inputFile string, tree *index.VectorTree) (*feature.Store, error) {
	store := feature.NewStore()
	importStartTime := time.Now()

	var err error
	if strings.HasSuffix(inputFile, ".geojson") || strings.HasSuffix(inputFile, ".json") {
		err = importGeoJson(inputFile, tree, store)
	} else {
		err = importOsm(inputFile, tree, store)
	}
	if err != nil {
		return nil, err
	}

	sigolo.Infof("Imported %d curves from %s in %s", store.Len(), inputFile, time.Since(importStartTime))
	if sigolo.ShouldLogTrace() {
		sigolo.Tracef("Vector tree:\n%s", tree.String())
	}

	return store, nil
}

func importOsm(inputFile string, tree *index.VectorTree, store *feature.Store) error {
	curveHandler := ownOsm.NewWayCurveHandler(tree, store)
	densityAggregator := ownOsm.NewCellDensityAggregator(tree.Projection(), densityResolution)

	err := ownOsm.NewOsmReader().Read(inputFile, curveHandler, densityAggregator)
	if err != nil {
		return errors.Wrapf(err, "Unable to import OSM file %s", inputFile)
	}
	return nil
}

func importGeoJson(inputFile string, tree *index.VectorTree, store *feature.Store) error {
	file, err := os.Open(inputFile)
	if err != nil {
		return errors.Wrapf(err, "Unable to open GeoJSON input file %s", inputFile)
	}
	defer file.Close()

	curves, err := ownIo.ReadCurvesFromGeoJson(file)
	if err != nil {
		return errors.Wrapf(err, "Unable to import GeoJSON file %s", inputFile)
	}

	for _, curve := range curves {
		err = store.Add(curve)
		if err != nil {
			return err
		}
		tree.InsertFeatureCurve(curve.ID, curve.Points)
	}

	return nil
}
