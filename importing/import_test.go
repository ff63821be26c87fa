package importing

import (
	"dggsvt/common"
	"dggsvt/feature"
	"dggsvt/grid"
	"dggsvt/index"
	"dggsvt/util"
	"os"
	"path/filepath"
	"testing"
)

func newTestTree(t *testing.T) *index.VectorTree {
	quadGrid, err := grid.NewQuadGrid(grid.DefaultOptions())
	util.AssertNil(t, err)
	vectorTree, err := index.NewVectorTree(quadGrid, quadGrid, index.DefaultOptions())
	util.AssertNil(t, err)
	return vectorTree
}

func TestImport_geoJson(t *testing.T) {
	inputFile := filepath.Join(t.TempDir(), "curves.geojson")
	data := `{"type": "FeatureCollection", "features": [
    {"type": "Feature", "properties": {"id": 4}, "geometry": {"type": "LineString", "coordinates": [[5, -40], [30, -40]]}}
  ]}`
	util.AssertNil(t, os.WriteFile(inputFile, []byte(data), 0644))
	vectorTree := newTestTree(t)

	store, err := Import(inputFile, vectorTree)

	util.AssertNil(t, err)
	util.AssertEqual(t, []index.FeatureID{4}, store.IDs())

	cell, err := common.ParseIndex("A-1")
	util.AssertNil(t, err)
	util.AssertEqual(t, []index.Fragment{{Begin: 1, End: 2}}, vectorTree.QueryFragments(4, cell))
}

func TestImport_osm(t *testing.T) {
	inputFile := filepath.Join(t.TempDir(), "ways.osm")
	data := `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6">
  <node id="1" lat="-40" lon="5"/>
  <node id="2" lat="-40" lon="10"/>
  <way id="10"><nd ref="1"/><nd ref="2"/></way>
</osm>`
	util.AssertNil(t, os.WriteFile(inputFile, []byte(data), 0644))
	vectorTree := newTestTree(t)

	store, err := Import(inputFile, vectorTree)

	util.AssertNil(t, err)
	util.AssertEqual(t, []index.FeatureID{10}, store.IDs())

	cell, err := common.ParseIndex("A-0")
	util.AssertNil(t, err)
	util.AssertEqual(t, []index.Fragment{{Begin: 0, End: 2}}, vectorTree.QueryFragments(10, cell))
}

func TestImport_unsupportedFile(t *testing.T) {
	_, err := Import("curves.csv", newTestTree(t))
	util.AssertError(t, "Unable to import OSM file curves.csv: Input file curves.csv must be an .osm or .pbf file", err)
}

func TestImport_missingFile(t *testing.T) {
	_, err := Import(filepath.Join(t.TempDir(), "missing.geojson"), newTestTree(t))
	util.AssertNotNil(t, err)
}

func TestGenerate(t *testing.T) {
	vectorTree := newTestTree(t)

	store := Generate(vectorTree, 7, 3, 10)

	util.AssertEqual(t, []index.FeatureID{1, 2, 3}, store.IDs())
	for _, fid := range store.IDs() {
		curve := store.Get(fid)
		util.AssertLen(t, 10, curve.Points)
		util.AssertEqual(t, feature.SourceGenerated, curve.Source)

		// The cell of every point knows the point
		for pid, point := range curve.Points {
			cell, _ := vectorTree.Projection().PointToCell(point, 4)
			fragments := vectorTree.QueryFragments(fid, cell)
			found := false
			for _, fragment := range fragments {
				found = found || (fragment.Begin <= pid && pid < fragment.End)
			}
			util.AssertTrue(t, found)
		}
	}

	// Same seed, same curves
	otherStore := Generate(newTestTree(t), 7, 3, 10)
	util.AssertEqual(t, store.Get(2).Points, otherStore.Get(2).Points)
}
