package osm

import (
	"dggsvt/common"
	"dggsvt/feature"
	"dggsvt/grid"
	"dggsvt/index"
	"dggsvt/util"
	"github.com/paulmach/orb"
	"strings"
	"testing"
)

const testData = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6">
  <node id="1" lat="-40" lon="5"/>
  <node id="2" lat="-40" lon="10"/>
  <node id="3" lat="-40" lon="30"/>
  <way id="10">
    <nd ref="1"/>
    <nd ref="2"/>
    <tag k="highway" v="path"/>
  </way>
  <way id="11">
    <nd ref="2"/>
    <nd ref="3"/>
    <nd ref="99"/>
  </way>
  <way id="12">
    <nd ref="98"/>
  </way>
</osm>`

func TestFormatOfFile(t *testing.T) {
	format, err := FormatOfFile("berlin.osm")
	util.AssertNil(t, err)
	util.AssertEqual(t, OsmXml, format)

	format, err = FormatOfFile("berlin.osm.pbf")
	util.AssertNil(t, err)
	util.AssertEqual(t, OsmPbf, format)

	_, err = FormatOfFile("berlin.geojson")
	util.AssertError(t, "Input file berlin.geojson must be an .osm or .pbf file", err)
}

func TestOsmReader_waysBecomeCurves(t *testing.T) {
	quadGrid, err := grid.NewQuadGrid(grid.DefaultOptions())
	util.AssertNil(t, err)
	vectorTree, err := index.NewVectorTree(quadGrid, quadGrid, index.DefaultOptions())
	util.AssertNil(t, err)
	store := feature.NewStore()

	curveHandler := NewWayCurveHandler(vectorTree, store)
	densityAggregator := NewCellDensityAggregator(quadGrid, common.MinSubResolution)

	err = NewOsmReader().ReadStream(strings.NewReader(testData), OsmXml, curveHandler, densityAggregator)
	util.AssertNil(t, err)

	util.AssertEqual(t, []index.FeatureID{10, 11}, store.IDs())
	util.AssertEqual(t, []orb.Point{{5, -40}, {10, -40}}, store.Get(10).Points)
	util.AssertEqual(t, map[string]string{"highway": "path"}, store.Get(10).Tags)
	util.AssertEqual(t, feature.SourceOsmWay, store.Get(10).Source)
	util.AssertEqual(t, []orb.Point{{10, -40}, {30, -40}}, store.Get(11).Points)

	cellA0, _ := common.ParseIndex("A-0")
	cellA1, _ := common.ParseIndex("A-1")
	util.AssertEqual(t, []index.Fragment{{Begin: 0, End: 2}}, vectorTree.QueryFragments(10, cellA0))
	util.AssertEqual(t, []index.Fragment{{Begin: 0, End: 1}}, vectorTree.QueryFragments(11, cellA0))
	util.AssertEqual(t, []index.Fragment{{Begin: 1, End: 2}}, vectorTree.QueryFragments(11, cellA1))

	util.AssertEqual(t, 2, densityAggregator.CellToNodeCount[cellA0])
	util.AssertEqual(t, 1, densityAggregator.CellToNodeCount[cellA1])
	util.AssertEqual(t, []common.Index{cellA0, cellA1}, densityAggregator.DensestCells(5))
	util.AssertEqual(t, []common.Index{cellA0}, densityAggregator.DensestCells(1))
}
