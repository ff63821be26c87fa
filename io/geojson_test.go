package io

import (
	"bytes"
	"dggsvt/common"
	"dggsvt/feature"
	"dggsvt/index"
	"dggsvt/util"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"strings"
	"testing"
)

func TestReadCurvesFromGeoJson(t *testing.T) {
	data := `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"id": 7, "name": "a"}, "geometry": {"type": "LineString", "coordinates": [[1, 2], [3, 4]]}},
    {"type": "Feature", "id": "12", "properties": {}, "geometry": {"type": "MultiLineString", "coordinates": [[[5, 6], [7, 8]], [[9, 10], [11, 12]]]}},
    {"type": "Feature", "properties": {"id": 100}, "geometry": {"type": "Point", "coordinates": [1, 2]}},
    {"type": "Feature", "properties": {}, "geometry": {"type": "LineString", "coordinates": [[0, 0], [1, 1], [2, 2]]}}
  ]
}`

	curves, err := ReadCurvesFromGeoJson(strings.NewReader(data))
	util.AssertNil(t, err)
	util.AssertLen(t, 4, curves)

	util.AssertEqual(t, index.FeatureID(7), curves[0].ID)
	util.AssertEqual(t, []orb.Point{{1, 2}, {3, 4}}, curves[0].Points)
	util.AssertEqual(t, map[string]string{"name": "a"}, curves[0].Tags)
	util.AssertEqual(t, feature.SourceGeoJson, curves[0].Source)

	util.AssertEqual(t, index.FeatureID(12), curves[1].ID)
	util.AssertEqual(t, []orb.Point{{5, 6}, {7, 8}}, curves[1].Points)
	util.AssertEqual(t, index.FeatureID(13), curves[2].ID)
	util.AssertEqual(t, []orb.Point{{9, 10}, {11, 12}}, curves[2].Points)

	util.AssertEqual(t, index.FeatureID(14), curves[3].ID)
	util.AssertLen(t, 3, curves[3].Points)
}

func TestReadCurvesFromGeoJson_invalidInput(t *testing.T) {
	_, err := ReadCurvesFromGeoJson(strings.NewReader("{ no json"))
	util.AssertNotNil(t, err)

	data := `{"type": "FeatureCollection", "features": [
    {"type": "Feature", "properties": {"id": -3}, "geometry": {"type": "LineString", "coordinates": [[1, 2], [3, 4]]}}
  ]}`
	_, err = ReadCurvesFromGeoJson(strings.NewReader(data))
	util.AssertError(t, "Invalid ID of feature 0: ID -3 is no positive integer", err)
}

func TestWriteFragmentsAsGeoJson(t *testing.T) {
	curve := &feature.Curve{
		ID:     3,
		Points: []orb.Point{{1, 1}, {2, 2}, {3, 3}, {4, 4}, {5, 5}},
		Tags:   map[string]string{"highway": "path"},
	}
	cell, err := common.ParseIndex("A-01")
	util.AssertNil(t, err)
	buffer := &bytes.Buffer{}

	err = WriteFragmentsAsGeoJson(curve, cell, []index.Fragment{{Begin: 1, End: 2}, {Begin: 4, End: 4}}, buffer)
	util.AssertNil(t, err)

	collection, err := geojson.UnmarshalFeatureCollection(buffer.Bytes())
	util.AssertNil(t, err)
	util.AssertLen(t, 2, collection.Features)

	util.AssertEqual(t, orb.LineString{{1, 1}, {2, 2}, {3, 3}}, collection.Features[0].Geometry)
	util.AssertEqual(t, "[0,3)", collection.Features[0].Properties["points"])
	util.AssertEqual(t, "A-01", collection.Features[0].Properties["cell"])
	util.AssertEqual(t, float64(3), collection.Features[0].Properties["feature_id"])
	util.AssertEqual(t, "path", collection.Features[0].Properties["highway"])

	util.AssertEqual(t, orb.LineString{{4, 4}, {5, 5}}, collection.Features[1].Geometry)
	util.AssertEqual(t, "[3,5)", collection.Features[1].Properties["points"])
}

func TestWriteFragmentsAsGeoJson_singlePoint(t *testing.T) {
	curve := &feature.Curve{ID: 1, Points: []orb.Point{{1, 1}}}
	cell, err := common.ParseIndex("A-0")
	util.AssertNil(t, err)
	buffer := &bytes.Buffer{}

	err = WriteFragmentsAsGeoJson(curve, cell, []index.Fragment{{Begin: 0, End: 1}}, buffer)
	util.AssertNil(t, err)

	collection, err := geojson.UnmarshalFeatureCollection(buffer.Bytes())
	util.AssertNil(t, err)
	util.AssertLen(t, 1, collection.Features)
	util.AssertEqual(t, orb.Point{1, 1}, collection.Features[0].Geometry)
}
