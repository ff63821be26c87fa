package io

import (
	"dggsvt/common"
	"dggsvt/feature"
	"dggsvt/index"
	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
	"io"
	"math"
	"strconv"
	"time"
)

// ReadCurvesFromGeoJson reads every LineString and MultiLineString feature of a feature collection. Each line becomes
// one curve. The ID is taken from the "id" property or the feature ID. Lines without an ID, including all but the
// first line of a MultiLineString, get IDs following the largest ID in the collection, in order of appearance.
// String properties become the tags of the curve.
func ReadCurvesFromGeoJson(reader io.Reader) ([]*feature.Curve, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrapf(err, "Unable to read GeoJSON data")
	}

	collection, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrapf(err, "Unable to parse GeoJSON feature collection")
	}

	var curves []*feature.Curve
	var curvesWithoutId []*feature.Curve
	var maxId index.FeatureID

	for position, geoJsonFeature := range collection.Features {
		var lines []orb.LineString
		switch geometry := geoJsonFeature.Geometry.(type) {
		case orb.LineString:
			lines = []orb.LineString{geometry}
		case orb.MultiLineString:
			lines = geometry
		default:
			sigolo.Debugf("Skip feature %d with unsupported geometry %T", position, geoJsonFeature.Geometry)
			continue
		}

		id, hasId, err := featureId(geoJsonFeature)
		if err != nil {
			return nil, errors.Wrapf(err, "Invalid ID of feature %d", position)
		}

		tags := map[string]string{}
		for key, value := range geoJsonFeature.Properties {
			if stringValue, ok := value.(string); ok {
				tags[key] = stringValue
			}
		}

		for i, line := range lines {
			curve := &feature.Curve{
				Source: feature.SourceGeoJson,
				Points: append([]orb.Point{}, line...),
				Tags:   tags,
			}

			if hasId && i == 0 {
				curve.ID = id
				maxId = max(maxId, id)
			} else {
				curvesWithoutId = append(curvesWithoutId, curve)
			}

			curves = append(curves, curve)
		}
	}

	for _, curve := range curvesWithoutId {
		maxId++
		curve.ID = maxId
	}

	sigolo.Debugf("Read %d curves from %d GeoJSON features", len(curves), len(collection.Features))
	return curves, nil
}

func featureId(geoJsonFeature *geojson.Feature) (index.FeatureID, bool, error) {
	value := geoJsonFeature.Properties["id"]
	if value == nil {
		value = geoJsonFeature.ID
	}

	switch id := value.(type) {
	case nil:
		return 0, false, nil
	case float64:
		if id < 0 || id != math.Trunc(id) {
			return 0, false, errors.Errorf("ID %v is no positive integer", id)
		}
		return index.FeatureID(id), true, nil
	case string:
		parsedId, err := strconv.ParseUint(id, 10, 64)
		if err != nil {
			return 0, false, errors.Wrapf(err, "Unable to parse ID '%s'", id)
		}
		return index.FeatureID(parsedId), true, nil
	}

	return 0, false, errors.Errorf("Unsupported ID type %T", value)
}

// WriteFragmentsAsGeoJson writes the parts of the curve described by the fragments as feature collection. Each point
// range (see index.SimplifyFragmentsToPointRanges) becomes one LineString feature, or a Point feature when it only
// consists of one point.
func WriteFragmentsAsGeoJson(curve *feature.Curve, cell common.Index, fragments []index.Fragment, writer io.Writer) error {
	sigolo.Debugf("Write fragments %s of feature %d to GeoJSON", index.FragmentsString(fragments), curve.ID)
	writeStartTime := time.Now()

	featureCollection := geojson.NewFeatureCollection()
	for _, pointRange := range index.SimplifyFragmentsToPointRanges(fragments, len(curve.Points)) {
		lineString := curve.LineString(pointRange)

		var geometry orb.Geometry = lineString
		if len(lineString) == 0 {
			continue
		} else if len(lineString) == 1 {
			geometry = lineString[0]
		}

		geoJsonFeature := geojson.NewFeature(geometry)
		for key, value := range curve.Tags {
			geoJsonFeature.Properties[key] = value
		}
		geoJsonFeature.Properties["feature_id"] = uint64(curve.ID)
		geoJsonFeature.Properties["cell"] = cell.String()
		geoJsonFeature.Properties["points"] = pointRange.String()

		featureCollection.Features = append(featureCollection.Features, geoJsonFeature)
	}

	geojsonBytes, err := featureCollection.MarshalJSON()
	if err != nil {
		return errors.Wrapf(err, "Unable to marshal fragments of feature %d", curve.ID)
	}

	_, err = writer.Write(geojsonBytes)
	if err != nil {
		return errors.Wrapf(err, "Unable to write fragments of feature %d", curve.ID)
	}

	sigolo.Debugf("Finished writing in %s", time.Since(writeStartTime))

	return nil
}
