package feature

import "fmt"

// Source tells where a curve has been read from.
type Source int

const (
	SourceOsmWay Source = iota
	SourceGeoJson
	SourceGenerated
)

func (s Source) String() string {
	switch s {
	case SourceOsmWay:
		return "osm-way"
	case SourceGeoJson:
		return "geojson"
	case SourceGenerated:
		return "generated"
	}
	return fmt.Sprintf("[!UNKNOWN Source %d]", s)
}
