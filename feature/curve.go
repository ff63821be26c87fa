package feature

import (
	"dggsvt/index"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"sort"
)

// Curve is an ordered list of points belonging to one feature. Fragments of the vector tree are ranges of indices
// into Points.
type Curve struct {
	ID     index.FeatureID
	Source Source
	Points []orb.Point
	Tags   map[string]string
}

// LineString returns the points within the given range as line string. The range is clamped to the curve.
func (c *Curve) LineString(fragment index.Fragment) orb.LineString {
	begin := max(fragment.Begin, 0)
	end := min(fragment.End, len(c.Points))
	if begin >= end {
		return orb.LineString{}
	}
	return append(orb.LineString{}, c.Points[begin:end]...)
}

// Store keeps all curves in memory, accessible by their feature ID.
type Store struct {
	curves map[index.FeatureID]*Curve
}

func NewStore() *Store {
	return &Store{
		curves: map[index.FeatureID]*Curve{},
	}
}

func (s *Store) Add(curve *Curve) error {
	if _, ok := s.curves[curve.ID]; ok {
		return errors.Errorf("Curve with ID %d already exists", curve.ID)
	}
	s.curves[curve.ID] = curve
	return nil
}

// Get returns the curve or nil when no curve with this ID exists.
func (s *Store) Get(id index.FeatureID) *Curve {
	return s.curves[id]
}

func (s *Store) Len() int {
	return len(s.curves)
}

// IDs returns the IDs of all curves in ascending order.
func (s *Store) IDs() []index.FeatureID {
	ids := make([]index.FeatureID, 0, len(s.curves))
	for id := range s.curves {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i] < ids[j]
	})
	return ids
}
