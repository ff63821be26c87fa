package osm

import (
	"dggsvt/feature"
	"dggsvt/index"
	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/pkg/errors"
)

// WayCurveHandler turns every way into a curve. The curves are added to the store and inserted into the vector tree.
// Nodes must be read before the ways referencing them.
type WayCurveHandler struct {
	tree          *index.VectorTree
	store         *feature.Store
	nodePositions map[osm.NodeID]orb.Point
	skippedWays   int
}

func NewWayCurveHandler(tree *index.VectorTree, store *feature.Store) *WayCurveHandler {
	return &WayCurveHandler{
		tree:  tree,
		store: store,
	}
}

func (h *WayCurveHandler) Name() string {
	return "WayCurveHandler"
}

func (h *WayCurveHandler) Init() error {
	h.nodePositions = map[osm.NodeID]orb.Point{}
	h.skippedWays = 0
	return nil
}

func (h *WayCurveHandler) HandleNode(node *osm.Node) error {
	h.nodePositions[node.ID] = node.Point()
	return nil
}

func (h *WayCurveHandler) HandleWay(way *osm.Way) error {
	var points []orb.Point
	for _, wayNode := range way.Nodes {
		position, ok := h.nodePositions[wayNode.ID]
		if !ok {
			sigolo.Debugf("Node %d of way %d not found, skip it", wayNode.ID, way.ID)
			continue
		}
		points = append(points, position)
	}

	if len(points) == 0 {
		sigolo.Debugf("Way %d has no known nodes, skip it", way.ID)
		h.skippedWays++
		return nil
	}

	curve := &feature.Curve{
		ID:     index.FeatureID(way.ID),
		Source: feature.SourceOsmWay,
		Points: points,
		Tags:   way.Tags.Map(),
	}

	err := h.store.Add(curve)
	if err != nil {
		return errors.Wrapf(err, "Unable to store curve of way %d", way.ID)
	}

	h.tree.InsertFeatureCurve(curve.ID, curve.Points)
	return nil
}

func (h *WayCurveHandler) Done() error {
	if h.skippedWays > 0 {
		sigolo.Warnf("Skipped %d ways without known nodes", h.skippedWays)
	}
	sigolo.Debugf("Inserted %d curves", h.store.Len())
	return nil
}
