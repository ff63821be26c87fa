package web

import (
	"dggsvt/feature"
	"dggsvt/grid"
	"dggsvt/index"
	"dggsvt/util"
	"encoding/json"
	"github.com/gorilla/mux"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestRouter(t *testing.T) (*mux.Router, *index.VectorTree) {
	quadGrid, err := grid.NewQuadGrid(grid.DefaultOptions())
	util.AssertNil(t, err)
	vectorTree, err := index.NewVectorTree(quadGrid, quadGrid, index.DefaultOptions())
	util.AssertNil(t, err)

	store := feature.NewStore()
	curve := &feature.Curve{ID: 1, Points: []orb.Point{{5, -40}, {30, -40}}}
	util.AssertNil(t, store.Add(curve))
	vectorTree.InsertFeatureCurve(curve.ID, curve.Points)

	return initRouter(vectorTree, store), vectorTree
}

func get(router *mux.Router, url string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, url, nil))
	return recorder
}

func TestApi_fragments(t *testing.T) {
	router, _ := newTestRouter(t)

	response := get(router, "/cells/A-0/features/1")
	util.AssertEqual(t, http.StatusOK, response.Code)
	util.AssertEqual(t, `{"feature_id":1,"cell":"A-0","fragments":[{"begin":0,"end":1}]}`, response.Body.String())

	response = get(router, "/cells/A-3/features/1")
	util.AssertEqual(t, http.StatusOK, response.Code)
	util.AssertEqual(t, `{"feature_id":1,"cell":"A-3","fragments":[]}`, response.Body.String())
}

func TestApi_invalidRequests(t *testing.T) {
	router, _ := newTestRouter(t)

	response := get(router, "/cells/X-0/features/1")
	util.AssertEqual(t, http.StatusBadRequest, response.Code)
	errorResponse := &ErrorResponse{}
	util.AssertNil(t, json.Unmarshal(response.Body.Bytes(), errorResponse))
	util.AssertEqual(t, "Invalid cell 'X-0'", errorResponse.Error)

	response = get(router, "/cells/A-0/features/abc")
	util.AssertEqual(t, http.StatusBadRequest, response.Code)
	errorResponse = &ErrorResponse{}
	util.AssertNil(t, json.Unmarshal(response.Body.Bytes(), errorResponse))
	util.AssertEqual(t, "Invalid feature ID 'abc'", errorResponse.Error)

	response = get(router, "/cells/A-0/features/2/geojson")
	util.AssertEqual(t, http.StatusNotFound, response.Code)
}

func TestApi_geojson(t *testing.T) {
	router, _ := newTestRouter(t)

	response := get(router, "/cells/A-0/features/1/geojson")
	util.AssertEqual(t, http.StatusOK, response.Code)

	collection, err := geojson.UnmarshalFeatureCollection(response.Body.Bytes())
	util.AssertNil(t, err)
	util.AssertLen(t, 1, collection.Features)
	util.AssertEqual(t, orb.LineString{{5, -40}, {30, -40}}, collection.Features[0].Geometry)
}

func TestApi_tree(t *testing.T) {
	router, vectorTree := newTestRouter(t)

	response := get(router, "/tree")
	util.AssertEqual(t, http.StatusOK, response.Code)
	util.AssertEqual(t, vectorTree.String(), response.Body.String())
}
