package web

import (
	"dggsvt/common"
	"dggsvt/feature"
	"dggsvt/index"
	ownIo "dggsvt/io"
	"encoding/json"
	"fmt"
	"github.com/gorilla/mux"
	"github.com/hauke96/sigolo/v2"
	"net/http"
	"strconv"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func NewErrorResponse(message string, err error) ErrorResponse {
	response := ErrorResponse{
		Error: message,
	}
	if err != nil {
		response.Details = err.Error()
	}
	return response
}

type FragmentsResponse struct {
	FeatureID index.FeatureID  `json:"feature_id"`
	Cell      string           `json:"cell"`
	Fragments []index.Fragment `json:"fragments"`
}

func StartServer(port string, tree *index.VectorTree, store *feature.Store) {
	r := initRouter(tree, store)
	sigolo.Infof("Start server on port %s", port)
	err := http.ListenAndServe(":"+port, r)
	sigolo.FatalCheck(err)
}

func initRouter(tree *index.VectorTree, store *feature.Store) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/cells/{cell}/features/{fid}", func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Access-Control-Allow-Origin", "*")
		writer.Header().Set("Content-Type", "application/json")

		fid, cell, ok := parseFeatureRequest(writer, request)
		if !ok {
			return
		}

		fragments := tree.QueryFragments(fid, cell)
		sigolo.Debugf("Feature %d in cell %s: %s", fid, cell, index.FragmentsString(fragments))

		if fragments == nil {
			fragments = []index.Fragment{}
		}
		response := FragmentsResponse{
			FeatureID: fid,
			Cell:      cell.String(),
			Fragments: fragments,
		}

		responseBytes, err := json.Marshal(response)
		if err != nil {
			writeError(writer, http.StatusInternalServerError, "Error creating response", err)
			return
		}

		_, err = writer.Write(responseBytes)
		if err != nil {
			sigolo.Errorf("Error writing response: %+v", err)
		}
	}).Methods(http.MethodGet)

	r.HandleFunc("/cells/{cell}/features/{fid}/geojson", func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Access-Control-Allow-Origin", "*")
		writer.Header().Set("Content-Type", "application/geo+json")

		fid, cell, ok := parseFeatureRequest(writer, request)
		if !ok {
			return
		}

		curve := store.Get(fid)
		if curve == nil {
			writeError(writer, http.StatusNotFound, fmt.Sprintf("Unknown feature %d", fid), nil)
			return
		}

		err := ownIo.WriteFragmentsAsGeoJson(curve, cell, tree.QueryFragments(fid, cell), writer)
		if err != nil {
			writeError(writer, http.StatusInternalServerError, "Error writing GeoJSON", err)
		}
	}).Methods(http.MethodGet)

	r.HandleFunc("/tree", func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "text/plain")

		_, err := writer.Write([]byte(tree.String()))
		if err != nil {
			sigolo.Errorf("Error writing response: %+v", err)
		}
	}).Methods(http.MethodGet)

	return r
}

// parseFeatureRequest reads the feature ID and cell from the URL. On failure an error response has been written and
// false is returned.
func parseFeatureRequest(writer http.ResponseWriter, request *http.Request) (index.FeatureID, common.Index, bool) {
	vars := mux.Vars(request)

	cell, err := common.ParseIndex(vars["cell"])
	if err != nil {
		writeError(writer, http.StatusBadRequest, fmt.Sprintf("Invalid cell '%s'", vars["cell"]), err)
		return 0, common.Index{}, false
	}

	fid, err := strconv.ParseUint(vars["fid"], 10, 64)
	if err != nil {
		writeError(writer, http.StatusBadRequest, fmt.Sprintf("Invalid feature ID '%s'", vars["fid"]), err)
		return 0, common.Index{}, false
	}

	return index.FeatureID(fid), cell, true
}

func writeError(writer http.ResponseWriter, status int, message string, err error) {
	sigolo.Errorf("%s: %+v", message, err)
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)

	errorResponseBytes, err := json.Marshal(NewErrorResponse(message, err))
	if err != nil {
		sigolo.Errorf("Error creating and marshalling error response object: %+v", err)
	}

	_, err = writer.Write(errorResponseBytes)
	if err != nil {
		sigolo.Errorf("Error writing error response: %+v", err)
	}
}
