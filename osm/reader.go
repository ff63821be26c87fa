package osm

import (
	"context"
	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/pkg/errors"
	"io"
	"os"
	"strings"
	"time"
)

type OsmDataHandler interface {
	Name() string
	Init() error
	HandleNode(node *osm.Node) error
	HandleWay(way *osm.Way) error
	Done() error
}

// OsmFormat is the encoding of an OSM input stream.
type OsmFormat int

const (
	OsmXml OsmFormat = iota
	OsmPbf
)

// FormatOfFile determines the format by the file extension (.osm or .pbf).
func FormatOfFile(filename string) (OsmFormat, error) {
	switch {
	case strings.HasSuffix(filename, ".osm"):
		return OsmXml, nil
	case strings.HasSuffix(filename, ".pbf"):
		return OsmPbf, nil
	}
	return OsmXml, errors.Errorf("Input file %s must be an .osm or .pbf file", filename)
}

type OsmReader struct {
	firstWayHasBeenProcessed bool
}

func NewOsmReader() *OsmReader {
	return &OsmReader{
		firstWayHasBeenProcessed: false,
	}
}

func (r *OsmReader) Read(filename string, handlers ...OsmDataHandler) error {
	format, err := FormatOfFile(filename)
	if err != nil {
		return err
	}

	file, err := os.Open(filename)
	if err != nil {
		return errors.Wrapf(err, "Unable to open OSM input file %s", filename)
	}
	defer file.Close()

	sigolo.Infof("Start processing OSM data file %s", filename)
	return r.ReadStream(file, format, handlers...)
}

// ReadStream passes every node and way of the stream to all handlers. Relations are ignored.
func (r *OsmReader) ReadStream(reader io.Reader, format OsmFormat, handlers ...OsmDataHandler) error {
	var scanner osm.Scanner
	if format == OsmPbf {
		scanner = osmpbf.New(context.Background(), reader, 1)
	} else {
		scanner = osmxml.New(context.Background(), reader)
	}

	importStartTime := time.Now()

	for _, handler := range handlers {
		err := handler.Init()
		if err != nil {
			return errors.Wrapf(err, "Initializing OSM data handler '%s' failed", handler.Name())
		}
	}

	sigolo.Debug("Start processing nodes (1/2)")
	for scanner.Scan() {
		switch osmObj := scanner.Object().(type) {
		case *osm.Node:
			for _, handler := range handlers {
				err := handler.HandleNode(osmObj)
				if err != nil {
					return errors.Wrapf(err, "Handling node %d using handler '%s' failed", osmObj.ID, handler.Name())
				}
			}
		case *osm.Way:
			if !r.firstWayHasBeenProcessed {
				sigolo.Debug("Start processing ways (2/2)")
				r.firstWayHasBeenProcessed = true
			}

			for _, handler := range handlers {
				err := handler.HandleWay(osmObj)
				if err != nil {
					return errors.Wrapf(err, "Handling way %d using handler '%s' failed", osmObj.ID, handler.Name())
				}
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return errors.Wrapf(err, "Unable to read OSM data")
	}

	for _, handler := range handlers {
		err := handler.Done()
		if err != nil {
			return errors.Wrapf(err, "Calling done function on handler '%s' failed", handler.Name())
		}
	}

	err := scanner.Close()
	if err != nil {
		return errors.Wrapf(err, "Unable to close OSM scanner")
	}

	importDuration := time.Since(importStartTime)
	sigolo.Infof("Done processing OSM data in %s", importDuration)

	return nil
}
