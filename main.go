package main

import (
	"dggsvt/common"
	"dggsvt/feature"
	"dggsvt/grid"
	"dggsvt/importing"
	"dggsvt/index"
	ownIo "dggsvt/io"
	"dggsvt/web"
	"fmt"
	"github.com/alecthomas/kong"
	"github.com/hauke96/sigolo/v2"
	"github.com/pkg/errors"
	"os"
	"strings"
)

const VERSION = "v0.1.0"

var cli struct {
	Logging       string      `help:"Logging verbosity." enum:"info,debug,trace" short:"l" default:"info"`
	Version       VersionFlag `help:"Print version information and quit" name:"version" short:"v"`
	Tolerance     float64     `help:"Fraction of the cell size used as safety margin in point and segment tests." default:"0.01"`
	MaxResolution int         `help:"Finest resolution the vector tree is refined to." default:"38"`
	SliceBits     int         `help:"Width of the slice masks of the grid." default:"12"`
	CacheSize     int         `help:"Number of cached query results." default:"1024"`
	Dump          struct {
		Input string `help:"The input file. Either .osm, .osm.pbf or .geojson." placeholder:"<input-file>" arg:"" type:"existingfile"`
	} `cmd:"" help:"Imports the given file and prints the vector tree."`
	Query struct {
		Input   string `help:"The input file. Either .osm, .osm.pbf or .geojson." placeholder:"<input-file>" arg:"" type:"existingfile"`
		Feature uint64 `help:"The feature ID." placeholder:"<feature>" arg:""`
		Cell    string `help:"The cell, e.g. 'A-0123'." placeholder:"<cell>" arg:""`
	} `cmd:"" help:"Prints the parts of a feature within a cell as GeoJSON."`
	Generate struct {
		Seed   int64 `help:"Seed of the random generator." default:"1"`
		Curves int   `help:"Number of curves to generate." default:"10"`
		Points int   `help:"Number of points per curve." default:"20"`
	} `cmd:"" help:"Inserts random curves and prints the vector tree."`
	Serve struct {
		Input string `help:"The input file. Either .osm, .osm.pbf or .geojson." placeholder:"<input-file>" arg:"" type:"existingfile"`
		Port  string `help:"The port the HTTP API listens on." short:"p" default:"8080"`
	} `cmd:"" help:"Imports the given file and serves queries via HTTP."`
}

type VersionFlag string

func (v VersionFlag) Decode(ctx *kong.DecodeContext) error { return nil }
func (v VersionFlag) IsBool() bool                         { return true }
func (v VersionFlag) BeforeApply(app *kong.Kong, vars kong.Vars) error {
	fmt.Println(vars["version"])
	app.Exit(0)
	return nil
}

func main() {
	ctx := kong.Parse(
		&cli,
		kong.Name("dggsvt"),
		kong.Description("A hierarchical index of vector geometries on a discrete global grid."),
		kong.Vars{
			"version": VERSION,
		},
	)

	if strings.ToLower(cli.Logging) == "debug" {
		sigolo.SetDefaultLogLevel(sigolo.LOG_DEBUG)
	} else if strings.ToLower(cli.Logging) == "trace" {
		sigolo.SetDefaultLogLevel(sigolo.LOG_TRACE)
	} else if strings.ToLower(cli.Logging) == "info" {
		sigolo.SetDefaultLogLevel(sigolo.LOG_INFO)
		sigolo.SetDefaultFormatFunctionAll(sigolo.LogPlain)
	} else {
		sigolo.SetDefaultFormatFunctionAll(sigolo.LogPlain)
		sigolo.Fatalf("Unknown logging level '%s'", cli.Logging)
	}

	switch ctx.Command() {
	case "dump <input>":
		tree, _ := importInput(cli.Dump.Input)
		fmt.Print(tree.String())
	case "query <input> <feature> <cell>":
		tree, store := importInput(cli.Query.Input)

		cell, err := common.ParseIndex(cli.Query.Cell)
		sigolo.FatalCheck(err)

		fid := index.FeatureID(cli.Query.Feature)
		curve := store.Get(fid)
		if curve == nil {
			sigolo.FatalCheck(errors.Errorf("Unknown feature %d", fid))
		}

		fragments := tree.QueryFragments(fid, cell)
		sigolo.Infof("Feature %d in cell %s: %s", fid, cell, index.FragmentsString(fragments))

		err = ownIo.WriteFragmentsAsGeoJson(curve, cell, fragments, os.Stdout)
		sigolo.FatalCheck(err)
	case "generate":
		tree := newVectorTree()
		importing.Generate(tree, cli.Generate.Seed, cli.Generate.Curves, cli.Generate.Points)
		fmt.Print(tree.String())
	case "serve <input>":
		tree, store := importInput(cli.Serve.Input)
		web.StartServer(cli.Serve.Port, tree, store)
	default:
		sigolo.Errorf("Unknown command '%s'", ctx.Command())
	}
}

func importInput(inputFile string) (*index.VectorTree, *feature.Store) {
	tree := newVectorTree()

	store, err := importing.Import(inputFile, tree)
	sigolo.FatalCheck(err)

	return tree, store
}

func newVectorTree() *index.VectorTree {
	quadGrid, err := grid.NewQuadGrid(grid.Options{
		Tolerance: cli.Tolerance,
		SliceBits: cli.SliceBits,
	})
	sigolo.FatalCheck(err)

	tree, err := index.NewVectorTree(quadGrid, quadGrid, index.Options{
		MaxResolution: cli.MaxResolution,
		CacheSize:     cli.CacheSize,
	})
	sigolo.FatalCheck(err)

	return tree
}
