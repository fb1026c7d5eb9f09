// hexmesh is a CLI utility for generating and triangulating hex terrain.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/Faultbox/hexterrain/internal/config"
	"github.com/Faultbox/hexterrain/internal/export"
	"github.com/Faultbox/hexterrain/internal/logger"
	"github.com/Faultbox/hexterrain/internal/world"
	"github.com/Faultbox/hexterrain/pkg/hexmesh"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "gen", "generate":
		cmdGen(args)
	case "build", "b":
		cmdBuild(args)
	case "stats":
		cmdStats(args)
	case "path":
		cmdPath(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`hexmesh - hex terrain triangulation utility

Usage:
  hexmesh <command> [options]

Commands:
  gen [-seed N] <map.yaml>                 Generate terrain and save it as a map
  build [-format F] [-out file] [map.yaml] Triangulate a map (or fresh terrain) and export it
  stats <mesh.pb>                          Show counts and bounds of an exported mesh
  path <map.yaml> <x1> <z1> <x2> <z2>      Find a walkable path between two cells

Formats: obj, pb, svg

Examples:
  hexmesh gen -seed 7 maps/island.yaml
  hexmesh build -out island.obj maps/island.yaml
  hexmesh build -chunks-x 8 -chunks-z 6 -out preview.svg
  hexmesh stats island.pb`)
}

// setup parses the common flags, loads the config and starts logging.
func setup(name string, args []string) (*config.Config, *flag.FlagSet) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	flags := config.RegisterFlags(fs)
	fs.Parse(args)

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	return cfg, fs
}

func fail(msg string, err error) {
	logger.Error(msg, zap.Error(err))
	logger.Sync()
	os.Exit(1)
}

func cmdGen(args []string) {
	cfg, fs := setup("gen", args)
	defer logger.Sync()

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: hexmesh gen [-seed N] <map.yaml>")
		os.Exit(1)
	}

	g, seed, err := world.Load(cfg, "")
	if err != nil {
		fail("generation failed", err)
	}
	if err := g.SaveMap(fs.Arg(0), seed); err != nil {
		fail("saving map failed", err)
	}

	fmt.Printf("Map:   %s\n", fs.Arg(0))
	fmt.Printf("Seed:  %d\n", seed)
	fmt.Printf("Cells: %dx%d\n", g.Width(), g.Height())
}

func cmdBuild(args []string) {
	cfg, fs := setup("build", args)
	defer logger.Sync()

	format, err := cfg.OutputFormat()
	if err != nil {
		fail("unknown output format", err)
	}

	g, seed, err := world.Load(cfg, fs.Arg(0))
	if err != nil {
		fail("loading terrain failed", err)
	}
	mesh, err := world.Build(g, cfg.Grid.Workers, cfg.Output.SmoothNormals)
	if err != nil {
		fail("triangulation failed", err)
	}

	if format == export.FormatSVG {
		err = writeSVG(cfg.Output.Path, mesh, cfg.Output.SVG)
	} else {
		err = export.WriteFile(cfg.Output.Path, format, mesh)
	}
	if err != nil {
		fail("export failed", err)
	}

	stats := g.Stats()
	fmt.Printf("Output:    %s (%s)\n", cfg.Output.Path, format)
	fmt.Printf("Seed:      %d\n", seed)
	fmt.Printf("Cells:     %d\n", stats.Cells)
	fmt.Printf("Vertices:  %d\n", mesh.VertexCount())
	fmt.Printf("Triangles: %d\n", mesh.TriangleCount())
	fmt.Println()
	fmt.Println("Primitives:")
	fmt.Printf("  %-16s %d\n", "fan triangles", stats.FanTriangles)
	fmt.Printf("  %-16s %d\n", "bridge quads", stats.BridgeQuads)
	fmt.Printf("  %-16s %d\n", "terrace quads", stats.TerraceQuads)
	fmt.Printf("  %-16s %d\n", "corner fans", stats.CornerFans)
	fmt.Printf("  %-16s %d\n", "boundary fans", stats.BoundaryFans)
	fmt.Printf("  %-16s %d\n", "open corners", stats.OpenCorners)
}

func cmdStats(args []string) {
	_, fs := setup("stats", args)
	defer logger.Sync()

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: hexmesh stats <mesh.pb>")
		os.Exit(1)
	}

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	mesh, err := export.ReadProto(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	b := mesh.Bounds
	fmt.Printf("Mesh:      %s\n", fs.Arg(0))
	fmt.Printf("Vertices:  %d\n", mesh.VertexCount())
	fmt.Printf("Triangles: %d\n", mesh.TriangleCount())
	fmt.Printf("Bounds:    (%.2f, %.2f, %.2f) - (%.2f, %.2f, %.2f)\n",
		b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)
	size := b.Size()
	fmt.Printf("Size:      %.2f x %.2f x %.2f\n", size.X, size.Y, size.Z)
}

func cmdPath(args []string) {
	cfg, fs := setup("path", args)
	defer logger.Sync()

	if fs.NArg() < 5 {
		fmt.Fprintln(os.Stderr, "Usage: hexmesh path <map.yaml> <x1> <z1> <x2> <z2>")
		os.Exit(1)
	}
	var coords [4]int
	for i := range coords {
		v, err := strconv.Atoi(fs.Arg(i + 1))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid coordinate %q\n", fs.Arg(i+1))
			os.Exit(1)
		}
		coords[i] = v
	}

	g, _, err := world.Load(cfg, fs.Arg(0))
	if err != nil {
		fail("loading map failed", err)
	}
	start, goal := g.Cell(coords[0], coords[1]), g.Cell(coords[2], coords[3])
	if start == nil || goal == nil {
		fmt.Fprintf(os.Stderr, "Cell out of range (map is %dx%d)\n", g.Width(), g.Height())
		os.Exit(1)
	}

	path, cost := g.FindPath(start, goal)
	if path == nil {
		fmt.Println("No walkable path")
		os.Exit(2)
	}
	for _, c := range path {
		x, z := c.Offset()
		fmt.Printf("%3d %3d  elevation %d\n", x, z, c.Elevation())
	}
	fmt.Fprintf(os.Stderr, "\n(%d cells, cost %d)\n", len(path), cost)
}

// writeSVG writes an SVG preview with the configured options.
func writeSVG(path string, mesh hexmesh.Mesh, opts export.SVGOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.WriteSVG(f, mesh, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
