// shadowtool inspects shadow volumes and projection shadows without opening a window.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/Faultbox/midgard-shadow/internal/config"
	"github.com/Faultbox/midgard-shadow/internal/engine/scene"
	"github.com/Faultbox/midgard-shadow/internal/engine/shadow"
	"github.com/Faultbox/midgard-shadow/internal/engine/tess"
	"github.com/Faultbox/midgard-shadow/internal/logger"
	"github.com/Faultbox/midgard-shadow/pkg/math"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "stats":
		err = cmdStats(args)
	case "silhouette", "sil":
		err = cmdSilhouette(args)
	case "deform":
		err = cmdDeform(args)
	case "config":
		err = cmdConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`shadowtool - stencil shadow volume inspector

Usage:
  shadowtool <command> [options]

Commands:
  stats [scene.yaml]                 Render one frame and print per-entity shadow stats
  silhouette <shape>                 Print the silhouette edges of a primitive
  deform <shape>                     Print a primitive flattened by the projection shadow
  config init [path]                 Write the default config file

Examples:
  shadowtool stats -technique volume -backend vk
  shadowtool stats -stencil-bits 0 scenes/courtyard.yaml
  shadowtool silhouette -light 1,1,1 cube
  shadowtool deform -light 1,0,0.2 -height 40 pyramid
  shadowtool config init`)
}

// shadowFlags registers the options shared by commands that build a shadow.Config.
type shadowFlags struct {
	technique   *string
	backend     *string
	policy      *string
	stencilBits *int
	maxVertexes *int
	maxIndexes  *int
	debug       *bool
}

func addShadowFlags(fs *flag.FlagSet) *shadowFlags {
	d := config.Default()
	return &shadowFlags{
		technique:   fs.String("technique", d.Shadows.Technique, "Shadow technique: none, projection, volume"),
		backend:     fs.String("backend", d.Shadows.Backend, "Volume backend variant: gl, vk"),
		policy:      fs.String("policy", d.Shadows.SilhouettePolicy, "Silhouette policy: auto, first-match, count-matches"),
		stencilBits: fs.Int("stencil-bits", d.Graphics.StencilBits, "Stencil depth of the render target"),
		maxVertexes: fs.Int("max-vertexes", d.Shadows.MaxVertexes, "Tessellation buffer vertex capacity"),
		maxIndexes:  fs.Int("max-indexes", d.Shadows.MaxIndexes, "Tessellation buffer index capacity"),
		debug:       fs.Bool("debug", false, "Log overflow and skip decisions"),
	}
}

func (f *shadowFlags) config() (config.ShadowConfig, shadow.Config, error) {
	if *f.debug {
		if err := logger.Init("debug", ""); err != nil {
			return config.ShadowConfig{}, shadow.Config{}, err
		}
	}

	sc := config.Default().Shadows
	sc.Technique = *f.technique
	sc.Backend = *f.backend
	sc.SilhouettePolicy = *f.policy
	sc.MaxVertexes = *f.maxVertexes
	sc.MaxIndexes = *f.maxIndexes

	cfg, err := sc.Volume(*f.stencilBits)
	return sc, cfg, err
}

func cmdStats(args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	sf := addShadowFlags(fs)
	mirror := fs.Bool("mirror", false, "Render through a mirrored view")
	fs.Parse(args)
	defer logger.Sync()

	sc, cfg, err := sf.config()
	if err != nil {
		return err
	}

	s := scene.Demo()
	if fs.NArg() > 0 {
		if s, err = scene.Load(fs.Arg(0)); err != nil {
			return err
		}
	}

	rec := &shadow.Recorder{}
	r := scene.NewRenderer(cfg, tess.New(sc.MaxVertexes, sc.MaxIndexes), rec)
	stats, err := r.Render(s, *mirror)
	if err != nil {
		return err
	}

	fmt.Printf("Technique: %s  Backend: %s  Policy: %s  Stencil bits: %d\n",
		cfg.Technique, cfg.Variant, cfg.Policy, cfg.StencilBits)
	fmt.Println()
	fmt.Printf("  %-12s %-10s %6s %6s %6s %8s %8s\n", "ENTITY", "SKIPPED", "TRIS", "FACING", "QUADS", "BATCHES", "DANGLING")
	for _, es := range stats.Entities {
		res := es.Volume
		fmt.Printf("  %-12s %-10s %6d %6d %6d %8d %8d\n",
			es.Name, skipLabel(res.Skipped), res.Triangles, res.FacingTriangles, res.Quads,
			res.BatchesPerPass, res.Silhouette.Dangling)
	}

	fmt.Println()
	fmt.Println("Draws by pipeline:")
	counts := make(map[string]int)
	for _, c := range rec.Calls {
		counts[c.Pipeline.Name]++
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %-22s %d\n", name, counts[name])
	}

	fmt.Println()
	fmt.Printf("Casters: %d  Skipped: %d  Quads: %d  Draws: %d  Darkened: %v\n",
		stats.Casters, stats.Skipped, stats.Quads, stats.Draws, stats.Darkened)
	if stats.DroppedEdgeDefs > 0 || stats.DroppedQuads > 0 {
		fmt.Printf("Dropped edge defs: %d  Dropped quads: %d\n", stats.DroppedEdgeDefs, stats.DroppedQuads)
	}
	return nil
}

func skipLabel(r shadow.SkipReason) string {
	if r == shadow.NotSkipped {
		return "-"
	}
	switch r {
	case shadow.SkipStencilBits:
		return "stencil"
	case shadow.SkipTooManyVertexes:
		return "vertexes"
	default:
		return "indexes"
	}
}

func cmdSilhouette(args []string) error {
	fs := flag.NewFlagSet("silhouette", flag.ExitOnError)
	sf := addShadowFlags(fs)
	light := fs.String("light", "0,0,1", "Direction towards the light, x,y,z")
	size := fs.String("size", "", "Shape size, comma separated")
	fs.Parse(args)
	defer logger.Sync()

	if fs.NArg() < 1 {
		return fmt.Errorf("usage: shadowtool silhouette [options] <shape>")
	}
	_, cfg, err := sf.config()
	if err != nil {
		return err
	}
	lightDir, err := parseVec3(*light)
	if err != nil {
		return err
	}
	sizes, err := parseFloats(*size)
	if err != nil {
		return err
	}
	mesh, err := scene.Shape(fs.Arg(0), sizes)
	if err != nil {
		return err
	}

	table := shadow.NewEdgeTable(len(mesh.Xyz), cfg.EdgeDefs)
	table.Reset(len(mesh.Xyz))
	facing := make([]bool, mesh.NumTriangles())
	nFacing := shadow.ClassifyFacing(mesh.Xyz, mesh.Indexes, lightDir.Normalize(), facing, table)
	edges, st := shadow.Extract(table, len(mesh.Xyz), cfg.Policy, 0, nil)

	fmt.Printf("Shape: %s  Vertexes: %d  Triangles: %d  Facing: %d  Policy: %s\n",
		fs.Arg(0), len(mesh.Xyz), mesh.NumTriangles(), nFacing, cfg.Policy)
	for _, e := range edges {
		a, b := mesh.Xyz[e.From], mesh.Xyz[e.To]
		fmt.Printf("  %3d -> %-3d (%g,%g,%g) -> (%g,%g,%g)\n", e.From, e.To, a.X, a.Y, a.Z, b.X, b.Y, b.Z)
	}
	fmt.Printf("Candidates: %d  Emitted: %d  Rejected: %d  Dangling: %d\n",
		st.Candidates, st.Emitted, st.Rejected, st.Dangling)
	return nil
}

func cmdDeform(args []string) error {
	fs := flag.NewFlagSet("deform", flag.ExitOnError)
	light := fs.String("light", "0,0,1", "Direction towards the light, x,y,z")
	size := fs.String("size", "", "Shape size, comma separated")
	height := fs.Float64("height", 0, "Entity origin height")
	plane := fs.Float64("plane", 0, "Shadow plane height")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("usage: shadowtool deform [options] <shape>")
	}
	lightDir, err := parseVec3(*light)
	if err != nil {
		return err
	}
	sizes, err := parseFloats(*size)
	if err != nil {
		return err
	}
	mesh, err := scene.Shape(fs.Arg(0), sizes)
	if err != nil {
		return err
	}

	or := math.Orientation{Origin: math.Vec3{Z: float32(*height)}, Axis: math.IdentityAxes()}
	ground, dist := shadow.GroundPlane(or, float32(*plane))
	xyz := append([]math.Vec3(nil), mesh.Xyz...)
	corrected, ok := shadow.ProjectionDeform(xyz, ground, dist, lightDir.Normalize())
	if !ok {
		return fmt.Errorf("degenerate ground plane %v", ground)
	}

	fmt.Printf("Light: (%g,%g,%g)  clamped: (%g,%g,%g)\n",
		lightDir.X, lightDir.Y, lightDir.Z, corrected.X, corrected.Y, corrected.Z)
	for i, v := range xyz {
		w := or.PointToWorld(v)
		fmt.Printf("  %3d (%g,%g,%g) -> (%g,%g,%g)\n", i,
			mesh.Xyz[i].X, mesh.Xyz[i].Y, mesh.Xyz[i].Z+float32(*height), w.X, w.Y, w.Z)
	}
	return nil
}

func cmdConfig(args []string) error {
	if len(args) < 1 || args[0] != "init" {
		return fmt.Errorf("usage: shadowtool config init [path]")
	}
	cfg := config.Default()
	if len(args) > 1 {
		if err := cfg.SaveTo(args[1]); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", args[1])
		return nil
	}
	if err := cfg.Save(); err != nil {
		return err
	}
	fmt.Printf("Wrote %s/config.yaml\n", config.ConfigDir())
	return nil
}
