// Command fusion2scad converts a design snapshot (JSON) into an
// OpenSCAD/BOSL2 script and a structured debug record.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/ahzs645/Fusion2SCAD/internal/common"
	"github.com/ahzs645/Fusion2SCAD/pkg/export"
	"github.com/ahzs645/Fusion2SCAD/pkg/model"
	"github.com/ahzs645/Fusion2SCAD/pkg/watch"
)

func main() {
	logger := common.Logger()

	if err := godotenv.Load(); err == nil {
		logger.Debug("fusion2scad: environment loaded from .env")
	}

	outDir := flag.String("out", envDefault("FUSION2SCAD_OUT", "."), "output directory")
	name := flag.String("name", "", "base name for output files (default: design name from the snapshot)")
	segments := flag.Int("segments", envIntDefault("FUSION2SCAD_SEGMENTS", 0), "arc approximation segment count (0 uses the default)")
	foldIntersections := flag.Bool("fold-intersections", false, "combine intersection features into the boolean tree instead of commenting them out")
	selectiveEdges := flag.Bool("selective-edges", false, "emit edges= arguments so fillets/chamfers apply only to the selected edge groups")
	noDebug := flag.Bool("no-debug", false, "skip writing the _debug.json record")
	watchMode := flag.Bool("watch", false, "re-export whenever the snapshot file changes")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] snapshot.json\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
		os.Exit(2)
	}
	snapshot := flag.Arg(0)

	cfg := export.DefaultConfig()
	if *segments > 0 {
		cfg.Analyze.ArcSegments = *segments
	}
	cfg.Emit.SelectiveEdges = *selectiveEdges
	cfg.FoldIntersections = *foldIntersections
	exp := export.New(cfg)

	run := func() error {
		return runExport(exp, snapshot, *outDir, *name, !*noDebug)
	}

	if err := run(); err != nil {
		logger.Error("fusion2scad: export failed", "snapshot", snapshot, "error", err)
		os.Exit(1)
	}

	if !*watchMode {
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := watch.New(snapshot)
	if err != nil {
		logger.Error("fusion2scad: cannot watch snapshot", "snapshot", snapshot, "error", err)
		os.Exit(1)
	}
	defer w.Stop()

	logger.Info("fusion2scad: watching for changes", "snapshot", snapshot)
	for range w.Changes(ctx) {
		if err := run(); err != nil {
			// Watch mode keeps going; a bad intermediate save should not
			// kill the session.
			logger.Error("fusion2scad: re-export failed", "snapshot", snapshot, "error", err)
		}
	}
}

// runExport loads the snapshot, compiles it, and writes the script and
// optionally the debug record next to each other in outDir.
func runExport(exp *export.Exporter, snapshot, outDir, name string, withDebug bool) error {
	logger := common.Logger()

	design, err := model.LoadSnapshot(snapshot)
	if err != nil {
		return err
	}

	res, err := exp.Export(design)
	if err != nil {
		return err
	}
	for _, issue := range res.Issues {
		logger.Warn("fusion2scad: export issue", "issue", issue.String())
	}

	base := name
	if base == "" {
		base = design.Name
	}
	if base == "" {
		base = strings.TrimSuffix(filepath.Base(snapshot), filepath.Ext(snapshot))
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	scadPath := filepath.Join(outDir, base+".scad")
	if err := os.WriteFile(scadPath, []byte(res.Script+"\n"), 0o644); err != nil {
		return err
	}
	logger.Info("fusion2scad: wrote script", "path", scadPath, "features", len(res.Debug.Features))

	if !withDebug {
		return nil
	}
	data, err := json.MarshalIndent(res.Debug, "", "  ")
	if err != nil {
		return err
	}
	debugPath := filepath.Join(outDir, base+"_debug.json")
	if err := os.WriteFile(debugPath, data, 0o644); err != nil {
		return err
	}
	logger.Info("fusion2scad: wrote debug record", "path", debugPath)
	return nil
}

func envDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envIntDefault(key string, fallback int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
