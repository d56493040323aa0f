package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/BarrensZeppelin/flow/goflow"
	"github.com/BarrensZeppelin/flow/internal/config"
	"github.com/BarrensZeppelin/flow/pkgutil"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"golang.org/x/tools/go/packages"
)

var dir = flag.String("dir", "", "alternative directory to run the go build tool in")
var configFile = flag.String("config", "", "read settings from the YAML `file`")
var tests = flag.Bool("tests", false, "also analyze test files")

var (
	posColor = color.New(color.Bold)
	msgColor = color.New(color.FgYellow)
)

func init() {
	log.SetFlags(log.Ltime | log.Lshortfile)
}

func main() {
	flag.Parse()

	if flag.NArg() == 0 {
		log.Fatal("Specify a package query on the command line")
	}

	cfg := config.Default()
	if *configFile != "" {
		var err error
		if cfg, err = config.Load(*configFile); err != nil {
			log.Fatalf("Loading configuration failed: %v", err)
		}
	}
	cfg.Tests = cfg.Tests || *tests

	pkgs, err := pkgutil.LoadPackagesWithConfig(&packages.Config{
		Mode:  pkgutil.LoadMode,
		Tests: cfg.Tests,
		Dir:   *dir,
	}, flag.Args()...)

	if err != nil {
		log.Fatalf("Loading packages failed: %v", err)
	}

	log.Printf("Loaded %d packages", len(pkgs))

	switch cfg.Color {
	case config.ColorAlways:
		color.NoColor = false
	case config.ColorNever:
		color.NoColor = true
	default:
		color.NoColor = !isatty.IsTerminal(os.Stdout.Fd())
	}

	found := 0
	seen := make(map[string]bool)
	for _, pkg := range pkgs {
		if cfg.Excluded(pkg.PkgPath) {
			continue
		}

		diags, err := goflow.CheckFiles(pkg.TypesInfo, pkg.Syntax)
		if err != nil {
			log.Fatalf("%s: %v", pkg.PkgPath, err)
		}

		for _, d := range diags {
			pos := pkg.Fset.Position(d.Pos).String()
			// Test variants of a package repeat its files.
			if seen[pos] {
				continue
			}
			seen[pos] = true
			found++
			report(os.Stdout, pos, d.Message)
		}
	}

	if found > 0 {
		os.Exit(1)
	}
}

func report(w io.Writer, pos, msg string) {
	fmt.Fprintf(w, "%s %s\n", posColor.Sprint(pos+":"), msgColor.Sprint(msg))
}
