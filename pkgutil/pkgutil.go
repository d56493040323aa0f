// Package pkgutil loads type-checked packages for analysis.
package pkgutil

import (
	"errors"
	"os"

	"golang.org/x/tools/go/packages"
)

// LoadMode requests everything an analysis of function bodies needs: syntax
// and full type information for the packages and their dependencies.
const LoadMode = packages.NeedSyntax | packages.NeedTypesInfo | packages.NeedTypes |
	packages.NeedTypesSizes | packages.NeedImports | packages.NeedName |
	packages.NeedFiles | packages.NeedCompiledGoFiles | packages.NeedDeps

var ErrLoad = errors.New("errors encountered while loading packages")

// LoadPackagesFromSource loads a single main package from source text.
func LoadPackagesFromSource(source string) ([]*packages.Package, error) {
	// The overlay lets the loader see a file that does not exist on disk.
	config := &packages.Config{
		Mode:  LoadMode,
		Tests: false,
		Dir:   "",
		Env:   append(os.Environ(), "GO111MODULE=off", "GOPATH=/fake"),
		Overlay: map[string][]byte{
			"/fake/testpackage/main.go": []byte(source),
		},
	}

	return LoadPackagesWithConfig(config, "/fake/testpackage/main.go")
}

// LoadPackagesWithConfig loads the packages matching queries. Packages are
// returned alongside ErrLoad when some of them have errors, so callers can
// report what did load.
func LoadPackagesWithConfig(config *packages.Config, queries ...string) ([]*packages.Package, error) {
	pkgs, err := packages.Load(config, queries...)
	switch {
	case err != nil:
		return nil, err
	case packages.PrintErrors(pkgs) > 0:
		return pkgs, ErrLoad
	default:
		return pkgs, nil
	}
}
