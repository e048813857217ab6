//go:build governance

package token_test

import (
	"go/types"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

const modulePath = "github.com/leapstack-labs/jslint"

// =============================================================================
// COHESION TEST - Token types must be shared by multiple packages
// =============================================================================

// TestGovernance_TokenCohesion verifies that the types in pkg/token are
// genuinely shared. Single-use types belong to their sole consumer.
func TestGovernance_TokenCohesion(t *testing.T) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedImports | packages.NeedTypes |
			packages.NeedTypesInfo | packages.NeedDeps,
	}
	pkgs, err := packages.Load(cfg, modulePath+"/...")
	if err != nil {
		t.Fatalf("Failed to load packages: %v", err)
	}

	tokenDefs := make(map[types.Object]string)
	var tokenPkg *packages.Package
	for _, p := range pkgs {
		if p.PkgPath != modulePath+"/pkg/token" {
			continue
		}
		tokenPkg = p
		scope := p.Types.Scope()
		for _, name := range scope.Names() {
			if obj, ok := scope.Lookup(name).(*types.TypeName); ok && obj.Exported() {
				tokenDefs[obj] = name
			}
		}
		break
	}
	if tokenPkg == nil {
		t.Fatal("Could not find pkg/token")
	}

	usageMap := make(map[string]map[string]bool)
	for _, name := range tokenDefs {
		usageMap[name] = make(map[string]bool)
	}
	for _, p := range pkgs {
		if p.PkgPath == tokenPkg.PkgPath || p.TypesInfo == nil {
			continue
		}
		for _, obj := range p.TypesInfo.Uses {
			if name, ok := tokenDefs[obj]; ok {
				usageMap[name][strings.TrimPrefix(p.PkgPath, modulePath+"/")] = true
			}
		}
	}

	for typeName, importers := range usageMap {
		if isCohesionAllowlisted(typeName) {
			continue
		}
		switch len(importers) {
		case 0:
			t.Logf("WARNING: Unused token type: %s (consider deleting)", typeName)
		case 1:
			for user := range importers {
				t.Errorf("COHESION VIOLATION: 'token.%s' is used ONLY by '%s'.\n"+
					"   Fix: Move type from pkg/token to %s.", typeName, user, user)
			}
		}
	}
}

// isCohesionAllowlisted returns true for types allowed to have single usage.
func isCohesionAllowlisted(name string) bool {
	allowlist := map[string]bool{
		"CommentKind": true, // Field type of Comment
	}
	return allowlist[name]
}

// =============================================================================
// LAYERING TEST - Public packages never depend on internal ones
// =============================================================================

// TestGovernance_PublicPackagesAvoidInternal ensures the lint engine under
// pkg/ can be embedded without the CLI, config or plugin layers.
func TestGovernance_PublicPackagesAvoidInternal(t *testing.T) {
	cfg := &packages.Config{Mode: packages.NeedName | packages.NeedImports}
	pkgs, err := packages.Load(cfg, modulePath+"/pkg/...")
	if err != nil {
		t.Fatalf("Failed to load packages: %v", err)
	}

	for _, p := range pkgs {
		for path := range p.Imports {
			if strings.HasPrefix(path, modulePath+"/internal/") {
				t.Errorf("LAYERING VIOLATION: '%s' imports '%s'.",
					strings.TrimPrefix(p.PkgPath, modulePath+"/"), strings.TrimPrefix(path, modulePath+"/"))
			}
		}
	}
}
