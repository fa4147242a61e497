package domain

import (
	"fmt"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

const modulePath = "github.com/ghuser/menagerist"

var forbiddenDomainImports = []string{
	modulePath + "/services/item/application",
	modulePath + "/services/item/infrastructure",
	modulePath + "/cmd",
	modulePath + "/pkg/httpx",
	modulePath + "/pkg/errhttp",
	modulePath + "/pkg/database",
	modulePath + "/pkg/cache",
	modulePath + "/pkg/events",
	"net/http",
	"database/sql",
	"github.com/go-chi",
	"github.com/jackc/pgx",
	"github.com/redis/go-redis",
	"github.com/ThreeDotsLabs/watermill",
}

// TestArchitecture_DomainIsPure walks every non-test file under the domain
// tree and fails on imports of outer layers or framework packages.
func TestArchitecture_DomainIsPure(t *testing.T) {
	_, currentFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("failed to resolve current test file path")
	}
	domainDir := filepath.Dir(currentFile)

	violations, err := domainImportViolations(domainDir)
	if err != nil {
		t.Fatalf("walk domain tree: %v", err)
	}
	if len(violations) > 0 {
		t.Fatalf("domain boundary violations detected:\n- %s", strings.Join(violations, "\n- "))
	}
}

func TestArchitecture_DetectsForbiddenImport(t *testing.T) {
	dir := t.TempDir()
	src := "package leaky\n\nimport _ \"github.com/go-chi/chi/v5\"\n"
	if err := os.WriteFile(filepath.Join(dir, "leaky.go"), []byte(src), 0o600); err != nil {
		t.Fatal(err)
	}

	violations, err := domainImportViolations(dir)
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	if len(violations) != 1 || !strings.Contains(violations[0], "go-chi/chi/v5") {
		t.Fatalf("expected one chi violation, got %v", violations)
	}
}

func domainImportViolations(root string) ([]string, error) {
	fset := token.NewFileSet()
	var violations []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}

		parsed, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			return fmt.Errorf("parse file %s: %w", path, err)
		}
		for _, imp := range parsed.Imports {
			importPath := strings.Trim(imp.Path.Value, `"`)
			for _, prefix := range forbiddenDomainImports {
				if !hasPrefixImport(importPath, prefix) {
					continue
				}
				relPath, relErr := filepath.Rel(root, path)
				if relErr != nil {
					relPath = path
				}
				pos := fset.Position(imp.Path.Pos())
				violations = append(violations, fmt.Sprintf("%s:%d imports %q", relPath, pos.Line, importPath))
				break
			}
		}
		return nil
	})
	return violations, err
}

func hasPrefixImport(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}
