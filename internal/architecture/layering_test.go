package architecture_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHexagonalLayerImports(t *testing.T) {
	t.Parallel()
	fset := token.NewFileSet()
	root := filepath.Join("..", "modules")
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		slash := filepath.ToSlash(path)
		module := moduleName(slash)
		layer := detectLayer(slash)
		if module == "" || layer == "" {
			return nil
		}
		node, parseErr := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if parseErr != nil {
			return parseErr
		}
		for _, imp := range node.Imports {
			importPath := strings.Trim(imp.Path.Value, `"`)
			if !strings.Contains(importPath, "wikigo/internal/modules/") {
				continue
			}
			if violatesLayerRule(module, layer, importPath) {
				t.Fatalf("forbidden import in %s (%s): %s", slash, layer, importPath)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk modules: %v", err)
	}
}

func moduleName(path string) string {
	parts := strings.Split(path, "/")
	for i := 0; i < len(parts)-1; i++ {
		if parts[i] == "modules" && i+1 < len(parts) {
			return parts[i+1]
		}
	}
	return ""
}

func detectLayer(path string) string {
	for _, layer := range []string{"adapter/in", "adapter/out", "usecase", "service", "domain", "port/in", "port/out", "dto"} {
		if strings.Contains(path, "/"+layer+"/") {
			return layer
		}
	}
	return ""
}

func isPortIn(path string) bool {
	return strings.Contains(path, "/port/in/") || strings.HasSuffix(path, "/port/in")
}

func isDTO(path string) bool {
	return strings.Contains(path, "/dto/") || strings.HasSuffix(path, "/dto")
}

// violatesLayerRule reports whether a file in module/layer may not import
// importPath. Other modules are reachable only through port/in and dto.
func violatesLayerRule(module, layer, importPath string) bool {
	sameModule := strings.Contains(importPath, "/internal/modules/"+module+"/")
	if !sameModule {
		return !isPortIn(importPath) && !isDTO(importPath)
	}

	switch layer {
	case "adapter/in":
		return !isPortIn(importPath) && !isDTO(importPath)
	case "usecase":
		return strings.Contains(importPath, "/adapter/")
	case "service":
		return strings.Contains(importPath, "/adapter/") || strings.Contains(importPath, "/usecase/")
	case "domain":
		return strings.Contains(importPath, "/adapter/") || strings.Contains(importPath, "/usecase/") || strings.Contains(importPath, "/service/")
	default:
		return false
	}
}

func TestViolatesLayerRule(t *testing.T) {
	t.Parallel()
	cases := []struct {
		module, layer, importPath string
		want                      bool
	}{
		{"game", "usecase", "wikigo/internal/modules/wiki/port/in", false},
		{"game", "usecase", "wikigo/internal/modules/leaderboard/dto", false},
		{"game", "usecase", "wikigo/internal/modules/wiki/domain", true},
		{"game", "usecase", "wikigo/internal/modules/wiki/service", true},
		{"game", "usecase", "wikigo/internal/modules/game/adapter/out", true},
		{"leaderboard", "adapter/in", "wikigo/internal/modules/leaderboard/service", true},
		{"leaderboard", "adapter/in", "wikigo/internal/modules/game/port/in", false},
		{"wiki", "service", "wikigo/internal/modules/wiki/usecase", true},
		{"wiki", "domain", "wikigo/internal/modules/wiki/service", true},
		{"practice", "adapter/out", "wikigo/internal/modules/practice/domain", false},
	}
	for _, tc := range cases {
		if got := violatesLayerRule(tc.module, tc.layer, tc.importPath); got != tc.want {
			t.Fatalf("%s/%s importing %s: got %v, want %v", tc.module, tc.layer, tc.importPath, got, tc.want)
		}
	}
}
