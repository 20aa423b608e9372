package mesh

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Load reads a mesh file, choosing the importer by extension.
func Load(path string, opts OBJOptions) (*Mesh, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		return LoadOBJ(path, opts)
	case ".stl":
		return LoadSTL(path)
	default:
		return nil, fmt.Errorf("unsupported mesh format %q (want .obj or .stl)", ext)
	}
}
