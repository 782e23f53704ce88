package renpy

import (
	"fmt"
	"os"
	"path/filepath"
)

// Compile writes the full project: game/script.rpy plus every asset under
// game/images. The tree is built in a staging directory next to OutputDir and
// renamed into place only once everything is written, so a failed run never
// leaves a half-written project behind.
func (pc *ProjectCompiler) Compile(scenes []Scene, assets []Asset) error {
	if len(scenes) == 0 {
		return fmt.Errorf("%w: no scenes to compile", ErrAssembly)
	}

	byID := make(map[string][]byte, len(assets))
	for _, a := range assets {
		byID[a.ID] = a.PNG
	}
	if _, ok := byID[pc.spriteID]; !ok {
		return fmt.Errorf("%w: no asset generated for sprite %q", ErrAssembly, pc.spriteID)
	}
	for i, scene := range scenes {
		if _, ok := byID[scene.Background]; !ok {
			return fmt.Errorf("%w: scene %d references missing asset %q", ErrAssembly, i+1, scene.Background)
		}
	}

	parent := filepath.Dir(pc.OutputDir)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return fmt.Errorf("%w: creating output parent: %v", ErrAssembly, err)
	}
	staging, err := os.MkdirTemp(parent, ".vnovel-staging-*")
	if err != nil {
		return fmt.Errorf("%w: creating staging directory: %v", ErrAssembly, err)
	}
	defer os.RemoveAll(staging)

	imagesDir := filepath.Join(staging, "game", "images")
	if err := os.MkdirAll(imagesDir, 0o755); err != nil {
		return fmt.Errorf("%w: creating images directory: %v", ErrAssembly, err)
	}

	script := pc.RenderScript(scenes)
	scriptPath := filepath.Join(staging, "game", "script.rpy")
	if err := os.WriteFile(scriptPath, []byte(script), 0o644); err != nil {
		return fmt.Errorf("%w: writing script: %v", ErrAssembly, err)
	}

	for _, a := range assets {
		assetPath := filepath.Join(imagesDir, a.ID+".png")
		if err := os.WriteFile(assetPath, a.PNG, 0o644); err != nil {
			return fmt.Errorf("%w: writing asset %s: %v", ErrAssembly, a.ID, err)
		}
	}

	if err := os.RemoveAll(pc.OutputDir); err != nil {
		return fmt.Errorf("%w: clearing previous project: %v", ErrAssembly, err)
	}
	if err := os.Rename(staging, pc.OutputDir); err != nil {
		return fmt.Errorf("%w: moving project into place: %v", ErrAssembly, err)
	}
	return nil
}
