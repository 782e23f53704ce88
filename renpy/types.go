// Package renpy assembles generated scenes and images into a runnable Ren'Py
// project directory.
package renpy

import "errors"

// ErrAssembly is returned when the project cannot be assembled: a script
// references an asset that was never generated, or the output tree cannot be
// written. Assembly errors are environment errors and are never retried.
var ErrAssembly = errors.New("project assembly failed")

// Scene is one question scene of the novel, in display order.
type Scene struct {
	Question   string
	Intro      string
	Background string // asset ID of the scene background
	Choices    []Choice
}

// Choice is one selectable answer and the narrative branch it leads to.
type Choice struct {
	Text        string
	Consequence string
	Correct     bool
}

// Asset is one image file to place under game/images.
type Asset struct {
	ID  string
	PNG []byte
}

// ProjectCompiler writes a Ren'Py project: one generated script file plus the
// image assets it references, laid out the way the engine expects.
type ProjectCompiler struct {
	OutputDir string

	narratorName string // display name of the recurring narrator character
	narratorTag  string // character variable used in the script
	spriteID     string // asset ID of the narrator sprite
}

// NewProjectCompiler creates a compiler targeting outputDir. narratorName is
// the on-screen name of the recurring narrator; spriteID is the asset ID of
// that character's sprite.
func NewProjectCompiler(outputDir, narratorName, spriteID string) *ProjectCompiler {
	return &ProjectCompiler{
		OutputDir:    outputDir,
		narratorName: narratorName,
		narratorTag:  "sup",
		spriteID:     spriteID,
	}
}
