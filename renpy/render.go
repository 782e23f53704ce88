package renpy

import (
	"fmt"
	"strings"
)

// RenderScript produces the complete script.rpy source for the given scenes.
// The output is deterministic: the same scenes always render to the same
// bytes, so re-running the pipeline on unchanged inputs is a no-op diff.
func (pc *ProjectCompiler) RenderScript(scenes []Scene) string {
	var sb strings.Builder

	sb.WriteString("# Generated file. Re-run the pipeline instead of editing by hand.\n\n")
	fmt.Fprintf(&sb, "define %s = Character(\"%s\", color=\"#c8ffc8\")\n", pc.narratorTag, escape(pc.narratorName))
	sb.WriteString("default score = 0\n\n")

	sb.WriteString("label start:\n")
	fmt.Fprintf(&sb, "    jump %s\n\n", sceneLabel(1))

	for i, scene := range scenes {
		pc.renderScene(&sb, i+1, scene, i+1 == len(scenes))
	}

	pc.renderFinale(&sb, scenes)
	return sb.String()
}

func (pc *ProjectCompiler) renderScene(sb *strings.Builder, num int, scene Scene, last bool) {
	next := sceneLabel(num + 1)
	if last {
		next = "finale"
	}

	fmt.Fprintf(sb, "label %s:\n", sceneLabel(num))
	fmt.Fprintf(sb, "    scene %s with fade\n", scene.Background)
	fmt.Fprintf(sb, "    show %s at right with dissolve\n", pc.spriteID)
	fmt.Fprintf(sb, "    %s \"%s\"\n", pc.narratorTag, escape(scene.Intro))
	sb.WriteString("    menu:\n")
	fmt.Fprintf(sb, "        %s \"%s\"\n", pc.narratorTag, escape(scene.Question))
	for j := range scene.Choices {
		fmt.Fprintf(sb, "        \"%s\":\n", escape(scene.Choices[j].Text))
		fmt.Fprintf(sb, "            jump %s\n", answerLabel(num, j+1))
	}
	sb.WriteString("\n")

	for j, choice := range scene.Choices {
		fmt.Fprintf(sb, "label %s:\n", answerLabel(num, j+1))
		fmt.Fprintf(sb, "    %s \"%s\"\n", pc.narratorTag, escape(choice.Consequence))
		if choice.Correct {
			sb.WriteString("    $ score += 1\n")
		}
		fmt.Fprintf(sb, "    jump %s\n\n", next)
	}
}

func (pc *ProjectCompiler) renderFinale(sb *strings.Builder, scenes []Scene) {
	sb.WriteString("label finale:\n")
	sb.WriteString("    scene black with fade\n")
	fmt.Fprintf(sb, "    %s \"You handled [score] out of %d situations the right way.\"\n", pc.narratorTag, len(scenes))
	sb.WriteString("    return\n")
}

func sceneLabel(num int) string {
	return fmt.Sprintf("scenario_%02d", num)
}

func answerLabel(num, answer int) string {
	return fmt.Sprintf("scenario_%02d_answer_%d", num, answer)
}

// escape makes free text safe inside a Ren'Py double-quoted string. Square
// and curly brackets are doubled because Ren'Py treats them as interpolation
// and text-tag markers.
func escape(s string) string {
	r := strings.NewReplacer(
		"\\", "\\\\",
		"\"", "\\\"",
		"\n", "\\n",
		"[", "[[",
		"{", "{{",
	)
	return r.Replace(s)
}
