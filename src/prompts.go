package vnovel

import (
	"fmt"
	"strings"
)

// The narrator persona shared by every scenario. Keeping one recurring
// character lets the whole novel reuse a single sprite.
const supervisorName = "Dr. Lenz"

func getNarrativeSystemPrompt(answerCount int) string {
	prompt := `You are writing scenes for an educational visual novel about research ethics.
The player is a junior researcher; their supervisor ` + supervisorName + ` guides them through
ethical dilemmas encountered in a university lab.

For the situation provided, write:
    1. A short narrative introduction (2-4 sentences) leading into the dilemma,
       spoken by the supervisor. Stay concrete and grounded in everyday lab life.
    2. A one-sentence visual description of the setting, suitable as an image
       generation prompt (location, lighting, mood; no people names, no text in the image).
    3. For each possible answer, the narrative consequence (2-4 sentences) of the
       player choosing it. Consequences for poor choices should show realistic
       fallout, not cartoonish punishment.

Do not reveal which answer is the correct one inside the introduction.
Do not ask for confirmation in any way, just output the scene.
This is essential.

Answer strictly in the following format, one field per line, no markdown, no extra lines:`
	prompt += "\n```\n"
	prompt += "intro: <introduction spoken by the supervisor>\n"
	prompt += "scene: <visual description of the setting>\n"
	for i := 1; i <= answerCount; i++ {
		prompt += fmt.Sprintf("%d: <consequence of choosing answer %d>\n", i, i)
	}
	prompt += "```"
	return prompt
}

func buildNarrativeUserPrompt(s Scenario) string {
	var sb strings.Builder
	sb.WriteString("This is the situation, it is very important that you cover every answer:\n")
	sb.WriteString("Question: " + s.Question + "\n")
	for i, a := range s.Answers {
		fmt.Fprintf(&sb, "Answer %d: %s\n", i+1, a)
	}
	fmt.Fprintf(&sb, "The ethically correct answer is answer %d.\n", s.CorrectAnswer+1)
	return sb.String()
}

// backgroundStyle is appended to every generated scene description so the
// backgrounds share one visual identity.
const backgroundStyle = "visual novel background, detailed anime style, no people, no text, soft lighting"

func buildBackgroundPrompt(scene string) string {
	scene = strings.TrimSpace(scene)
	if scene == "" {
		scene = "university research laboratory interior"
	}
	return scene + ", " + backgroundStyle
}

func getSupervisorSpritePrompt() string {
	return `middle-aged university professor in a lab coat, friendly but stern expression,
standing, facing viewer, visual novel character sprite, detailed anime style,
full body, plain white background, no text`
}
