package vnovel

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseNarrative maps the model's plain-text answer onto a Narrative. The
// expected grammar is the one pinned in the system prompt:
//
//	intro: <text>
//	scene: <text>
//	1: <text>
//	...
//	N: <text>
//
// Fields must appear in order. Lines without a recognized prefix are treated
// as continuations of the current field, since models like to wrap long
// sentences. The function either returns a fully populated Narrative or an
// error; it never returns a partial record.
func ParseNarrative(text string, answerCount int) (Narrative, error) {
	lines := nonEmptyTrimmedLines(text)
	if len(lines) == 0 {
		return Narrative{}, fmt.Errorf("empty response")
	}

	n := Narrative{Consequences: make([]string, answerCount)}
	current := -1 // 0-based index of the consequence currently being read
	var (
		inIntro, inScene bool
		seenIntro        bool
		seenScene        bool
	)
	appendTo := func(s string) error {
		switch {
		case inIntro:
			n.Intro = joinField(n.Intro, s)
		case inScene:
			n.Scene = joinField(n.Scene, s)
		case current >= 0:
			n.Consequences[current] = joinField(n.Consequences[current], s)
		default:
			return fmt.Errorf("unexpected content before 'intro:': %q", s)
		}
		return nil
	}

	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "intro:"):
			if seenIntro {
				return Narrative{}, fmt.Errorf("duplicate 'intro:' field")
			}
			seenIntro, inIntro, inScene = true, true, false
			n.Intro = strings.TrimSpace(strings.TrimPrefix(line, "intro:"))
		case strings.HasPrefix(line, "scene:"):
			if seenScene {
				return Narrative{}, fmt.Errorf("duplicate 'scene:' field")
			}
			if !seenIntro {
				return Narrative{}, fmt.Errorf("'scene:' before 'intro:'")
			}
			seenScene, inIntro, inScene = true, false, true
			n.Scene = strings.TrimSpace(strings.TrimPrefix(line, "scene:"))
		default:
			if idx, rest, ok := splitNumbered(line); ok {
				if idx < 1 || idx > answerCount {
					return Narrative{}, fmt.Errorf("consequence index %d out of range (expected 1..%d)", idx, answerCount)
				}
				if idx != current+2 {
					return Narrative{}, fmt.Errorf("consequence %d out of order (expected %d next)", idx, current+2)
				}
				if !seenScene {
					return Narrative{}, fmt.Errorf("consequence %d before 'scene:'", idx)
				}
				inIntro, inScene = false, false
				current = idx - 1
				n.Consequences[current] = rest
				continue
			}
			if err := appendTo(line); err != nil {
				return Narrative{}, err
			}
		}
	}

	if strings.TrimSpace(n.Intro) == "" {
		return Narrative{}, fmt.Errorf("missing or empty 'intro:' field")
	}
	if strings.TrimSpace(n.Scene) == "" {
		return Narrative{}, fmt.Errorf("missing or empty 'scene:' field")
	}
	for i, c := range n.Consequences {
		if strings.TrimSpace(c) == "" {
			return Narrative{}, fmt.Errorf("missing or empty consequence for answer %d", i+1)
		}
	}
	return n, nil
}

// splitNumbered recognizes "<digits>: rest" lines.
func splitNumbered(line string) (int, string, bool) {
	colon := strings.Index(line, ":")
	if colon <= 0 {
		return 0, "", false
	}
	idx, err := strconv.Atoi(strings.TrimSpace(line[:colon]))
	if err != nil {
		return 0, "", false
	}
	return idx, strings.TrimSpace(line[colon+1:]), true
}

func joinField(existing, more string) string {
	if existing == "" {
		return more
	}
	return existing + " " + more
}

func nonEmptyTrimmedLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "```") {
			continue
		}
		out = append(out, line)
	}
	return out
}
