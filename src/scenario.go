package vnovel

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Scenario is one ethics question presented to the player: the question text,
// the selectable answers in display order, and the index of the correct one.
type Scenario struct {
	Question      string   `yaml:"question"`
	Answers       []string `yaml:"answers"`
	CorrectAnswer int      `yaml:"correct_answer"`
}

// Narrative holds the generated text for one Scenario: the framing that leads
// into the question, a visual description of the scene, and one consequence
// per answer, matched to Answers strictly by index.
type Narrative struct {
	Intro        string
	Scene        string
	Consequences []string
}

// Asset is one generated image, referenced from the script by its ID.
type Asset struct {
	ID  string
	PNG []byte
}

type situationsFile struct {
	Situations []Scenario `yaml:"situations"`
}

// LoadScenarios reads the situations YAML file and returns the scenarios in
// file order. Any malformed or invalid entry fails the whole load: a broken
// scenario cannot be rendered into a consistent project, so there is no point
// spending backend calls on the rest.
func LoadScenarios(path string) ([]Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrScenarioParse, path, err)
	}
	return ParseScenarios(data)
}

// ParseScenarios decodes and validates the situations document.
func ParseScenarios(data []byte) ([]Scenario, error) {
	var file situationsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScenarioParse, err)
	}
	if len(file.Situations) == 0 {
		return nil, fmt.Errorf("%w: no situations declared", ErrScenarioParse)
	}
	for i, s := range file.Situations {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("situation %d: %w", i+1, err)
		}
	}
	return file.Situations, nil
}

// Validate checks the Scenario invariants.
func (s Scenario) Validate() error {
	if strings.TrimSpace(s.Question) == "" {
		return fmt.Errorf("%w: question is empty", ErrScenarioInvalid)
	}
	if len(s.Answers) < 2 {
		return fmt.Errorf("%w: there should be at least 2 possible answers (%d provided)", ErrScenarioInvalid, len(s.Answers))
	}
	for i, a := range s.Answers {
		if strings.TrimSpace(a) == "" {
			return fmt.Errorf("%w: answer %d is empty", ErrScenarioInvalid, i+1)
		}
	}
	if s.CorrectAnswer < 0 || s.CorrectAnswer >= len(s.Answers) {
		return fmt.Errorf("%w: correct_answer should be between 0 and %d", ErrScenarioInvalid, len(s.Answers)-1)
	}
	return nil
}

// Correct returns the text of the correct answer.
func (s Scenario) Correct() string {
	return s.Answers[s.CorrectAnswer]
}
