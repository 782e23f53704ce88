package vnovel

import (
	"errors"

	"github.com/thmaillarb/vnovel-generation/renpy"
)

// Error taxonomy for the pipeline. Everything a component returns wraps one of
// these so callers can tell a broken config apart from a flaky backend.
var (
	// ErrScenarioParse is returned when the situations file is not well-formed YAML.
	ErrScenarioParse = errors.New("situations file is not well-formed")

	// ErrScenarioInvalid is returned when a situation violates its invariants
	// (too few answers, correct_answer out of range, blank question).
	ErrScenarioInvalid = errors.New("situation failed validation")

	// ErrGeneration is returned when a model backend is unreachable or keeps
	// producing output that cannot be mapped onto the expected structure.
	ErrGeneration = errors.New("generation failed")
)

// ErrAssembly is returned when the finished project cannot be written out.
// It is declared in the renpy package, next to the code that raises it.
var ErrAssembly = renpy.ErrAssembly
