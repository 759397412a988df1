package anim

import "errors"

// Programmer errors. They point at a bug in an algorithm module or a
// corrupted log and are never recovered from by the engine.
var (
	ErrUnknownID    = errors.New("anim: unknown object id")
	ErrDuplicateID  = errors.New("anim: object id already exists")
	ErrUnknownEdge  = errors.New("anim: no edge between objects")
	ErrWrongVariant = errors.New("anim: command not valid for object variant")
	ErrRecording    = errors.New("anim: animation is being recorded")
	ErrNotRecording = errors.New("anim: no animation is being recorded")
	ErrCorruptLog   = errors.New("anim: command log is inconsistent")
)

// ErrReplayDivergence reports that the live store no longer matches a
// replay of the log from its base state. Only produced when verification
// is enabled.
var ErrReplayDivergence = errors.New("anim: replay diverged from live state")

// errNoop marks a command that has no effect on the current state and is
// therefore not worth logging.
var errNoop = errors.New("anim: no-op")
