package main

import (
	"log/slog"
	"time"

	"algoviz/internal/algo"
	"algoviz/internal/anim"
)

type model struct {
	width  int
	height int

	config *Config
	logger *slog.Logger
	ctrl   *anim.Controller
	alg    algo.Algorithm
	names  []string
	index  int

	mode          Mode
	confirmAction ConfirmAction
	input         string
	inputCursor   int
	history       []string

	playing  bool
	tickID   int
	interval time.Duration

	help           bool
	helpScroll     int
	errorMessage   string
	successMessage string
}

type tickMsg struct {
	id int
}
