package main

import "time"

type Mode int

const (
	ModeNormal Mode = iota
	ModeAction
	ModeJump
	ModeConfirm
)

type ExportFormat int

const (
	ExportPNG ExportFormat = iota
	ExportTXT
)

type ConfirmAction int

const (
	ConfirmClearHistory ConfirmAction = iota
	ConfirmResetModule
	ConfirmQuit
)

const (
	defaultAlgorithm    = "dfs"
	defaultStepInterval = 600 * time.Millisecond
	minStepInterval     = 50 * time.Millisecond

	configFileName = ".algoviz.yaml"

	// Width of the pseudocode panel, border included
	codePanelWidth = 52
	minFrameWidth  = 20
)
