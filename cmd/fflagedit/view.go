package main

import (
	"fmt"
	"io"

	"fflagedit/internal/editor"
	"fflagedit/internal/errors"
	"fflagedit/internal/jsonfmt"
)

// cliView is an editor.View that remembers what the controller showed so
// a command can print it when it is done.
type cliView struct {
	buffer      string
	pathLabel   string
	status      string
	lockEnabled bool
	lockLabel   string
}

func (v *cliView) Buffer() string              { return v.buffer }
func (v *cliView) SetBuffer(text string)       { v.buffer = text }
func (v *cliView) SetPathLabel(text string)    { v.pathLabel = text }
func (v *cliView) SetStatus(text string)       { v.status = text }
func (v *cliView) SetLockEnabled(enabled bool) { v.lockEnabled = enabled }
func (v *cliView) SetLockLabel(text string)    { v.lockLabel = text }

// printStatus writes the status line, if any
func (v *cliView) printStatus(w io.Writer) {
	if v.status != "" {
		fmt.Fprintln(w, v.status)
	}
}

// reportedError marks a failure whose status line was already printed, so
// main only sets the exit code.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// reported prints the status to w and marks err as shown
func (v *cliView) reported(w io.Writer, err error) error {
	v.printStatus(w)
	if err == nil || v.status == "" {
		return err
	}
	return &reportedError{err: err}
}

func isReported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}

// controller builds a controller over a fresh cliView
func (c *cli) controller() (*editor.Controller, *cliView) {
	view := &cliView{}
	ctrl := editor.New(c.fs, view,
		editor.WithFormatter(jsonfmt.New(c.cfg.Editor.Indent)),
		editor.WithDefaultDir(c.cfg.Editor.DefaultDir),
		editor.WithFilters(c.cfg.Picker.Filters),
	)
	return ctrl, view
}
