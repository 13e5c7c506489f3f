package ui

import (
	"fmt"
	"io"
)

func OK(w io.Writer, msg string)   { fmt.Fprintln(w, current.Success.Render(current.SymDone+" "+msg)) }
func Fail(w io.Writer, msg string) { fmt.Fprintln(w, current.Error.Render("✖ "+msg)) }
func Warn(w io.Writer, msg string) { fmt.Fprintln(w, current.Pending.Render("! "+msg)) }
func Note(w io.Writer, msg string) { fmt.Fprintln(w, current.Muted.Render(msg)) }
