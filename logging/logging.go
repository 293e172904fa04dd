// Package logging configures the diagnostic logger. The protocol owns stdout,
// so diagnostics always go to stderr or another writer supplied by the caller.
package logging

import (
	"io"

	gologging "github.com/op/go-logging"
)

var Log = gologging.MustGetLogger("hackman")

var format = gologging.MustStringFormatter(
	`%{time:15:04:05.000} %{shortfunc} ▶ %{level:.4s} %{message}`,
)

// InitLogging routes log records to w, dropping anything below level.
func InitLogging(w io.Writer, level string) error {
	lvl, err := gologging.LogLevel(level)
	if err != nil {
		return err
	}
	backend := gologging.NewLogBackend(w, "", 0)
	leveled := gologging.AddModuleLevel(gologging.NewBackendFormatter(backend, format))
	leveled.SetLevel(lvl, "")
	gologging.SetBackend(leveled)
	return nil
}
