package jsruntime

import (
	_ "embed"
	"fmt"

	"github.com/grafana/sobek"
	"github.com/rs/zerolog"
)

//go:embed assets/console.js
var consoleShim string

//go:embed assets/dom.js
var domShim string

//go:embed assets/lit.js
var litStub string

const (
	hostLogBinding      = "__cardverLog"
	definedElementsName = "__cardverDefined"
	customCardsName     = "customCards"
)

// installConsole bridges console.* calls from artifact code to the logger.
func installConsole(rt *sobek.Runtime, log *zerolog.Logger) error {
	err := rt.Set(hostLogBinding, func(call sobek.FunctionCall) sobek.Value {
		msg := call.Argument(1).String()
		var ev *zerolog.Event
		switch call.Argument(0).String() {
		case "debug":
			ev = log.Debug()
		case "warn":
			ev = log.Warn()
		case "error":
			ev = log.Error()
		default:
			ev = log.Info()
		}
		ev.Str("source", "console").Msg(msg)
		return sobek.Undefined()
	})
	if err != nil {
		return fmt.Errorf("bind console: %w", err)
	}
	if _, err := rt.RunScript("cardver:console.js", consoleShim); err != nil {
		return fmt.Errorf("install console: %w", err)
	}
	return nil
}

// installDOM emulates the browser globals cards touch at load time: window,
// document, HTMLElement, customElements and events.
func installDOM(rt *sobek.Runtime) error {
	if _, err := rt.RunScript("cardver:dom.js", domShim); err != nil {
		return fmt.Errorf("install DOM environment: %w", err)
	}
	return nil
}
