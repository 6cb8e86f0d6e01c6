package scriptenv

import (
	"log/slog"

	"github.com/giantswarm/scriptenv/internal/core"
)

// SetLogger replaces the package-level logger so applications can route
// scriptenv logging through their own handler. Passing nil resets to the
// default: slog.Default() with a component attribute, re-derived on the
// next use. Safe to call concurrently with running runners; call it before
// starting them (e.g. in TestMain) for a strict happens-before guarantee.
func SetLogger(l *slog.Logger) {
	core.SetLogger(l)
}
