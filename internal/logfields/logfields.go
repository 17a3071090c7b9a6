package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyPage       = "page"
	KeyPath       = "path"
	KeyNode       = "node"
	KeyAlias      = "alias"
	KeyOutput     = "output"
	KeyPages      = "pages"
	KeyFile       = "file"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Page(id string) slog.Attr        { return slog.String(KeyPage, id) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Node(name string) slog.Attr      { return slog.String(KeyNode, name) }
func Alias(a string) slog.Attr        { return slog.String(KeyAlias, a) }
func Output(dir string) slog.Attr     { return slog.String(KeyOutput, dir) }
func Pages(n int) slog.Attr           { return slog.Int(KeyPages, n) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
