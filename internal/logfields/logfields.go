package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeySlug       = "slug"
	KeyURL        = "url"
	KeyPath       = "path"
	KeyAsset      = "asset"
	KeyTag        = "tag"
	KeyMonth      = "month"
	KeyPages      = "pages"
	KeyCount      = "count"
	KeyLanguage   = "language"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Slug(s string) slog.Attr         { return slog.String(KeySlug, s) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Asset(a string) slog.Attr        { return slog.String(KeyAsset, a) }
func Tag(t string) slog.Attr          { return slog.String(KeyTag, t) }
func Month(m string) slog.Attr        { return slog.String(KeyMonth, m) }
func Pages(n int) slog.Attr           { return slog.Int(KeyPages, n) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Language(l string) slog.Attr     { return slog.String(KeyLanguage, l) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
