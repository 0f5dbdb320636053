package ui

// These accessors read the active theme, so output follows InitTheme and
// SetTheme without callers threading a Theme around.

func ColorReset() string     { return GetCurrentTheme().Reset }
func ColorBold() string      { return GetCurrentTheme().Bold }
func ColorUnderline() string { return GetCurrentTheme().Underline }
func ColorRed() string       { return GetCurrentTheme().Error }
func ColorGreen() string     { return GetCurrentTheme().Success }
func ColorYellow() string    { return GetCurrentTheme().Warning }
func ColorBlue() string      { return GetCurrentTheme().Primary }
func ColorMagenta() string   { return GetCurrentTheme().Info }
func ColorCyan() string      { return GetCurrentTheme().Primary }
func ColorDim() string       { return GetCurrentTheme().Secondary }

// ColorProvider exposes the active theme through the small color interface
// used by the error handler.
type ColorProvider struct{}

func (ColorProvider) Yellow() string { return ColorYellow() }
func (ColorProvider) Red() string    { return ColorRed() }
func (ColorProvider) Reset() string  { return ColorReset() }
