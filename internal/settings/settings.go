// Package settings describes the reader's display settings. The text core
// only ever reads a Render value; the host owns changes to it.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Mode selects between Latin letters and sitelen pona.
type Mode string

const (
	ModeLatin  Mode = "latin"
	ModeScript Mode = "script"
)

// snapshot wire names for the render field.
const (
	snapshotLatin  = "latin"
	snapshotScript = "sitelen_pona"
)

// SansSerif is the generic family used for Latin text.
const SansSerif = "sans-serif"

// Render is the per-pass settings snapshot consumed by the renderer and the
// word lookup.
type Render struct {
	Mode       Mode
	UseUCSUR   bool
	ScriptFont string
	ShowHints  bool
}

// Default mirrors the first-run settings of the reader.
func Default() Render {
	return Render{
		Mode:       ModeLatin,
		UseUCSUR:   false,
		ScriptFont: DefaultFont,
		ShowHints:  false,
	}
}

// Script reports whether sitelen pona output is selected.
func (r Render) Script() bool {
	return r.Mode == ModeScript
}

// UCSUR reports whether script output should use UCSUR code points.
func (r Render) UCSUR() bool {
	return r.Script() && r.UseUCSUR
}

// WithMode returns a copy with the given mode.
func (r Render) WithMode(mode Mode) Render {
	r.Mode = mode
	return r
}

// ToggleMode flips between Latin and script output.
func (r Render) ToggleMode() Render {
	if r.Script() {
		return r.WithMode(ModeLatin)
	}
	return r.WithMode(ModeScript)
}

// WithUCSUR returns a copy with the UCSUR flag set. When the current font
// cannot display the chosen encoding the next compatible font is picked.
func (r Render) WithUCSUR(on bool) Render {
	r.UseUCSUR = on
	if !FontSupports(r.ScriptFont, on) {
		r.ScriptFont = NextFont(r.ScriptFont, on)
	}
	return r
}

// WithFont returns a copy using font.
func (r Render) WithFont(font string) Render {
	r.ScriptFont = font
	return r
}

// WithHints returns a copy with hints toggled.
func (r Render) WithHints(on bool) Render {
	r.ShowHints = on
	return r
}

// String renders a compact description used in status lines and logs.
func (r Render) String() string {
	encoding := "ascii"
	if r.UseUCSUR {
		encoding = "ucsur"
	}
	hints := "off"
	if r.ShowHints {
		hints = "on"
	}
	return fmt.Sprintf("%s/%s font=%s hints=%s", r.Mode, encoding, r.ScriptFont, hints)
}

// ParseMode accepts both the internal names and the snapshot names.
func ParseMode(value string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", snapshotLatin:
		return ModeLatin, nil
	case string(ModeScript), snapshotScript, "sitelen-pona":
		return ModeScript, nil
	default:
		return "", fmt.Errorf("settings: unknown render mode %q", value)
	}
}

// Snapshot is the persisted JSON shape of the settings.
type Snapshot struct {
	Render          string `json:"render"`
	UseUCSUR        bool   `json:"useUCSUR"`
	SitelenPonaFont string `json:"sitelenPonaFont"`
	ShowHints       bool   `json:"showHints"`
}

// Snapshot converts r to its wire shape.
func (r Render) Snapshot() Snapshot {
	render := snapshotLatin
	if r.Script() {
		render = snapshotScript
	}
	return Snapshot{
		Render:          render,
		UseUCSUR:        r.UseUCSUR,
		SitelenPonaFont: r.ScriptFont,
		ShowHints:       r.ShowHints,
	}
}

// Settings converts a snapshot into a Render value. Unknown fonts fall back
// to the default font.
func (s Snapshot) Settings() (Render, error) {
	mode, err := ParseMode(s.Render)
	if err != nil {
		return Render{}, err
	}
	font := s.SitelenPonaFont
	if _, ok := LookupFont(font); !ok {
		font = DefaultFont
	}
	return Render{
		Mode:       mode,
		UseUCSUR:   s.UseUCSUR,
		ScriptFont: font,
		ShowHints:  s.ShowHints,
	}, nil
}

// ParseSnapshot decodes a JSON snapshot.
func ParseSnapshot(data []byte) (Render, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Render{}, fmt.Errorf("settings: decode snapshot: %w", err)
	}
	return snap.Settings()
}

// ReadFile loads a JSON snapshot from path.
func ReadFile(path string) (Render, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Render{}, fmt.Errorf("settings: read %s: %w", path, err)
	}
	return ParseSnapshot(data)
}
