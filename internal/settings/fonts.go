package settings

// FontOption describes one selectable sitelen pona font.
type FontOption struct {
	Value             string
	Label             string
	UCSURCompatible   bool
	ASCIICompatible   bool
	EnglishCompatible bool
	File              string
	Creator           string
	Link              string
}

// DefaultFont is used on first run and when a stored font is unknown.
const DefaultFont = "nasin-nanpa"

// Fonts lists the available fonts in display order.
var Fonts = []FontOption{
	{
		Value:           "nasin-nanpa",
		Label:           "nasin nanpa",
		UCSURCompatible: true,
		ASCIICompatible: true,
		File:            "nasin-nanpa-4.0.1.otf",
		Creator:         "ETBCOR",
		Link:            "https://github.com/ETBCOR/nasin-nanpa",
	},
	{
		Value:           "Fairfax Pona HD",
		Label:           "Fairfax Pona HD",
		UCSURCompatible: true,
		ASCIICompatible: true,
		File:            "FairfaxPonaHD.ttf",
		Creator:         "Kreative Korporation",
		Link:            "https://www.kreativekorp.com/software/fonts/fairfaxhd",
	},
	{
		Value:           "linja pona",
		Label:           "linja pona",
		ASCIICompatible: true,
		File:            "linja-pona-4.9.otf",
		Creator:         "jan Same",
		Link:            "https://github.com/janSame/linja-pona",
	},
	{
		Value:           "sitelen-pona",
		Label:           "sitelen pona pona",
		ASCIICompatible: true,
		File:            "sitelen-pona-pona.otf",
		Creator:         "Jack Humbert",
		Link:            "https://jackhumbert.github.io/sitelen-pona-pona/",
	},
	{
		Value:           "nasin-sitelen-pu",
		Label:           "nasin sitelen pu mono",
		UCSURCompatible: true,
		ASCIICompatible: true,
		File:            "NasinSitelenPuMono.otf",
		Creator:         "Lipu Linku",
		Link:            "https://github.com/lipu-linku/nasin-sitelen",
	},
	{
		Value:           "sitelen seli kiwen asuki",
		Label:           "sitelen seli kiwen asuki",
		UCSURCompatible: true,
		ASCIICompatible: true,
		File:            "sitelenselikiwenasuki.ttf",
		Creator:         "Kreative Korporation",
		Link:            "https://github.com/kreativekorp/sitelen-seli-kiwen",
	},
	{
		Value:             "sans_serif",
		Label:             "Sans Serif",
		EnglishCompatible: true,
	},
}

// LookupFont finds a font option by value.
func LookupFont(value string) (FontOption, bool) {
	for _, opt := range Fonts {
		if opt.Value == value {
			return opt, true
		}
	}
	return FontOption{}, false
}

// FontFamily resolves a font value to the family name used for rendering.
// Unknown values fall back to sans-serif.
func FontFamily(value string) string {
	if opt, ok := LookupFont(value); ok && !opt.EnglishCompatible {
		return opt.Value
	}
	return SansSerif
}

// FontSupports reports whether a font can show the given encoding.
func FontSupports(value string, ucsur bool) bool {
	opt, ok := LookupFont(value)
	if !ok {
		return false
	}
	if ucsur {
		return opt.UCSURCompatible
	}
	return opt.ASCIICompatible
}

// NextFont returns the script font after current that supports the encoding,
// wrapping around. It returns DefaultFont when nothing else qualifies.
func NextFont(current string, ucsur bool) string {
	start := -1
	for i, opt := range Fonts {
		if opt.Value == current {
			start = i
			break
		}
	}
	for step := 1; step <= len(Fonts); step++ {
		opt := Fonts[(start+step+len(Fonts))%len(Fonts)]
		if FontSupports(opt.Value, ucsur) {
			return opt.Value
		}
	}
	return DefaultFont
}
