package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/csheth/akesi/internal/settings"
)

// DefaultPath is read when no path is given and the file exists.
const DefaultPath = "./akesi.yaml"

// Config is the root application configuration.
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Reader  ReaderConfig  `yaml:"reader"`
	Display DisplayConfig `yaml:"display"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
	File   string `yaml:"file"   env:"LOG_FILE"`
}

// ReaderConfig holds the text pipeline settings. Raw story content goes
// through the segmenter unless Pretokenize is set, which runs it through the
// markdown tokenizer at load time.
type ReaderConfig struct {
	StoriesPath string        `yaml:"stories"      env:"AKESI_STORIES"`
	AutoBracket bool          `yaml:"auto_bracket" env:"AKESI_AUTO_BRACKET" env-default:"false"`
	MemoSize    int           `yaml:"memo_size"    env:"AKESI_MEMO_SIZE"    env-default:"512"`
	Pretokenize bool          `yaml:"pretokenize"  env:"AKESI_PRETOKENIZE"`
	NoCache     bool          `yaml:"no_cache"     env:"AKESI_NO_CACHE"`
	CacheDir    string        `yaml:"cache_dir"    env:"AKESI_CACHE_DIR"`
	CacheTTL    time.Duration `yaml:"cache_ttl"    env:"AKESI_CACHE_TTL"    env-default:"168h"`
}

// DisplayConfig is the initial settings snapshot.
type DisplayConfig struct {
	Render    string `yaml:"render"     env:"AKESI_RENDER" env-default:"latin"`
	UseUCSUR  bool   `yaml:"use_ucsur"  env:"AKESI_UCSUR"  env-default:"false"`
	Font      string `yaml:"font"       env:"AKESI_FONT"   env-default:"nasin-nanpa"`
	ShowHints bool   `yaml:"show_hints" env:"AKESI_HINTS"  env-default:"false"`
}

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults.
// An explicit path must exist. Without one, DefaultPath is used when present
// and ENV + defaults otherwise.
func Load(path string) (*Config, error) {
	var cfg Config

	explicitPath := path != ""
	if !explicitPath {
		path = DefaultPath
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

// Validate checks values cleanenv cannot. Load calls it; callers that
// override fields afterwards should call it again.
func (c *Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Log.Format)) {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json (got %q)", c.Log.Format)
	}
	if c.Reader.MemoSize < 0 {
		return fmt.Errorf("reader.memo_size must be >= 0 (got %d)", c.Reader.MemoSize)
	}
	if c.Reader.CacheTTL < 0 {
		return fmt.Errorf("reader.cache_ttl must be >= 0 (got %s)", c.Reader.CacheTTL)
	}
	if _, err := c.Display.Settings(); err != nil {
		return fmt.Errorf("display: %w", err)
	}
	return nil
}

// Settings converts the display section into render settings.
func (d DisplayConfig) Settings() (settings.Render, error) {
	mode, err := settings.ParseMode(d.Render)
	if err != nil {
		return settings.Render{}, err
	}
	font := d.Font
	if font == "" {
		font = settings.DefaultFont
	}
	if _, ok := settings.LookupFont(font); !ok {
		return settings.Render{}, fmt.Errorf("unknown font %q", font)
	}
	if !settings.FontSupports(font, d.UseUCSUR) {
		return settings.Render{}, fmt.Errorf("font %q cannot display %s text", font, encodingName(d.UseUCSUR))
	}
	return settings.Render{
		Mode:       mode,
		UseUCSUR:   d.UseUCSUR,
		ScriptFont: font,
		ShowHints:  d.ShowHints,
	}, nil
}

func encodingName(ucsur bool) string {
	if ucsur {
		return "UCSUR"
	}
	return "ASCII"
}
