package common

// Config contains all the configuration data for the app
type Config struct {
	AppName       string `yaml:"AppName"`
	Version       string `yaml:"Version"`
	DebugOutput   bool   `yaml:"DebugOutput"`
	VerboseOutput bool   `yaml:"VerboseOutput"`

	// AssetsDir holds one folder per template bundle
	AssetsDir    string `yaml:"AssetsDir"`
	TemplatesDir string `yaml:"TemplatesDir"`
	// OutputDir is where images are written. Empty means the bundle folder.
	OutputDir string `yaml:"OutputDir"`

	Bundle BundleFiles `yaml:"Bundle"`

	OutputSuffix string `yaml:"OutputSuffix"`
	WebPreview   bool   `yaml:"WebPreview"`
	JpgQuality   int    `yaml:"JpgQuality"`
	// Workers caps the rows rendered at once. Zero means one per CPU.
	Workers int `yaml:"Workers"`

	LinePaddingPct float64 `yaml:"LinePaddingPct"`
	// Policies overrides the fitting policy per field (Number, FirstName,
	// LastName, Sport)
	Policies map[string]PolicyOverride `yaml:"Policies"`
}

// BundleFiles names the files inside a template bundle folder
type BundleFiles struct {
	Blank      string `yaml:"Blank"`
	BlankJpg   string `yaml:"BlankJpg"`
	Coords     string `yaml:"Coords"`
	TextFont   string `yaml:"TextFont"`
	NumberFont string `yaml:"NumberFont"`
}

// PolicyOverride tunes a built-in fitting policy
type PolicyOverride struct {
	MaxStretch          float64 `yaml:"MaxStretch"`
	DistributeShortfall *bool   `yaml:"DistributeShortfall"`
}

// DefaultConfig returns the values used when config.yaml leaves them out
func DefaultConfig() *Config {
	return &Config{
		AppName:      "NIL Generator",
		AssetsDir:    ".",
		TemplatesDir: "resources/www/templates",
		Bundle: BundleFiles{
			Blank:      "blank.png",
			BlankJpg:   "blank.jpg",
			Coords:     "coords.json",
			TextFont:   "text.otf",
			NumberFont: "number.ttf",
		},
		OutputSuffix:   "-1",
		JpgQuality:     90,
		LinePaddingPct: 0.08,
	}
}

// LoadConfig reads the yaml config over the defaults
func LoadConfig(filename string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadYaml(filename, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
