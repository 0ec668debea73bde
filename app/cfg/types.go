package cfg

type Cfg struct {
	// Application configuration
	Port         string
	MaxFiles     int
	APIAccessKey string

	// Application metadata
	Timezone string
	Debug    bool
	Version  string
}

// fileCfg is the optional YAML config file shape. File values fill in only
// settings the flags and environment left at their defaults.
type fileCfg struct {
	Port         string `yaml:"port"`
	MaxFiles     int    `yaml:"max_files"`
	APIAccessKey string `yaml:"api_key"`
	Timezone     string `yaml:"timezone"`
	Debug        bool   `yaml:"debug"`
}
