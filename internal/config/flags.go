package config

import "flag"

var (
	flagConfig = flag.String("config", "", "Path to config file")
	flagDebug  = flag.Bool("debug", false, "Enable debug logging")
	flagSize   = flag.Float64("size", 0, "Terrain extent along each axis")
	flagChunks = flag.Int("chunks", 0, "Chunks along each axis")
	flagCells  = flag.Int("cells", 0, "Cells along each axis of a chunk")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag arguments left after ParseFlags.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagSize > 0 {
		cfg.Terrain.Size = float32(*flagSize)
	}
	if *flagChunks > 0 {
		cfg.Terrain.ChunkResolution = *flagChunks
	}
	if *flagCells > 0 {
		cfg.Terrain.CellResolution = *flagCells
	}
}
