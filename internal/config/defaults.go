package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Storage.Bucket == "" {
		cfg.Storage.Bucket = "documents"
	}
	if cfg.Catalog.Table == "" {
		cfg.Catalog.Table = "documents"
	}
	if cfg.Download.ChunkSize == 0 {
		cfg.Download.ChunkSize = 8192
	}
}
