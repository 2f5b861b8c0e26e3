package config

import "github.com/andeslegal/consulta/internal/models"

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Index.Provider == "" {
		cfg.Index.Provider = "bleve"
	}
	if cfg.Index.Path == "" {
		cfg.Index.Path = "/usr/local/var/consulta/data/indices/corpus.bleve"
	}
	if cfg.Index.TimeoutSeconds == 0 {
		cfg.Index.TimeoutSeconds = 10
	}
	if cfg.Generation.Endpoint == "" {
		cfg.Generation.Endpoint = "http://localhost:11434"
	}
	if cfg.Generation.Model == "" {
		cfg.Generation.Model = "legalgpt-pymes"
	}
	if cfg.Generation.TimeoutSeconds == 0 {
		cfg.Generation.TimeoutSeconds = 60
	}
	if cfg.Engine.MaxQuestionLength == 0 {
		cfg.Engine.MaxQuestionLength = models.DefaultMaxQuestionLength
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "/usr/local/var/consulta/data/db/documents.db"
	}
	if cfg.Corpus.Path == "" {
		cfg.Corpus.Path = "/usr/local/var/consulta/data/corpus"
	}
	cfg.Retrieval.ApplyDefaults()
	cfg.Confidence.ApplyDefaults()
}
