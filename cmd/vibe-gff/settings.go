package main

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/inodb/vibe-gff/internal/analysis"
)

const configName = ".vibe-gff"

func setDefaults() {
	def := analysis.DefaultConfig("")
	viper.SetDefault("analysis.extract", strings.Join(def.ExtractKeys, ","))
	viper.SetDefault("analysis.strip_prefixes", strings.Join(def.StripPrefixes, ","))
	viper.SetDefault("analysis.gene_types", strings.Join(def.GeneTypes, ","))
	viper.SetDefault("analysis.transcript_types", strings.Join(def.TranscriptTypes, ","))
	viper.SetDefault("analysis.biotype", def.Biotype)
	viper.SetDefault("ingest.batch_size", def.BatchSize)
	viper.SetDefault("ingest.workers", runtime.NumCPU())
	viper.SetDefault("output.format", "")
	viper.SetDefault("log.level", "info")
}

// initConfig reads the config file and VIBE_GFF_* environment variables.
// A missing default config file is not an error.
func initConfig(cfgFile string) error {
	setDefaults()

	viper.SetEnvPrefix("VIBE_GFF")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(configName)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && cfgFile == "" {
			return nil
		}
		return errors.WithHint(errors.Wrap(err, "read config"),
			"check the YAML syntax of the config file or pass --config")
	}
	return nil
}

// defaultConfigPath is where config set writes when no file was read.
func defaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "cannot determine home directory")
	}
	return filepath.Join(home, configName+".yaml"), nil
}

// stringList reads a list setting given either as a YAML list or as a
// comma-separated string.
func stringList(key string) []string {
	var items []string
	switch v := viper.Get(key).(type) {
	case nil:
		return nil
	case []string:
		items = v
	case []any:
		for _, x := range v {
			if s, ok := x.(string); ok {
				items = append(items, s)
			}
		}
	default:
		items = strings.Split(viper.GetString(key), ",")
	}

	var out []string
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// analysisConfig builds the analysis settings from the configuration.
func analysisConfig(name string) analysis.Config {
	return analysis.Config{
		Analysis:        name,
		ExtractKeys:     stringList("analysis.extract"),
		StripPrefixes:   stringList("analysis.strip_prefixes"),
		GeneTypes:       stringList("analysis.gene_types"),
		TranscriptTypes: stringList("analysis.transcript_types"),
		Biotype:         viper.GetString("analysis.biotype"),
		BatchSize:       viper.GetInt("ingest.batch_size"),
		Workers:         viper.GetInt("ingest.workers"),
	}
}
