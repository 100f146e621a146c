// Copyright 2024 The vvSQL Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads vvSQL's ambient settings — default connection
// URI, HTTP bind address, log level, chart width/autosize overrides —
// from the layered sources spec.md's host surfaces need: built-in
// defaults, an optional YAML file, environment variables, then command
// flags, each overriding the last.
package config

import (
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the resolved, flattened settings set every host surface
// (HTTP server, CLI) reads from.
type Config struct {
	ConnURI     string   `mapstructure:"conn_uri"`
	ListenAddr  string   `mapstructure:"listen_addr"`
	LogLevel    string   `mapstructure:"log_level"`
	ChartWidth  int      `mapstructure:"chart_width"`
	Autosize    string   `mapstructure:"autosize"`
	PreloadDirs []string `mapstructure:"preload"`
}

const envPrefix = "VVSQL"

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"conn_uri":    "duckdb://memory",
		"listen_addr": ":8080",
		"log_level":   "info",
		"chart_width": 600,
		"autosize":    "fit",
	}
}

// Load resolves a Config from, in increasing precedence: built-in
// defaults, the YAML file at configPath (skipped if configPath is
// empty or unreadable), environment variables prefixed VVSQL_, and
// flags already parsed onto fs (nil is fine if a caller has none).
func Load(configPath string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	for k, val := range defaults() {
		v.SetDefault(k, val)
	}

	if configPath != "" {
		if _, statErr := os.Stat(configPath); statErr == nil {
			v.SetConfigFile(configPath)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, err
			}
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if fs != nil {
		// Flags are named with dashes (conn-uri) while config keys use
		// underscores (conn_uri), so each flag is bound under its config key.
		var bindErr error
		fs.VisitAll(func(f *pflag.Flag) {
			if err := v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f); err != nil && bindErr == nil {
				bindErr = err
			}
		})
		if bindErr != nil {
			return nil, bindErr
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// BindFlags registers the flags Load's flag-binding step expects, so a
// cobra command can add them to its own FlagSet before calling Load.
func BindFlags(fs *pflag.FlagSet) {
	fs.String("conn-uri", "", "default data backend connection URI")
	fs.String("listen-addr", "", "HTTP server bind address")
	fs.String("log-level", "", "log level (debug, info, warn, error)")
	fs.Int("chart-width", 0, "default chart width in pixels")
	fs.String("autosize", "", "default Vega-Lite autosize mode")
}
