// Copyright 2021 Matrix Origin
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matrixorigin/mofilter/pkg/common/moerr"
	"github.com/matrixorigin/mofilter/pkg/logutil"
)

const (
	defaultBlockSize = 8192
	defaultWorkers   = 4
	defaultLogLevel  = "info"
	defaultLogFormat = "console"

	OutputRows = "rows"
	OutputMask = "mask"
)

// Config is the mo-filter configuration file.
type Config struct {
	Log           logutil.LogConfig   `toml:"log"`
	Filter        FilterConfig        `toml:"filter"`
	Observability ObservabilityConfig `toml:"observability"`
}

// FilterConfig of the block filter
type FilterConfig struct {
	//rows per block read from the input. default: 8192
	BlockSize int `toml:"block-size"`

	//number of blocks evaluated concurrently. default: 4
	Workers int `toml:"workers"`

	//rows prints the surviving rows, mask prints each block's 0/1 column. default: rows
	Output string `toml:"output"`
}

type ObservabilityConfig struct {
	//serve /metrics on this address when not empty
	StatusAddress string `toml:"status-address"`
}

func NewConfig() *Config {
	cfg := &Config{}
	cfg.SetDefaultValues()
	return cfg
}

func (cfg *Config) SetDefaultValues() {
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = defaultLogFormat
	}
	if cfg.Filter.BlockSize == 0 {
		cfg.Filter.BlockSize = defaultBlockSize
	}
	if cfg.Filter.Workers == 0 {
		cfg.Filter.Workers = defaultWorkers
	}
	if cfg.Filter.Output == "" {
		cfg.Filter.Output = OutputRows
	}
}

func (cfg *Config) Validate(ctx context.Context) error {
	if cfg.Filter.BlockSize <= 0 {
		return moerr.NewBadConfig(ctx, "filter.block-size must be positive, got %d", cfg.Filter.BlockSize)
	}
	if cfg.Filter.Workers <= 0 {
		return moerr.NewBadConfig(ctx, "filter.workers must be positive, got %d", cfg.Filter.Workers)
	}
	switch cfg.Filter.Output {
	case OutputRows, OutputMask:
	default:
		return moerr.NewBadConfig(ctx, "filter.output must be %s or %s, got '%s'", OutputRows, OutputMask, cfg.Filter.Output)
	}
	switch cfg.Log.Format {
	case "console", "json":
	default:
		return moerr.NewBadConfig(ctx, "log.format must be console or json, got '%s'", cfg.Log.Format)
	}
	return nil
}

/*
PathExists returns:
path exists or not,
path is a file or not,
error.
*/
var PathExists = func(path string) (bool, bool, error) {
	fi, err := os.Stat(path)
	if err == nil {
		return true, !fi.IsDir(), nil
	}
	if os.IsNotExist(err) {
		return false, false, err
	}

	return false, false, err
}

// LoadConfig decodes the toml file at path over the defaults. An empty path
// yields the defaults.
func LoadConfig(ctx context.Context, path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		exists, isFile, err := PathExists(path)
		if !exists {
			if err != nil && !os.IsNotExist(err) {
				return nil, moerr.ConvertGoError(ctx, err)
			}
			return nil, moerr.NewFileNotFound(ctx, path)
		}
		if !isFile {
			return nil, moerr.NewBadConfig(ctx, "config %s is a directory", path)
		}
		meta, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return nil, moerr.NewBadConfig(ctx, "%v", err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, key := range undecoded {
				keys[i] = key.String()
			}
			return nil, moerr.NewBadConfig(ctx, "unknown keys %s in %s", strings.Join(keys, ", "), path)
		}
	}
	cfg.SetDefaultValues()
	if err := cfg.Validate(ctx); err != nil {
		return nil, err
	}
	return cfg, nil
}
