// Copyright 2025 Infobot Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config provides the application's configuration loading.
// This file implements a hierarchical loader: process environment variables
// are first topped up from a .env file, then a base TOML file is decoded and
// an environment-specific TOML file (e.g. .env.local.toml, .env.test.toml)
// is decoded over it, overwriting only the values it sets.
//
// Functions:
//   - fileExists: A simple helper to check if a file exists.
//   - LoadConfig: Decodes the base and environment-specific TOML files into
//     a configuration struct.
//   - Load: Convenience wrapper combining NewConfig and LoadConfig.
package config

import (
	"errors"
	"log"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Configuration loading constants: file naming and the environment variables
// that steer which files are read.
const (
	ConfigFileBaseName  = ".env"                      // The base name for configuration files (e.g., ".env.toml").
	ConfigFileExtension = ".toml"                     // The file extension for configuration files.
	ConfigSeparator     = "."                         // The separator used in config file names (e.g., ".env.local.toml").
	EnvConfigFilePrefix = "SCENE_QUERY_CONFIG_PREFIX" // The environment variable for specifying the config directory.
	EnvConfigRuntime    = "SCENE_QUERY_RUNTIME"       // The environment variable for specifying the runtime context (e.g., "local", "test", "prod").
)

// fileExists checks if a file or directory exists at the given path.
func fileExists(in string) bool {
	_, err := os.Stat(in)
	return !errors.Is(err, os.ErrNotExist)
}

// LoadConfig provides a hierarchical configuration loading mechanism. It
// first loads a base configuration file and then overwrites its values with
// an environment-specific configuration file. The paths and environment are
// determined by environment variables.
//
// A .env file in the working directory, when present, is loaded into the
// process environment first so that the API key and the config-steering
// variables can live beside the service instead of in the shell profile.
//
// Inputs:
//   - baseConfig: a pointer to the target configuration struct that will be
//     populated from the TOML files.
func LoadConfig(baseConfig interface{}) {
	// Missing .env is the normal case in production; values come from the
	// real environment there.
	_ = godotenv.Load()

	configurationFilePrefix := os.Getenv(EnvConfigFilePrefix)
	if len(configurationFilePrefix) > 0 && !strings.HasSuffix(configurationFilePrefix, string(os.PathSeparator)) {
		configurationFilePrefix = configurationFilePrefix + string(os.PathSeparator)
	}

	runtimeEnvironment := os.Getenv(EnvConfigRuntime)
	if runtimeEnvironment == "" {
		runtimeEnvironment = "local"
	}

	baseConfigFileName := configurationFilePrefix + ConfigFileBaseName + ConfigFileExtension
	envConfigFileName := configurationFilePrefix + ConfigFileBaseName + ConfigSeparator + runtimeEnvironment + ConfigFileExtension

	if fileExists(baseConfigFileName) {
		if _, err := toml.DecodeFile(baseConfigFileName, baseConfig); err != nil {
			log.Fatalf("failed to decode base configuration file %s with error: %s", baseConfigFileName, err)
		}
	}

	// Values in the environment-specific file overwrite the base config.
	if fileExists(envConfigFileName) {
		if _, err := toml.DecodeFile(envConfigFileName, baseConfig); err != nil {
			log.Fatalf("failed to decode environment configuration file: %s with error: %s", envConfigFileName, err)
		}
	}
}

// Load builds a configuration from defaults plus whatever TOML files the
// environment points at.
func Load() *Config {
	cfg := NewConfig()
	LoadConfig(cfg)
	return cfg
}
