/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

type ApiConfig struct {
	IP   string `json:"ip,omitempty"`
	Port int    `json:"port,omitempty"`
}

type Config struct {
	LogLevel string `json:"logLevel,omitempty"`
	// Encoding is the CSV output encoding, either utf8 or gbk
	Encoding    string `json:"encoding,omitempty"`
	CatalogPath string `json:"catalogPath,omitempty"`
	*ApiConfig  `json:"api,omitempty"`
	filepath    string
}

func (c *Config) Persist(overwrite bool) error {
	if _, err := os.Stat(c.filepath); err == nil && !overwrite {
		return ErrConfigFileExists{Path: c.filepath}
	}

	data, err := yaml.Marshal(&c)
	if err != nil {
		return err
	}

	dir := filepath.Dir(c.filepath)
	err = os.MkdirAll(dir, 0755)
	if err != nil {
		return err
	}

	err = os.WriteFile(c.filepath, data, 0644)
	if err != nil {
		return err
	}

	return nil
}

// Load reads the config file if it exists, leaving defaults in place otherwise.
func (c *Config) Load() error {
	data, err := os.ReadFile(c.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return yaml.Unmarshal(data, c)
}

func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return filepath.Join(home, ConfigDir, ConfigFile)
}

func DefaultCatalogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return filepath.Join(home, ConfigDir, CatalogFile)
}

func NewDefaultConfig() *Config {
	return &Config{
		LogLevel:    DefaultLogLevel,
		Encoding:    DefaultEncoding,
		CatalogPath: DefaultCatalogPath(),
		ApiConfig: &ApiConfig{
			IP:   DefaultIP,
			Port: DefaultApiPort,
		},
		filepath: DefaultConfigPath(),
	}
}
