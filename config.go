/*

  Copyright 2012 Dmitry Kolesnikov, All Rights Reserved

  Licensed under the Apache License, Version 2.0 (the "License");
  you may not use this file except in compliance with the License.
  You may obtain a copy of the License at

      http://www.apache.org/licenses/LICENSE-2.0

  Unless required by applicable law or agreed to in writing, software
  distributed under the License is distributed on an "AS IS" BASIS,
  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
  See the License for the specific language governing permissions and
  limitations under the License.

*/

package gdid

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

/*

Config is file based configuration of generator

  scope-prefix: tenant-
  hosts:
    - name: /us/east/cle/gdid01
      distance-km: 10
    - name: /us/west/sea/gdid01
      distance-km: 3500
*/
type Config struct {
	// ScopePrefix is prepended to every scope name
	ScopePrefix string `json:"scope-prefix"`

	// SequencePrefix is prepended to every sequence name
	SequencePrefix string `json:"sequence-prefix"`

	// Hosts of authority, tried in order of ascending distance
	Hosts []HostConfig `json:"hosts"`

	// TestingAuthority routes every allocation to this single host
	TestingAuthority string `json:"testing-authority"`

	// AuthorityURL of the web accessor, if set hosts are not used
	AuthorityURL string `json:"authority-url"`
}

// HostConfig declares authority host
type HostConfig struct {
	Name       string  `json:"name"`
	DistanceKm float64 `json:"distance-km"`
}

// LoadConfig reads configuration from YAML or JSON file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// ParseConfig decodes configuration from YAML or JSON
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return nil, err
	}

	if err := checkPrefix(cfg.ScopePrefix); err != nil {
		return nil, fmt.Errorf("scope-prefix: %w", err)
	}

	if err := checkPrefix(cfg.SequencePrefix); err != nil {
		return nil, fmt.Errorf("sequence-prefix: %w", err)
	}

	for _, h := range cfg.Hosts {
		if _, err := NewAuthorityHost(h.Name, h.DistanceKm); err != nil {
			return nil, err
		}
	}

	return &cfg, nil
}

// AuthorityHosts returns declared hosts in failover order
func (cfg *Config) AuthorityHosts() []AuthorityHost {
	seq := make([]AuthorityHost, 0, len(cfg.Hosts))
	for _, h := range cfg.Hosts {
		seq = append(seq, AuthorityHost{Name: h.Name, DistanceKm: h.DistanceKm})
	}
	return SortByDistance(seq)
}
