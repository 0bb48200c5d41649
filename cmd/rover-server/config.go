package main

import (
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/marsyard/marsyard/common/utils"
	"github.com/marsyard/marsyard/simulation"
)

type TerrainConfig struct {
	HeightmapPath string  `yaml:"heightmap_path"`
	Width         float64 `yaml:"width"`
	Depth         float64 `yaml:"depth"`
	MaxHeight     float64 `yaml:"max_height"`
	FlatHeight    float64 `yaml:"flat_height"`
}

type RocksConfig struct {
	Count  int     `yaml:"count"`
	Margin float64 `yaml:"margin"`
	Seed   int64   `yaml:"seed"`
}

type RoversConfig struct {
	Count        int    `yaml:"count"`
	ProgressFile string `yaml:"progress_file"`
}

type ServerConfig struct {
	ListenAddr      string `yaml:"listen_addr"`
	HealthCheckPort string `yaml:"healthcheck_port"`
	WebClientPath   string `yaml:"webclient_path"`
	Tps             int    `yaml:"tps"`
	Seed            int64  `yaml:"seed"`

	Terrain TerrainConfig     `yaml:"terrain"`
	Rocks   RocksConfig       `yaml:"rocks"`
	Rovers  RoversConfig      `yaml:"rovers"`
	Tuning  simulation.Tuning `yaml:"tuning"`
}

func LoadServerConfig(filename string) ServerConfig {
	data, err := os.ReadFile(filename)
	utils.Check(err, "Could not read config file "+filename)

	// tuning defaults are filled in first so a config file only needs to
	// name the constants it wants to override
	config := ServerConfig{
		ListenAddr:      ":8080",
		HealthCheckPort: "8099",
		WebClientPath:   "./webclient",
		Tps:             20,
		Tuning:          simulation.DefaultTuning(),
	}
	config.Terrain.Width = 1000
	config.Terrain.Depth = 1000
	config.Terrain.MaxHeight = 60
	config.Terrain.FlatHeight = 5
	config.Rocks.Count = 60
	config.Rocks.Margin = 5
	config.Rovers.Count = 3

	err = yaml.Unmarshal(data, &config)
	utils.Check(err, "Could not parse config file "+filename)

	utils.Assert(config.Tps > 0, "tps must be positive")
	utils.Assert(config.Terrain.Width > 0, "terrain width must be positive")
	utils.Assert(config.Terrain.Depth > 0, "terrain depth must be positive")

	return config
}
