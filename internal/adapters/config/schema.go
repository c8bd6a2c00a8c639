package config

// Mupfile represents the structure of the mup.yaml manifest file.
type Mupfile struct {
	Version string           `yaml:"version"`
	Server  ServerDTO        `yaml:"server"`
	Plugins []RequirementDTO `yaml:"plugins"`
}

// ServerDTO is the declared server profile.
type ServerDTO struct {
	Loader    string `yaml:"loader"`
	Minecraft string `yaml:"minecraft_version"`
}

// RequirementDTO is one declared plugin/mod requirement.
type RequirementDTO struct {
	Repository string `yaml:"repository"`
	Project    string `yaml:"project"`
	Version    string `yaml:"version,omitempty"`
}
