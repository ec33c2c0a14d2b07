package config

// Sobfile represents the structure of the sob.yaml configuration file.
type Sobfile struct {
	Version   string                `yaml:"version"`
	Root      string                `yaml:"root"`
	Default   string                `yaml:"default"`
	Toolchain ToolchainDTO          `yaml:"toolchain"`
	Targets   map[string]*TargetDTO `yaml:"targets"`
}

// ToolchainDTO represents the toolchain section of the configuration.
type ToolchainDTO struct {
	Compiler     string   `yaml:"compiler"`
	SourceSuffix string   `yaml:"sourceSuffix"`
	ObjectSuffix string   `yaml:"objectSuffix"`
	BuildPrefix  string   `yaml:"buildPrefix"`
	CxxFlags     []string `yaml:"cxxflags"`
	LdFlags      []string `yaml:"ldflags"`
}

// TargetDTO represents a target definition in the configuration.
type TargetDTO struct {
	Source    string   `yaml:"source"`
	Output    string   `yaml:"output"`
	DependsOn []string `yaml:"dependsOn"`
}
