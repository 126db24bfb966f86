package config

// Manifest represents the structure of the gates.yaml manifest file.
type Manifest struct {
	Version string                `yaml:"version"`
	Env     map[string]string     `yaml:"env"`
	On      map[string]TriggerDTO `yaml:"on"`
	Cache   CacheDTO              `yaml:"cache"`
	Gates   map[string]GateDTO    `yaml:"gates"`
}

// TriggerDTO represents a trigger filter in the manifest. The event type is
// the key it is declared under.
type TriggerDTO struct {
	Branches []string `yaml:"branches"`
}

// CacheDTO represents the dependency cache configuration.
type CacheDTO struct {
	Key   []string `yaml:"key"`
	Paths []string `yaml:"paths"`
}

// GateDTO represents a gate definition in the manifest.
type GateDTO struct {
	On    map[string]TriggerDTO `yaml:"on"`
	Cache bool                  `yaml:"cache"`
	Steps []StepDTO             `yaml:"steps"`
}

// StepDTO represents a step definition in the manifest.
//
// Run is split on whitespace into an argv; no shell is involved, so shell
// quoting and expansion are not available.
type StepDTO struct {
	Name string            `yaml:"name"`
	Run  string            `yaml:"run"`
	Env  map[string]string `yaml:"env"`
}
