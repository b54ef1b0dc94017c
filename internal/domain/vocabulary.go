package domain

// CommandUsage describes one command of the analyzer vocabulary.
type CommandUsage struct {
	Command    string      `json:"command" yaml:"command"`
	Usage      string      `json:"usage" yaml:"usage"`
	Summary    string      `json:"summary" yaml:"summary"`
	TargetPath string      `json:"url" yaml:"url"`
	Flags      []FlagUsage `json:"flags,omitempty" yaml:"flags,omitempty"`
}

// FlagUsage describes one flag of a command.
type FlagUsage struct {
	Name    string   `json:"name" yaml:"name"`
	Aliases []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Arity   string   `json:"arity" yaml:"arity"`
	Usage   string   `json:"usage" yaml:"usage"`
}
