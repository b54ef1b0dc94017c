package domain

// Container summarizes a container as reported by the engine.
type Container struct {
	ID     string            `json:"id" yaml:"id"`
	Image  string            `json:"image" yaml:"image"`
	Name   string            `json:"name" yaml:"name"`
	Status string            `json:"status" yaml:"status"`
	Ports  []int             `json:"ports,omitempty" yaml:"ports,omitempty"`
	Labels map[string]string `json:"labels,omitempty" yaml:"labels,omitempty"`
}

// NetworkInfo summarizes a network as reported by the engine.
type NetworkInfo struct {
	ID         string            `json:"id" yaml:"id"`
	Name       string            `json:"name" yaml:"name"`
	Driver     string            `json:"driver" yaml:"driver"`
	Containers []string          `json:"containers,omitempty" yaml:"containers,omitempty"`
	Labels     map[string]string `json:"labels,omitempty" yaml:"labels,omitempty"`
}

// Image summarizes a local image.
type Image struct {
	ID   string   `json:"id" yaml:"id"`
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Size int64    `json:"size" yaml:"size"`
}
