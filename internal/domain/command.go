// Package domain contains pure business types without external dependencies.
// These types are used throughout the application and have no framework dependencies.
package domain

// MainCommand is the top-level verb of a docker-style command.
type MainCommand string

const (
	MainRun     MainCommand = "run"
	MainPs      MainCommand = "ps"
	MainPull    MainCommand = "pull"
	MainRm      MainCommand = "rm"
	MainInspect MainCommand = "inspect"
	MainNetwork MainCommand = "network"
	MainImages  MainCommand = "images"
	MainStart   MainCommand = "start"
	MainStop    MainCommand = "stop"
)

// MainCommands lists the closed vocabulary of main commands.
var MainCommands = []MainCommand{
	MainRun, MainPs, MainPull, MainRm, MainInspect,
	MainNetwork, MainImages, MainStart, MainStop,
}

// SubCommand qualifies a main command that has sub-operations.
type SubCommand string

const (
	SubNone    SubCommand = ""
	SubCreate  SubCommand = "create"
	SubRemove  SubCommand = "rm"
	SubList    SubCommand = "ls"
	SubInspect SubCommand = "inspect"
)

// Kind identifies a fully classified command.
type Kind struct {
	Main MainCommand `json:"main" yaml:"main"`
	Sub  SubCommand  `json:"sub,omitempty" yaml:"sub,omitempty"`
}

// String renders the kind the way a user would type it.
func (k Kind) String() string {
	if k.Sub == SubNone {
		return string(k.Main)
	}
	return string(k.Main) + " " + string(k.Sub)
}

// Words returns the verb words of the kind.
func (k Kind) Words() []string {
	if k.Sub == SubNone {
		return []string{string(k.Main)}
	}
	return []string{string(k.Main), string(k.Sub)}
}

// Token is one lexical unit of a raw command.
type Token struct {
	Value string
	// Pos is the byte offset of the token's first character in the raw input.
	Pos int
	// Quoted is set when the token opens with a quote. Quoted tokens are
	// never treated as flags.
	Quoted bool
}

// IsFlag reports whether the token is written as a flag.
func (t Token) IsFlag() bool {
	return !t.Quoted && len(t.Value) > 1 && t.Value[0] == '-'
}

// Command is a validated, defaulted command descriptor.
// Options holds exactly one of the *Options structs below, matching Kind.
type Command struct {
	Kind    `yaml:",inline"`
	Options any `json:"options" yaml:"options"`
}

// ContainerOptions are the canonical options of "run".
type ContainerOptions struct {
	Name         string   `json:"name,omitempty" yaml:"name,omitempty"`
	RemoveOnExit bool     `json:"remove_on_exit" yaml:"remove_on_exit"`
	Detach       bool     `json:"detach" yaml:"detach"`
	NetworkName  string   `json:"network_name" yaml:"network_name"`
	ContainerIP  string   `json:"container_ip,omitempty" yaml:"container_ip,omitempty"`
	PortForwards []string `json:"port_forwards,omitempty" yaml:"port_forwards,omitempty"`
	Env          []string `json:"env,omitempty" yaml:"env,omitempty"`
	Image        string   `json:"image" yaml:"image"`
	// Args holds positionals after the image: the container command.
	Args []string `json:"args,omitempty" yaml:"args,omitempty"`
}

// ListOptions are the canonical options of "ps", "images" and "network ls".
type ListOptions struct {
	All     bool     `json:"all" yaml:"all"`
	Quiet   bool     `json:"quiet" yaml:"quiet"`
	Filters []string `json:"filters,omitempty" yaml:"filters,omitempty"`
	// Reference restricts "images" to one repository.
	Reference string `json:"reference,omitempty" yaml:"reference,omitempty"`
}

// PullOptions are the canonical options of "pull".
type PullOptions struct {
	Image    string `json:"image" yaml:"image"`
	Platform string `json:"platform,omitempty" yaml:"platform,omitempty"`
	Quiet    bool   `json:"quiet" yaml:"quiet"`
}

// RemoveOptions are the canonical options of "rm" and "network rm".
type RemoveOptions struct {
	Targets []string `json:"targets" yaml:"targets"`
	Force   bool     `json:"force" yaml:"force"`
	Volumes bool     `json:"volumes" yaml:"volumes"`
}

// StartOptions are the canonical options of "start".
type StartOptions struct {
	Targets []string `json:"targets" yaml:"targets"`
	Attach  bool     `json:"attach" yaml:"attach"`
}

// StopOptions are the canonical options of "stop".
type StopOptions struct {
	Targets []string `json:"targets" yaml:"targets"`
	// Timeout is in seconds; nil means the engine default.
	Timeout *int `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

// InspectOptions are the canonical options of "inspect" and "network inspect".
type InspectOptions struct {
	Targets []string `json:"targets" yaml:"targets"`
	Type    string   `json:"type,omitempty" yaml:"type,omitempty"`
	Format  string   `json:"format,omitempty" yaml:"format,omitempty"`
}

// NetworkCreateOptions are the canonical options of "network create".
type NetworkCreateOptions struct {
	Name     string            `json:"name" yaml:"name"`
	Driver   string            `json:"driver" yaml:"driver"`
	Subnet   string            `json:"subnet,omitempty" yaml:"subnet,omitempty"`
	Gateway  string            `json:"gateway,omitempty" yaml:"gateway,omitempty"`
	Internal bool              `json:"internal" yaml:"internal"`
	Options  map[string]string `json:"options,omitempty" yaml:"options,omitempty"`
}

// Engine target paths, one per command kind.
const (
	PathContainerRun    = "/containers/run"
	PathContainerList   = "/containers/list"
	PathContainerStart  = "/containers/start"
	PathContainerStop   = "/containers/stop"
	PathContainerRemove = "/containers/remove"
	PathInspect         = "/inspect"
	PathImagePull       = "/images/pull"
	PathImageList       = "/images/list"
	PathNetworkCreate   = "/networks/create"
	PathNetworkRemove   = "/networks/remove"
	PathNetworkList     = "/networks/list"
	PathNetworkInspect  = "/networks/inspect"
)

// EngineRequest is the engine-facing call produced from a valid command.
type EngineRequest struct {
	TargetPath string   `json:"url" yaml:"url"`
	Arguments  []string `json:"arg_commands" yaml:"arg_commands"`
}

// Analysis pairs a command descriptor with its engine request.
type Analysis struct {
	Command Command       `json:"command" yaml:"command"`
	Request EngineRequest `json:"request" yaml:"request"`
}

// DispatchResult is what the engine returned for a dispatched request.
type DispatchResult struct {
	TargetPath string   `json:"url" yaml:"url"`
	IDs        []string `json:"ids,omitempty" yaml:"ids,omitempty"`
	Payload    any      `json:"payload,omitempty" yaml:"payload,omitempty"`
}
