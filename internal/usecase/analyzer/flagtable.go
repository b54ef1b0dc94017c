package analyzer

import (
	"slices"

	"github.com/bnema/dockcmd/internal/domain"
)

// Arity is the number of values a flag takes.
type Arity int

const (
	// ArityBool flags take no value and may be given once.
	ArityBool Arity = iota
	// AritySingle flags take one value and may be given once.
	AritySingle
	// ArityRepeatable flags take one value per occurrence and accumulate.
	ArityRepeatable
)

func (a Arity) String() string {
	switch a {
	case ArityBool:
		return "bool"
	case AritySingle:
		return "single"
	case ArityRepeatable:
		return "repeatable"
	}
	return "unknown"
}

// Canonical flag names. Builders emit these regardless of the alias typed.
const (
	flagName     = "--name"
	flagRm       = "--rm"
	flagDetach   = "--detach"
	flagNetwork  = "--network"
	flagIP       = "--ip"
	flagPublish  = "-p"
	flagEnv      = "-e"
	flagAll      = "--all"
	flagQuiet    = "--quiet"
	flagFilter   = "--filter"
	flagPlatform = "--platform"
	flagForce    = "--force"
	flagVolumes  = "--volumes"
	flagAttach   = "--attach"
	flagTime     = "--time"
	flagType     = "--type"
	flagFormat   = "--format"
	flagDriver   = "--driver"
	flagSubnet   = "--subnet"
	flagGateway  = "--gateway"
	flagInternal = "--internal"
	flagOpt      = "--opt"
)

// FlagSpec declares one flag of a command.
type FlagSpec struct {
	Name    string
	Aliases []string
	Arity   Arity
	Usage   string
	// Check validates one value; its error becomes the diagnostic reason.
	Check func(string) error
}

// Unlimited marks a command accepting any number of positionals.
const Unlimited = -1

// CommandSpec declares a command: its flags, positional rules and target.
type CommandSpec struct {
	Kind       domain.Kind
	Usage      string
	Summary    string
	TargetPath string
	Flags      []FlagSpec
	// ArgName names the positional in diagnostics, e.g. IMAGE.
	ArgName string
	MinArgs int
	MaxArgs int
	// ArgCheck validates the first positional.
	ArgCheck func(string) error
	// FlagsEndAtFirstArg stops flag parsing at the first positional; the
	// remaining tokens belong to the container command.
	FlagsEndAtFirstArg bool
	// NeedsNetwork marks commands that attach to a network and receive the
	// default network when none is given.
	NeedsNetwork bool
}

// Flag looks up a flag by canonical name or alias.
func (s *CommandSpec) Flag(name string) (*FlagSpec, bool) {
	for i := range s.Flags {
		f := &s.Flags[i]
		if f.Name == name || slices.Contains(f.Aliases, name) {
			return f, true
		}
	}
	return nil, false
}

var (
	listFlags = []FlagSpec{
		{Name: flagAll, Aliases: []string{"-a"}, Arity: ArityBool, Usage: "Include stopped entries"},
		{Name: flagQuiet, Aliases: []string{"-q"}, Arity: ArityBool, Usage: "Only print IDs"},
		{Name: flagFilter, Aliases: []string{"-f"}, Arity: ArityRepeatable, Usage: "Filter output (key=value)", Check: checkKeyValue},
	}
)

// commandTable is the closed command vocabulary.
var commandTable = []CommandSpec{
	{
		Kind:         domain.Kind{Main: domain.MainRun},
		Usage:        "run [OPTIONS] IMAGE [COMMAND] [ARG...]",
		Summary:      "Create and start a container",
		TargetPath:   domain.PathContainerRun,
		ArgName:      "IMAGE",
		MinArgs:      1,
		MaxArgs:      Unlimited,
		ArgCheck:     checkImage,
		NeedsNetwork: true,

		FlagsEndAtFirstArg: true,
		Flags: []FlagSpec{
			{Name: flagName, Arity: AritySingle, Usage: "Assign a name to the container", Check: checkName},
			{Name: flagRm, Arity: ArityBool, Usage: "Remove the container when it exits"},
			{Name: flagDetach, Aliases: []string{"-d"}, Arity: ArityBool, Usage: "Run in the background"},
			{Name: flagNetwork, Arity: AritySingle, Usage: "Connect to a network", Check: checkName},
			{Name: flagIP, Arity: AritySingle, Usage: "IPv4/IPv6 address on the network (requires --network)", Check: checkIP},
			{Name: flagPublish, Aliases: []string{"--publish"}, Arity: ArityRepeatable, Usage: "Publish a port (host:container)", Check: checkPortForward},
			{Name: flagEnv, Aliases: []string{"--env"}, Arity: ArityRepeatable, Usage: "Set an environment variable", Check: checkEnv},
		},
	},
	{
		Kind:       domain.Kind{Main: domain.MainPs},
		Usage:      "ps [OPTIONS]",
		Summary:    "List containers",
		TargetPath: domain.PathContainerList,
		Flags:      listFlags,
	},
	{
		Kind:       domain.Kind{Main: domain.MainStart},
		Usage:      "start [OPTIONS] CONTAINER [CONTAINER...]",
		Summary:    "Start one or more stopped containers",
		TargetPath: domain.PathContainerStart,
		ArgName:    "CONTAINER",
		MinArgs:    1,
		MaxArgs:    Unlimited,
		Flags: []FlagSpec{
			{Name: flagAttach, Aliases: []string{"-a"}, Arity: ArityBool, Usage: "Attach output"},
		},
	},
	{
		Kind:       domain.Kind{Main: domain.MainStop},
		Usage:      "stop [OPTIONS] CONTAINER [CONTAINER...]",
		Summary:    "Stop one or more running containers",
		TargetPath: domain.PathContainerStop,
		ArgName:    "CONTAINER",
		MinArgs:    1,
		MaxArgs:    Unlimited,
		Flags: []FlagSpec{
			{Name: flagTime, Aliases: []string{"-t"}, Arity: AritySingle, Usage: "Seconds to wait before killing", Check: checkSeconds},
		},
	},
	{
		Kind:       domain.Kind{Main: domain.MainRm},
		Usage:      "rm [OPTIONS] CONTAINER [CONTAINER...]",
		Summary:    "Remove one or more containers",
		TargetPath: domain.PathContainerRemove,
		ArgName:    "CONTAINER",
		MinArgs:    1,
		MaxArgs:    Unlimited,
		Flags: []FlagSpec{
			{Name: flagForce, Aliases: []string{"-f"}, Arity: ArityBool, Usage: "Kill a running container first"},
			{Name: flagVolumes, Aliases: []string{"-v"}, Arity: ArityBool, Usage: "Remove anonymous volumes"},
		},
	},
	{
		Kind:       domain.Kind{Main: domain.MainInspect},
		Usage:      "inspect [OPTIONS] NAME|ID [NAME|ID...]",
		Summary:    "Return low-level information on engine objects",
		TargetPath: domain.PathInspect,
		ArgName:    "NAME|ID",
		MinArgs:    1,
		MaxArgs:    Unlimited,
		Flags: []FlagSpec{
			{Name: flagType, Arity: AritySingle, Usage: "Object type (container, image, network)", Check: checkInspectType},
			{Name: flagFormat, Aliases: []string{"-f"}, Arity: AritySingle, Usage: "Go template for the output", Check: checkTemplate},
		},
	},
	{
		Kind:       domain.Kind{Main: domain.MainPull},
		Usage:      "pull [OPTIONS] IMAGE",
		Summary:    "Download an image from a registry",
		TargetPath: domain.PathImagePull,
		ArgName:    "IMAGE",
		MinArgs:    1,
		MaxArgs:    1,
		ArgCheck:   checkImage,
		Flags: []FlagSpec{
			{Name: flagPlatform, Arity: AritySingle, Usage: "Platform (os[/arch[/variant]])", Check: checkPlatform},
			{Name: flagQuiet, Aliases: []string{"-q"}, Arity: ArityBool, Usage: "Suppress verbose output"},
		},
	},
	{
		Kind:       domain.Kind{Main: domain.MainImages},
		Usage:      "images [OPTIONS] [REPOSITORY[:TAG]]",
		Summary:    "List images",
		TargetPath: domain.PathImageList,
		ArgName:    "REPOSITORY",
		MaxArgs:    1,
		ArgCheck:   checkImage,
		Flags:      listFlags,
	},
	{
		Kind:       domain.Kind{Main: domain.MainNetwork, Sub: domain.SubCreate},
		Usage:      "network create [OPTIONS] NETWORK",
		Summary:    "Create a network",
		TargetPath: domain.PathNetworkCreate,
		ArgName:    "NETWORK",
		MinArgs:    1,
		MaxArgs:    1,
		ArgCheck:   checkName,
		Flags: []FlagSpec{
			{Name: flagDriver, Aliases: []string{"-d"}, Arity: AritySingle, Usage: "Network driver", Check: checkName},
			{Name: flagSubnet, Arity: AritySingle, Usage: "Subnet in CIDR format", Check: checkCIDR},
			{Name: flagGateway, Arity: AritySingle, Usage: "Gateway for the subnet (requires --subnet)", Check: checkIP},
			{Name: flagInternal, Arity: ArityBool, Usage: "Restrict external access"},
			{Name: flagOpt, Aliases: []string{"-o"}, Arity: ArityRepeatable, Usage: "Driver option (key=value)", Check: checkKeyValue},
		},
	},
	{
		Kind:       domain.Kind{Main: domain.MainNetwork, Sub: domain.SubRemove},
		Usage:      "network rm [OPTIONS] NETWORK [NETWORK...]",
		Summary:    "Remove one or more networks",
		TargetPath: domain.PathNetworkRemove,
		ArgName:    "NETWORK",
		MinArgs:    1,
		MaxArgs:    Unlimited,
		Flags: []FlagSpec{
			{Name: flagForce, Aliases: []string{"-f"}, Arity: ArityBool, Usage: "Do not error if the network does not exist"},
		},
	},
	{
		Kind:       domain.Kind{Main: domain.MainNetwork, Sub: domain.SubList},
		Usage:      "network ls [OPTIONS]",
		Summary:    "List networks",
		TargetPath: domain.PathNetworkList,
		Flags: []FlagSpec{
			{Name: flagQuiet, Aliases: []string{"-q"}, Arity: ArityBool, Usage: "Only print IDs"},
			{Name: flagFilter, Aliases: []string{"-f"}, Arity: ArityRepeatable, Usage: "Filter output (key=value)", Check: checkKeyValue},
		},
	},
	{
		Kind:       domain.Kind{Main: domain.MainNetwork, Sub: domain.SubInspect},
		Usage:      "network inspect [OPTIONS] NETWORK [NETWORK...]",
		Summary:    "Display detailed information on networks",
		TargetPath: domain.PathNetworkInspect,
		ArgName:    "NETWORK",
		MinArgs:    1,
		MaxArgs:    Unlimited,
		Flags: []FlagSpec{
			{Name: flagFormat, Aliases: []string{"-f"}, Arity: AritySingle, Usage: "Go template for the output", Check: checkTemplate},
		},
	},
}

// specByWords indexes commandTable by the space-joined verb words.
var specByWords = func() map[string]*CommandSpec {
	m := make(map[string]*CommandSpec, len(commandTable))
	for i := range commandTable {
		m[commandTable[i].Kind.String()] = &commandTable[i]
	}
	return m
}()

// maxCommandWords is the longest verb sequence in the vocabulary.
var maxCommandWords = func() int {
	n := 0
	for _, s := range commandTable {
		n = max(n, len(s.Kind.Words()))
	}
	return n
}()

// SpecFor returns the command spec of a kind.
func SpecFor(kind domain.Kind) (*CommandSpec, bool) {
	s, ok := specByWords[kind.String()]
	return s, ok
}

// subCommandsOf returns the sub-command names a main command declares.
func subCommandsOf(main domain.MainCommand) []string {
	var subs []string
	for _, s := range commandTable {
		if s.Kind.Main == main && s.Kind.Sub != domain.SubNone {
			subs = append(subs, string(s.Kind.Sub))
		}
	}
	slices.Sort(subs)
	return subs
}

// Vocabulary describes every command and flag, in table order.
func Vocabulary() []domain.CommandUsage {
	out := make([]domain.CommandUsage, 0, len(commandTable))
	for _, s := range commandTable {
		u := domain.CommandUsage{
			Command:    s.Kind.String(),
			Usage:      s.Usage,
			Summary:    s.Summary,
			TargetPath: s.TargetPath,
		}
		for _, f := range s.Flags {
			u.Flags = append(u.Flags, domain.FlagUsage{
				Name:    f.Name,
				Aliases: slices.Clone(f.Aliases),
				Arity:   f.Arity.String(),
				Usage:   f.Usage,
			})
		}
		out = append(out, u)
	}
	return out
}
