package analyzer

import (
	"fmt"
	"net/netip"
	"strconv"
	"strings"

	"github.com/bnema/dockcmd/internal/domain"
)

// Normalize validates raw options for spec and produces the canonical
// command. Rules run in a fixed order and the first violation is returned:
//
//  1. required positionals
//  2. cross-flag consistency
//  3. default injection
//  4. per-flag format
//
// No partially validated command is ever returned.
func Normalize(spec *CommandSpec, opts *RawOptions, defaults domain.EngineDefaults) (domain.Command, error) {
	if err := checkPositionals(spec, opts); err != nil {
		return domain.Command{}, err
	}
	if err := checkConsistency(opts); err != nil {
		return domain.Command{}, err
	}

	options, err := canonicalOptions(spec, opts, defaults)
	if err != nil {
		return domain.Command{}, err
	}
	cmd := domain.Command{Kind: spec.Kind, Options: options}

	if err := checkFormats(spec, opts); err != nil {
		return domain.Command{}, err
	}
	if err := checkNetworkAddressing(cmd, opts); err != nil {
		return domain.Command{}, err
	}

	return cmd, nil
}

func checkPositionals(spec *CommandSpec, opts *RawOptions) error {
	n := len(opts.Positionals)
	if n < spec.MinArgs {
		return (&domain.AnalysisError{
			Kind:     domain.KindMissingRequiredArgument,
			Position: opts.End,
		}).WithReason(fmt.Sprintf("%q requires at least %d %s argument(s), got %d", spec.Kind.String(), spec.MinArgs, spec.ArgName, n))
	}
	if spec.MaxArgs != Unlimited && n > spec.MaxArgs {
		extra := opts.Positionals[spec.MaxArgs]
		return domain.NewAnalysisError(domain.KindUnexpectedArgument, extra).
			WithReason(fmt.Sprintf("%q accepts at most %d argument(s)", spec.Kind.String(), spec.MaxArgs))
	}
	return nil
}

func checkConsistency(opts *RawOptions) error {
	if opts.Has(flagIP) && !opts.Has(flagNetwork) {
		tok, _ := opts.FlagToken(flagIP)
		return domain.NewAnalysisError(domain.KindNetworkRequiredForIP, tok).WithFlag(flagIP)
	}
	if opts.Has(flagGateway) && !opts.Has(flagSubnet) {
		tok, _ := opts.FlagToken(flagGateway)
		return domain.NewAnalysisError(domain.KindGatewayRequiresSubnet, tok).WithFlag(flagGateway)
	}
	return nil
}

// canonicalOptions builds the command-specific option struct, injecting
// defaults for flags that were entirely absent.
func canonicalOptions(spec *CommandSpec, opts *RawOptions, defaults domain.EngineDefaults) (any, error) {
	args := opts.PositionalValues()

	switch spec.Kind {
	case domain.Kind{Main: domain.MainRun}:
		network := opts.String(flagNetwork)
		if spec.NeedsNetwork && !opts.Has(flagNetwork) {
			network = defaults.NetworkName
		}
		return domain.ContainerOptions{
			Name:         opts.String(flagName),
			RemoveOnExit: opts.Bool(flagRm),
			Detach:       opts.Bool(flagDetach),
			NetworkName:  network,
			ContainerIP:  opts.String(flagIP),
			PortForwards: opts.Values(flagPublish),
			Env:          opts.Values(flagEnv),
			Image:        args[0],
			Args:         nilIfEmpty(args[1:]),
		}, nil

	case domain.Kind{Main: domain.MainPs}, domain.Kind{Main: domain.MainImages}, domain.Kind{Main: domain.MainNetwork, Sub: domain.SubList}:
		lo := domain.ListOptions{
			All:     opts.Bool(flagAll),
			Quiet:   opts.Bool(flagQuiet),
			Filters: opts.Values(flagFilter),
		}
		if len(args) > 0 {
			lo.Reference = args[0]
		}
		return lo, nil

	case domain.Kind{Main: domain.MainPull}:
		return domain.PullOptions{
			Image:    args[0],
			Platform: opts.String(flagPlatform),
			Quiet:    opts.Bool(flagQuiet),
		}, nil

	case domain.Kind{Main: domain.MainRm}, domain.Kind{Main: domain.MainNetwork, Sub: domain.SubRemove}:
		return domain.RemoveOptions{
			Targets: args,
			Force:   opts.Bool(flagForce),
			Volumes: opts.Bool(flagVolumes),
		}, nil

	case domain.Kind{Main: domain.MainStart}:
		return domain.StartOptions{Targets: args, Attach: opts.Bool(flagAttach)}, nil

	case domain.Kind{Main: domain.MainStop}:
		so := domain.StopOptions{Targets: args}
		if opts.Has(flagTime) {
			// Format is checked afterwards; a bad value never escapes Normalize.
			if secs, err := strconv.Atoi(opts.String(flagTime)); err == nil {
				so.Timeout = &secs
			}
		}
		return so, nil

	case domain.Kind{Main: domain.MainInspect}, domain.Kind{Main: domain.MainNetwork, Sub: domain.SubInspect}:
		return domain.InspectOptions{
			Targets: args,
			Type:    opts.String(flagType),
			Format:  opts.String(flagFormat),
		}, nil

	case domain.Kind{Main: domain.MainNetwork, Sub: domain.SubCreate}:
		return networkCreateOptions(args[0], opts, defaults), nil
	}

	return nil, fmt.Errorf("no canonical options for %q", spec.Kind.String())
}

func networkCreateOptions(name string, opts *RawOptions, defaults domain.EngineDefaults) domain.NetworkCreateOptions {
	nc := domain.NetworkCreateOptions{
		Name:     name,
		Driver:   opts.String(flagDriver),
		Subnet:   opts.String(flagSubnet),
		Gateway:  opts.String(flagGateway),
		Internal: opts.Bool(flagInternal),
	}
	if !opts.Has(flagDriver) {
		nc.Driver = defaults.NetworkDriver
	}
	if !opts.Has(flagSubnet) && !opts.Has(flagGateway) {
		nc.Subnet = defaults.Subnet
		nc.Gateway = defaults.Gateway
	}

	for _, kv := range opts.Values(flagOpt) {
		key, value, _ := strings.Cut(kv, "=")
		if nc.Options == nil {
			nc.Options = make(map[string]string)
		}
		nc.Options[key] = value
	}

	if nc.Driver == "bridge" {
		if nc.Options == nil {
			nc.Options = make(map[string]string)
		}
		if _, ok := nc.Options[domain.OptionMTU]; !ok && defaults.MTU > 0 {
			nc.Options[domain.OptionMTU] = strconv.Itoa(defaults.MTU)
		}
		if _, ok := nc.Options[domain.OptionICC]; !ok {
			nc.Options[domain.OptionICC] = strconv.FormatBool(defaults.EnableICC)
		}
	}
	return nc
}

func checkFormats(spec *CommandSpec, opts *RawOptions) error {
	for _, f := range spec.Flags {
		if f.Check == nil {
			continue
		}
		for _, tok := range opts.Tokens(f.Name) {
			if err := f.Check(tok.Value); err != nil {
				return domain.NewAnalysisError(domain.KindInvalidOptionFormat, tok).
					WithFlag(f.Name).WithReason(err.Error())
			}
		}
	}

	if spec.ArgCheck != nil && len(opts.Positionals) > 0 {
		tok := opts.Positionals[0]
		if err := spec.ArgCheck(tok.Value); err != nil {
			return domain.NewAnalysisError(domain.KindInvalidOptionFormat, tok).
				WithFlag(spec.ArgName).WithReason(err.Error())
		}
	}
	return nil
}

// checkNetworkAddressing verifies that a network's gateway lies inside its
// subnet. Runs after per-flag checks so both values already parse.
func checkNetworkAddressing(cmd domain.Command, opts *RawOptions) error {
	nc, ok := cmd.Options.(domain.NetworkCreateOptions)
	if !ok || nc.Subnet == "" || nc.Gateway == "" {
		return nil
	}
	prefix, err := netip.ParsePrefix(nc.Subnet)
	if err != nil {
		return nil
	}
	gw, err := netip.ParseAddr(nc.Gateway)
	if err != nil {
		return nil
	}
	if !prefix.Contains(gw) {
		tok, ok := opts.Last(flagGateway)
		if !ok {
			tok = domain.Token{Value: nc.Gateway, Pos: domain.NoPosition}
		}
		return domain.NewAnalysisError(domain.KindInvalidOptionFormat, tok).
			WithFlag(flagGateway).WithReason(fmt.Sprintf("gateway is outside subnet %s", nc.Subnet))
	}
	return nil
}

func nilIfEmpty(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return s
}
