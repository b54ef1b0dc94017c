package analyzer

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"

	"github.com/bnema/dockcmd/internal/domain"
)

// BuildRequest serializes a canonical command into an engine request.
//
// Arguments start with the verb words, followed by flags in a fixed order
// per command using canonical flag names, then positionals. Repeatable values
// are sorted (ports numerically, key=value entries stably by key) so that
// commands differing only in flag order produce identical requests.
func BuildRequest(spec *CommandSpec, cmd domain.Command) (domain.EngineRequest, error) {
	a := argList(spec.Kind.Words())

	switch o := cmd.Options.(type) {
	case domain.ContainerOptions:
		a.value(flagName, o.Name)
		a.flag(flagRm, o.RemoveOnExit)
		a.flag(flagDetach, o.Detach)
		a.value(flagNetwork, o.NetworkName)
		a.value(flagIP, o.ContainerIP)
		a.values(flagPublish, sortedPorts(o.PortForwards))
		a.values(flagEnv, sortedByKey(o.Env))
		a.positionals(o.Image)
		a.positionals(o.Args...)

	case domain.ListOptions:
		a.flag(flagAll, o.All)
		a.flag(flagQuiet, o.Quiet)
		a.values(flagFilter, sortedByKey(o.Filters))
		a.positionals(nonEmpty(o.Reference)...)

	case domain.PullOptions:
		a.value(flagPlatform, o.Platform)
		a.flag(flagQuiet, o.Quiet)
		a.positionals(o.Image)

	case domain.RemoveOptions:
		a.flag(flagForce, o.Force)
		a.flag(flagVolumes, o.Volumes)
		a.positionals(o.Targets...)

	case domain.StartOptions:
		a.flag(flagAttach, o.Attach)
		a.positionals(o.Targets...)

	case domain.StopOptions:
		if o.Timeout != nil {
			a.value(flagTime, strconv.Itoa(*o.Timeout))
		}
		a.positionals(o.Targets...)

	case domain.InspectOptions:
		a.value(flagType, o.Type)
		a.value(flagFormat, o.Format)
		a.positionals(o.Targets...)

	case domain.NetworkCreateOptions:
		a.value(flagDriver, o.Driver)
		a.value(flagSubnet, o.Subnet)
		a.value(flagGateway, o.Gateway)
		a.flag(flagInternal, o.Internal)
		optKeys := make([]string, 0, len(o.Options))
		for k := range o.Options {
			optKeys = append(optKeys, k)
		}
		slices.Sort(optKeys)
		for _, k := range optKeys {
			a.value(flagOpt, k+"="+o.Options[k])
		}
		a.positionals(o.Name)

	default:
		return domain.EngineRequest{}, fmt.Errorf("unsupported options type %T for %q", cmd.Options, spec.Kind.String())
	}

	return domain.EngineRequest{TargetPath: spec.TargetPath, Arguments: a}, nil
}

type argList []string

func (a *argList) flag(name string, set bool) {
	if set {
		*a = append(*a, name)
	}
}

// value emits name and v unless v is empty.
func (a *argList) value(name, v string) {
	if v != "" {
		*a = append(*a, name, v)
	}
}

func (a *argList) values(name string, vs []string) {
	for _, v := range vs {
		*a = append(*a, name, v)
	}
}

func (a *argList) positionals(vs ...string) {
	*a = append(*a, vs...)
}

func nonEmpty(v string) []string {
	if v == "" {
		return nil
	}
	return []string{v}
}

// sortedPorts rewrites host:container bindings in canonical form and orders
// them by host port, container port and protocol. Entries were validated
// already; unparsable ones sort last by their text.
func sortedPorts(ports []string) []string {
	out := make([]string, len(ports))
	for i, p := range ports {
		out[i] = canonicalPort(p)
	}
	slices.SortFunc(out, func(x, y string) int {
		px, errX := parsePortForward(x)
		py, errY := parsePortForward(y)
		switch {
		case errX != nil || errY != nil:
			if c := cmp.Compare(boolRank(errX != nil), boolRank(errY != nil)); c != 0 {
				return c
			}
			return cmp.Compare(x, y)
		case px.Host != py.Host:
			return cmp.Compare(px.Host, py.Host)
		case px.Container != py.Container:
			return cmp.Compare(px.Container, py.Container)
		}
		return cmp.Compare(px.Proto, py.Proto)
	})
	return out
}

// canonicalPort drops leading zeros and the default tcp suffix, so every
// spelling of one binding renders the same.
func canonicalPort(v string) string {
	pf, err := parsePortForward(v)
	if err != nil {
		return v
	}
	s := strconv.Itoa(pf.Host) + ":" + strconv.Itoa(pf.Container)
	if pf.Proto != "tcp" {
		s += "/" + pf.Proto
	}
	return s
}

// sortedByKey stable-sorts KEY=VALUE entries by key. Entries sharing a key
// keep their relative order, so "last wins" semantics survive.
func sortedByKey(entries []string) []string {
	out := slices.Clone(entries)
	slices.SortStableFunc(out, func(x, y string) int {
		return cmp.Compare(envKey(x), envKey(y))
	})
	return out
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}
