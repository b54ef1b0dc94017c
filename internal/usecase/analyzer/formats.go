package analyzer

import (
	"errors"
	"fmt"
	"net/netip"
	"regexp"
	"strconv"
	"strings"
	"text/template"

	"github.com/docker/go-connections/nat"

	"github.com/bnema/dockcmd/pkg/validation"
)

// namePattern matches container and network names accepted by the engine.
var namePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_.-]*$`)

var inspectTypes = []string{"container", "image", "network"}

func checkName(v string) error {
	if !namePattern.MatchString(v) {
		return errors.New("must match [a-zA-Z0-9][a-zA-Z0-9_.-]*")
	}
	return nil
}

// portForward is a parsed <host>:<container>[/proto] binding.
type portForward struct {
	Host      int
	Container int
	Proto     string
}

func parsePortForward(v string) (portForward, error) {
	host, container, ok := strings.Cut(v, ":")
	if !ok || strings.Contains(container, ":") {
		return portForward{}, errors.New("expected <host>:<container>")
	}

	proto, containerPort := nat.SplitProtoPort(container)
	switch proto {
	case "tcp", "udp", "sctp":
	default:
		return portForward{}, fmt.Errorf("unsupported protocol %q", proto)
	}

	hostNum, err := parsePortNumber(host)
	if err != nil {
		return portForward{}, fmt.Errorf("host port: %w", err)
	}
	containerNum, err := parsePortNumber(containerPort)
	if err != nil {
		return portForward{}, fmt.Errorf("container port: %w", err)
	}

	return portForward{Host: hostNum, Container: containerNum, Proto: proto}, nil
}

func parsePortNumber(v string) (int, error) {
	if v == "" {
		return 0, errors.New("port is empty")
	}
	port, err := nat.ParsePort(v)
	if err != nil || port == 0 {
		return 0, fmt.Errorf("%q is not a port between 1 and 65535", v)
	}
	return port, nil
}

func checkPortForward(v string) error {
	_, err := parsePortForward(v)
	return err
}

func checkIP(v string) error {
	if _, err := netip.ParseAddr(v); err != nil {
		return errors.New("not an IP address")
	}
	return nil
}

func checkCIDR(v string) error {
	if _, err := netip.ParsePrefix(v); err != nil {
		return errors.New("not a CIDR subnet")
	}
	return nil
}

// checkKeyValue accepts KEY=VALUE with a non-empty key.
func checkKeyValue(v string) error {
	key, _, ok := strings.Cut(v, "=")
	if !ok || strings.TrimSpace(key) == "" {
		return errors.New("expected key=value")
	}
	return nil
}

// checkEnv accepts KEY or KEY=VALUE with a key free of whitespace.
func checkEnv(v string) error {
	key, _, _ := strings.Cut(v, "=")
	if key == "" || strings.ContainsAny(key, " \t\n") {
		return errors.New("expected KEY[=VALUE]")
	}
	return nil
}

func checkSeconds(v string) error {
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return errors.New("expected a non-negative number of seconds")
	}
	return nil
}

func checkInspectType(v string) error {
	for _, t := range inspectTypes {
		if v == t {
			return nil
		}
	}
	return fmt.Errorf("expected one of %s", strings.Join(inspectTypes, ", "))
}

// checkPlatform accepts os[/arch[/variant]].
func checkPlatform(v string) error {
	parts := strings.Split(v, "/")
	if len(parts) > 3 {
		return errors.New("expected os[/arch[/variant]]")
	}
	for _, p := range parts {
		if p == "" {
			return errors.New("expected os[/arch[/variant]]")
		}
	}
	return nil
}

// checkTemplate accepts any template text/template can parse.
func checkTemplate(v string) error {
	if _, err := template.New("format").Parse(v); err != nil {
		return fmt.Errorf("invalid template: %w", err)
	}
	return nil
}

func checkImage(v string) error {
	return validation.ValidateImageReference(v)
}

// envKey returns the variable name of a KEY[=VALUE] entry.
func envKey(v string) string {
	key, _, _ := strings.Cut(v, "=")
	return key
}
