// Package docker implements the container runtime adapter using Docker API.
package docker

import (
	"context"
	"fmt"
	"io"
	"net/netip"
	"strings"

	cerrdefs "github.com/containerd/errdefs"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"

	"github.com/bnema/dockcmd/internal/boundaries/out"
	"github.com/bnema/dockcmd/internal/domain"
	"github.com/bnema/dockcmd/internal/logging"
)

var _ out.ContainerRuntime = (*Runtime)(nil)

// Runtime implements the ContainerRuntime interface using Docker API.
type Runtime struct {
	client *client.Client
}

// NewRuntime creates a Docker runtime. An empty host uses the environment
// (DOCKER_HOST and friends).
func NewRuntime(host string) (*Runtime, error) {
	opts := []client.Opt{client.FromEnv, client.WithAPIVersionNegotiation()}
	if host != "" {
		opts = append(opts, client.WithHost(host))
	}
	cli, err := client.NewClientWithOpts(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Docker client: %w", err)
	}
	return &Runtime{client: cli}, nil
}

// NewRuntimeWithClient creates a new Docker runtime instance with a custom client (for testing).
func NewRuntimeWithClient(cli *client.Client) *Runtime {
	return &Runtime{client: cli}
}

// Close releases the client's connections.
func (r *Runtime) Close() error {
	return r.client.Close()
}

func actionCtx(ctx context.Context, action string, fields map[string]any) (context.Context, logging.Logger) {
	all := map[string]any{
		logging.FieldLayer:   "adapter",
		logging.FieldAdapter: "docker",
		logging.FieldAction:  action,
	}
	for k, v := range fields {
		all[k] = v
	}
	ctx = logging.CtxWithFields(ctx, all)
	return ctx, logging.FromCtx(ctx)
}

// translate maps engine errors onto domain sentinels.
func translate(err error) error {
	if cerrdefs.IsNotFound(err) {
		return fmt.Errorf("%w: %v", domain.ErrNotFound, err)
	}
	return err
}

// filterArgs turns key=value entries into engine filters.
func filterArgs(entries []string) filters.Args {
	args := filters.NewArgs()
	for _, e := range entries {
		key, value, _ := strings.Cut(e, "=")
		args.Add(key, value)
	}
	return args
}

// RunContainer creates and starts a container, pulling the image when the
// engine does not have it yet. The container always runs detached.
func (r *Runtime) RunContainer(ctx context.Context, opts domain.ContainerOptions) (string, error) {
	ctx, log := actionCtx(ctx, "RunContainer", map[string]any{
		"container_name": opts.Name,
		"image":          opts.Image,
		"network":        opts.NetworkName,
	})

	exposedPorts, portBindings, err := nat.ParsePortSpecs(opts.PortForwards)
	if err != nil {
		return "", log.WrapErr(err, "failed to parse port forwards")
	}

	containerConfig := &container.Config{
		Image:        opts.Image,
		Env:          opts.Env,
		Cmd:          opts.Args,
		ExposedPorts: exposedPorts,
	}
	hostConfig := &container.HostConfig{
		PortBindings: portBindings,
		AutoRemove:   opts.RemoveOnExit,
		NetworkMode:  container.NetworkMode(opts.NetworkName),
	}

	var networkConfig *network.NetworkingConfig
	if opts.NetworkName != "" {
		endpoint := &network.EndpointSettings{}
		if opts.ContainerIP != "" {
			endpoint.IPAMConfig = endpointIPAM(opts.ContainerIP)
		}
		networkConfig = &network.NetworkingConfig{
			EndpointsConfig: map[string]*network.EndpointSettings{opts.NetworkName: endpoint},
		}
	}

	resp, err := r.client.ContainerCreate(ctx, containerConfig, hostConfig, networkConfig, nil, opts.Name)
	if cerrdefs.IsNotFound(err) {
		log.Info().Msg("image not present, pulling")
		if pullErr := r.PullImage(ctx, opts.Image, ""); pullErr != nil {
			return "", pullErr
		}
		resp, err = r.client.ContainerCreate(ctx, containerConfig, hostConfig, networkConfig, nil, opts.Name)
	}
	if err != nil {
		return "", log.WrapErr(translate(err), "failed to create container")
	}
	for _, w := range resp.Warnings {
		log.Warn().Str(logging.FieldEntityID, resp.ID).Msg(w)
	}

	if err := r.client.ContainerStart(ctx, resp.ID, container.StartOptions{}); err != nil {
		return "", log.WrapErr(translate(err), "failed to start container")
	}

	log.Info().Str(logging.FieldEntityID, resp.ID).Msg("container running")
	return resp.ID, nil
}

func endpointIPAM(ip string) *network.EndpointIPAMConfig {
	cfg := &network.EndpointIPAMConfig{}
	if addr, err := netip.ParseAddr(ip); err == nil && addr.Is6() && !addr.Is4In6() {
		cfg.IPv6Address = ip
	} else {
		cfg.IPv4Address = ip
	}
	return cfg
}

// StartContainer starts a container.
func (r *Runtime) StartContainer(ctx context.Context, containerID string) error {
	ctx, log := actionCtx(ctx, "StartContainer", map[string]any{logging.FieldEntityID: containerID})

	if err := r.client.ContainerStart(ctx, containerID, container.StartOptions{}); err != nil {
		return log.WrapErr(translate(err), "failed to start container")
	}

	log.Info().Msg("container started")
	return nil
}

// StopContainer stops a container. A nil timeout uses the engine default.
func (r *Runtime) StopContainer(ctx context.Context, containerID string, timeout *int) error {
	ctx, log := actionCtx(ctx, "StopContainer", map[string]any{logging.FieldEntityID: containerID})

	if err := r.client.ContainerStop(ctx, containerID, container.StopOptions{Timeout: timeout}); err != nil {
		return log.WrapErr(translate(err), "failed to stop container")
	}

	log.Info().Msg("container stopped")
	return nil
}

// RemoveContainer removes a container.
func (r *Runtime) RemoveContainer(ctx context.Context, containerID string, force, volumes bool) error {
	ctx, log := actionCtx(ctx, "RemoveContainer", map[string]any{
		logging.FieldEntityID: containerID,
		"force":               force,
		"volumes":             volumes,
	})

	err := r.client.ContainerRemove(ctx, containerID, container.RemoveOptions{Force: force, RemoveVolumes: volumes})
	if err != nil {
		return log.WrapErr(translate(err), "failed to remove container")
	}

	log.Info().Msg("container removed")
	return nil
}

// ListContainers lists containers.
func (r *Runtime) ListContainers(ctx context.Context, opts domain.ListOptions) ([]*domain.Container, error) {
	ctx, log := actionCtx(ctx, "ListContainers", map[string]any{"all": opts.All})

	containers, err := r.client.ContainerList(ctx, container.ListOptions{
		All:     opts.All,
		Filters: filterArgs(opts.Filters),
	})
	if err != nil {
		return nil, log.WrapErr(err, "failed to list containers")
	}

	result := make([]*domain.Container, 0, len(containers))
	for _, c := range containers {
		var ports []int
		for _, port := range c.Ports {
			if port.PublicPort > 0 {
				ports = append(ports, int(port.PublicPort))
			}
		}

		name := ""
		if len(c.Names) > 0 {
			name = strings.TrimPrefix(c.Names[0], "/")
		}

		result = append(result, &domain.Container{
			ID:     c.ID,
			Image:  c.Image,
			Name:   name,
			Status: c.Status,
			Ports:  ports,
			Labels: c.Labels,
		})
	}

	return result, nil
}

// InspectContainer returns the engine's full container description.
func (r *Runtime) InspectContainer(ctx context.Context, containerID string) (any, error) {
	ctx, log := actionCtx(ctx, "InspectContainer", map[string]any{logging.FieldEntityID: containerID})

	resp, err := r.client.ContainerInspect(ctx, containerID)
	if err != nil {
		return nil, log.WrapErr(translate(err), "failed to inspect container")
	}
	return resp, nil
}

// InspectImage returns the engine's full image description.
func (r *Runtime) InspectImage(ctx context.Context, imageRef string) (any, error) {
	ctx, log := actionCtx(ctx, "InspectImage", map[string]any{"image": imageRef})

	resp, err := r.client.ImageInspect(ctx, imageRef)
	if err != nil {
		return nil, log.WrapErr(translate(err), "failed to inspect image")
	}
	return resp, nil
}

// InspectNetwork returns the engine's full network description.
func (r *Runtime) InspectNetwork(ctx context.Context, name string) (any, error) {
	ctx, log := actionCtx(ctx, "InspectNetwork", map[string]any{"network": name})

	resp, err := r.client.NetworkInspect(ctx, name, network.InspectOptions{})
	if err != nil {
		return nil, log.WrapErr(translate(err), "failed to inspect network")
	}
	return resp, nil
}

// PullImage pulls an image, optionally for a specific platform.
func (r *Runtime) PullImage(ctx context.Context, imageRef, platform string) error {
	ctx, log := actionCtx(ctx, "PullImage", map[string]any{"image": imageRef, "platform": platform})

	log.Info().Msg("pulling image")

	reader, err := r.client.ImagePull(ctx, imageRef, image.PullOptions{Platform: platform})
	if err != nil {
		return log.WrapErr(translate(err), "failed to pull image")
	}
	defer reader.Close()

	// The pull only completes once the progress stream is drained.
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return log.WrapErr(err, "failed to read pull response")
	}

	log.Info().Msg("image pulled successfully")
	return nil
}

// ListImages lists images. A Reference restricts the list to one repository.
func (r *Runtime) ListImages(ctx context.Context, opts domain.ListOptions) ([]*domain.Image, error) {
	ctx, log := actionCtx(ctx, "ListImages", map[string]any{"all": opts.All})

	args := filterArgs(opts.Filters)
	if opts.Reference != "" {
		args.Add("reference", opts.Reference)
	}

	images, err := r.client.ImageList(ctx, image.ListOptions{All: opts.All, Filters: args})
	if err != nil {
		return nil, log.WrapErr(err, "failed to list images")
	}

	result := make([]*domain.Image, 0, len(images))
	for _, img := range images {
		var tags []string
		for _, tag := range img.RepoTags {
			if tag != "<none>:<none>" {
				tags = append(tags, tag)
			}
		}
		result = append(result, &domain.Image{ID: img.ID, Tags: tags, Size: img.Size})
	}

	return result, nil
}

// CreateNetwork creates a network with the given IPAM and driver options.
func (r *Runtime) CreateNetwork(ctx context.Context, opts domain.NetworkCreateOptions) (string, error) {
	ctx, log := actionCtx(ctx, "CreateNetwork", map[string]any{
		"network": opts.Name,
		"driver":  opts.Driver,
	})

	createOptions := network.CreateOptions{
		Driver:   opts.Driver,
		Internal: opts.Internal,
		Options:  opts.Options,
	}
	if opts.Subnet != "" {
		createOptions.IPAM = &network.IPAM{
			Driver: "default",
			Config: []network.IPAMConfig{{Subnet: opts.Subnet, Gateway: opts.Gateway}},
		}
	}

	resp, err := r.client.NetworkCreate(ctx, opts.Name, createOptions)
	if err != nil {
		return "", log.WrapErr(err, "failed to create network")
	}
	if resp.Warning != "" {
		log.Warn().Msg(resp.Warning)
	}

	log.Info().Str(logging.FieldEntityID, resp.ID).Msg("network created")
	return resp.ID, nil
}

// RemoveNetwork removes a network.
func (r *Runtime) RemoveNetwork(ctx context.Context, name string) error {
	ctx, log := actionCtx(ctx, "RemoveNetwork", map[string]any{"network": name})

	if err := r.client.NetworkRemove(ctx, name); err != nil {
		if cerrdefs.IsNotFound(err) {
			log.Debug().Msg("network not found")
			return translate(err)
		}
		return log.WrapErr(err, "failed to remove network")
	}

	log.Info().Msg("network removed")
	return nil
}

// ListNetworks lists networks.
func (r *Runtime) ListNetworks(ctx context.Context, opts domain.ListOptions) ([]*domain.NetworkInfo, error) {
	ctx, log := actionCtx(ctx, "ListNetworks", nil)

	networks, err := r.client.NetworkList(ctx, network.ListOptions{Filters: filterArgs(opts.Filters)})
	if err != nil {
		return nil, log.WrapErr(err, "failed to list networks")
	}

	result := make([]*domain.NetworkInfo, 0, len(networks))
	for _, n := range networks {
		var containers []string
		for containerID := range n.Containers {
			containers = append(containers, containerID)
		}

		result = append(result, &domain.NetworkInfo{
			ID:         n.ID,
			Name:       n.Name,
			Driver:     n.Driver,
			Containers: containers,
			Labels:     n.Labels,
		})
	}

	return result, nil
}

// Ping checks if Docker is responsive.
func (r *Runtime) Ping(ctx context.Context) error {
	ctx, log := actionCtx(ctx, "Ping", nil)

	if _, err := r.client.Ping(ctx); err != nil {
		return log.WrapErr(err, "Docker ping failed")
	}
	return nil
}

// Version returns the engine version.
func (r *Runtime) Version(ctx context.Context) (string, error) {
	ctx, log := actionCtx(ctx, "Version", nil)

	version, err := r.client.ServerVersion(ctx)
	if err != nil {
		return "", log.WrapErr(err, "failed to get Docker version")
	}
	return version.Version, nil
}
