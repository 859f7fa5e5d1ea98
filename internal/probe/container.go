// Package probe: Docker container probe.
package probe

import (
	"context"
	"fmt"
	"strings"
	"time"

	containertypes "github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	dockerclient "github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"

	v1 "github.com/f9-o/pulse/api/v1"
	"github.com/f9-o/pulse/pkg/errs"
)

// ContainerInspector answers whether a named container is running and,
// optionally, whether it publishes a given TCP port.
type ContainerInspector interface {
	ContainerRunning(ctx context.Context, name string, port int) (string, error)
}

// dockerInspector implements ContainerInspector over the Docker Engine API.
type dockerInspector struct {
	api dockerclient.APIClient
}

// newDockerInspector connects to the local Docker daemon.
func newDockerInspector() (ContainerInspector, error) {
	dc, err := dockerclient.NewClientWithOpts(
		dockerclient.FromEnv,
		dockerclient.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return nil, errs.Wrap(err, errs.ErrDockerConnect, "probe.container.connect").
			WithAdvice("Make sure the Docker daemon is running.")
	}
	return &dockerInspector{api: dc}, nil
}

// ContainerRunning looks up the container by exact name and verifies its
// state. When port is non-zero the container must also publish it on TCP.
func (d *dockerInspector) ContainerRunning(ctx context.Context, name string, port int) (string, error) {
	list, err := d.api.ContainerList(ctx, containertypes.ListOptions{
		All:     true,
		Filters: filters.NewArgs(filters.Arg("name", name)),
	})
	if err != nil {
		return "", errs.Wrap(err, errs.ErrDockerInspect, "probe.container.list")
	}

	for _, c := range list {
		if !matchesName(c.Names, name) {
			continue
		}
		if c.State != "running" {
			return fmt.Sprintf("Container %s is %s", name, c.State),
				fmt.Errorf("container %q state is %q, want running", name, c.State)
		}
		if port != 0 {
			inspect, err := d.api.ContainerInspect(ctx, c.ID)
			if err != nil {
				return "", errs.Wrap(err, errs.ErrDockerInspect, "probe.container.inspect")
			}
			p := nat.Port(fmt.Sprintf("%d/tcp", port))
			if len(inspect.NetworkSettings.Ports[p]) == 0 {
				return fmt.Sprintf("Container %s does not publish %d/tcp", name, port),
					fmt.Errorf("container %q: port %d/tcp not published", name, port)
			}
		}
		return fmt.Sprintf("Container %s running", name), nil
	}
	return fmt.Sprintf("Container %s not found", name),
		fmt.Errorf("container %q not found", name)
}

// matchesName reports whether any of the Docker API name entries
// (which carry a leading slash) equals name exactly.
func matchesName(names []string, name string) bool {
	for _, n := range names {
		if strings.TrimPrefix(n, "/") == name {
			return true
		}
	}
	return false
}

// checkContainer resolves the inspector lazily so pulse never touches the
// Docker socket unless a suite actually declares a container check.
func (p *Prober) checkContainer(ctx context.Context, spec v1.CheckSpec, timeout time.Duration) (string, error) {
	if p.docker == nil {
		di, err := newDockerInspector()
		if err != nil {
			return "Docker unreachable", err
		}
		p.docker = di
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return p.docker.ContainerRunning(ctx, spec.Container, spec.Port)
}
