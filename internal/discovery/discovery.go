// Package discovery resolves the Landscape API endpoint from a Consul
// catalog when no direct URI is configured.
package discovery

import (
	"fmt"

	consul "github.com/hashicorp/consul/api"
)

const serviceName = "landscape-api"

type Resolver struct {
	client *consul.Client
}

func New(consulAddr string) (*Resolver, error) {
	config := consul.DefaultConfig()
	config.Address = consulAddr

	client, err := consul.NewClient(config)
	if err != nil {
		return nil, fmt.Errorf("create consul client: %w", err)
	}

	return &Resolver{client: client}, nil
}

// Endpoint returns the API URI of a healthy landscape-api instance. A
// single lookup per invocation is enough; the CLI issues one operation
// and exits.
func (r *Resolver) Endpoint() (string, error) {
	services, _, err := r.client.Health().Service(serviceName, "", true, nil)
	if err != nil {
		return "", fmt.Errorf("query consul: %w", err)
	}

	if len(services) == 0 {
		return "", fmt.Errorf("no healthy %s services found", serviceName)
	}

	service := services[0]
	addr := service.Service.Address
	if addr == "" {
		addr = service.Node.Address
	}

	return fmt.Sprintf("https://%s:%d/api/", addr, service.Service.Port), nil
}
