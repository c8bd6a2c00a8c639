package repo

import (
	"go.mup.dev/mup/internal/core/domain"
	"go.mup.dev/mup/internal/core/ports"
	"go.trai.ch/zerr"
)

// Registry implements ports.RepositoryRegistry over the known variants.
type Registry struct {
	clients map[domain.Repository]ports.RepositoryClient
}

// NewRegistry builds a registry over the given clients.
func NewRegistry(clients ...ports.RepositoryClient) *Registry {
	r := &Registry{clients: make(map[domain.Repository]ports.RepositoryClient, len(clients))}
	for _, c := range clients {
		r.clients[c.Repository()] = c
	}
	return r
}

// NewDefaultRegistry builds the production registry: Modrinth, Hangar and the
// CurseForge stub.
func NewDefaultRegistry() *Registry {
	return NewRegistry(NewModrinth(), NewHangar(), NewCurseForge())
}

// Client returns the client for the repository.
func (r *Registry) Client(repo domain.Repository) (ports.RepositoryClient, error) {
	c, ok := r.clients[repo]
	if !ok {
		return nil, zerr.With(domain.ErrUnknownRepository, "repository", string(repo))
	}
	return c, nil
}
