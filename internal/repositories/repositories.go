package repository

import (
	"github.com/dlcastillo/storefront/internal/config"
	"github.com/dlcastillo/storefront/internal/gateway"
)

// Repositories bundles every table-scoped accessor behind one gateway
// connection.
type Repositories struct {
	Gateway *gateway.Client
	Product ProductRepository
	Order   OrderRepository
	User    UserRepository
	Profile ProfileRepository
}

func New(cfg *config.Config) (*Repositories, error) {

	gw, err := gateway.New(&cfg.Gateway)
	if err != nil {
		return nil, err
	}

	return &Repositories{
		Gateway: gw,
		Product: NewProductRepo(gw),
		Order:   NewOrderRepo(gw),
		User:    NewUserRepo(gw),
		Profile: NewProfileRepo(gw),
	}, nil
}

func (r *Repositories) Close() error {
	return r.Gateway.Close()
}
