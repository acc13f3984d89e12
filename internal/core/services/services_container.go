package services

import (
	portsrepo "github.com/slimatic/zakapp-sub006/internal/core/ports/repositories"
	portssvc "github.com/slimatic/zakapp-sub006/internal/core/ports/services"
	"github.com/slimatic/zakapp-sub006/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, priceOracle portssvc.PriceOracle) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Asset = NewAssetService(repos.AssetRepo)
	container.Methodology = NewMethodologyService(repos.MethodologyRepo)
	container.User = NewUserService(repos.UserRepo, cfg.DefaultCurrency)

	// Zakat first since snapshots run calculations through it
	container.Zakat = NewZakatService(repos.AssetRepo, repos.MethodologyRepo, priceOracle, cfg.DefaultCurrency)
	container.Snapshot = NewSnapshotService(repos.SnapshotRepo, repos.AssetRepo, repos.MethodologyRepo, container.Zakat)

	return container
}
