package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/slimatic/zakapp-sub006/internal/core/ports/repositories"
	"github.com/slimatic/zakapp-sub006/internal/platform/crypto"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool, cipher *crypto.FieldCipher) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AssetRepo:       newPgxAssetRepository(dbPool),
		SnapshotRepo:    newPgxSnapshotRepository(dbPool, cipher),
		MethodologyRepo: newPgxMethodologyRepository(dbPool),
		UserRepo:        newPgxUserRepository(dbPool),
	}
}
