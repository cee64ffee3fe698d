// Package companycache contains company related CRUD functionality with caching.
package companycache

import (
	"context"
	"strconv"
	"time"

	"github.com/jcpaschoal/kangaroute/business/domain/companybus"
	"github.com/jcpaschoal/kangaroute/business/sdk/sqldb"
	"github.com/jcpaschoal/kangaroute/foundation/logger"
	"github.com/viccon/sturdyc"
)

// Store manages the set of APIs for company data and caching. Only lookups by
// id are cached since that is the path every authenticated request takes.
type Store struct {
	log    *logger.Logger
	storer companybus.Storer
	cache  *sturdyc.Client[companybus.Company]
}

// NewStore constructs the api for data and caching access.
func NewStore(log *logger.Logger, storer companybus.Storer, ttl time.Duration) *Store {
	const capacity = 10000
	const numShards = 10
	const evictionPercentage = 10

	return &Store{
		log:    log,
		storer: storer,
		cache:  sturdyc.New[companybus.Company](capacity, numShards, ttl, evictionPercentage),
	}
}

// NewWithTx constructs a new Store value replacing the storer with one that
// is inside a transaction. The cache is shared.
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (companybus.Storer, error) {
	storer, err := s.storer.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	return &Store{
		log:    s.log,
		storer: storer,
		cache:  s.cache,
	}, nil
}

// Create inserts a new company. Nothing is cached until it is read.
func (s *Store) Create(ctx context.Context, cmp companybus.Company) (int64, error) {
	return s.storer.Create(ctx, cmp)
}

// Update replaces a company and evicts it from the cache.
func (s *Store) Update(ctx context.Context, cmp companybus.Company) error {
	if err := s.storer.Update(ctx, cmp); err != nil {
		return err
	}

	s.deleteCache(cmp.ID)

	return nil
}

// TouchUpdatedAt refreshes updated_at and evicts the company from the cache.
func (s *Store) TouchUpdatedAt(ctx context.Context, companyID int64, at time.Time) error {
	if err := s.storer.TouchUpdatedAt(ctx, companyID, at); err != nil {
		return err
	}

	s.deleteCache(companyID)

	return nil
}

// HasConflict always goes to the database.
func (s *Store) HasConflict(ctx context.Context, c companybus.Conflict) (bool, error) {
	return s.storer.HasConflict(ctx, c)
}

// QueryActive always goes to the database.
func (s *Store) QueryActive(ctx context.Context) ([]companybus.Company, error) {
	return s.storer.QueryActive(ctx)
}

// QueryByID gets the specified company from the cache or the database.
func (s *Store) QueryByID(ctx context.Context, companyID int64) (companybus.Company, error) {
	if cmp, exists := s.readCache(companyID); exists {
		return cmp, nil
	}

	cmp, err := s.storer.QueryByID(ctx, companyID)
	if err != nil {
		return companybus.Company{}, err
	}

	s.writeCache(cmp)

	return cmp, nil
}

// QueryByUsername always goes to the database so the password hash checked
// at login is current.
func (s *Store) QueryByUsername(ctx context.Context, username string) (companybus.Company, error) {
	return s.storer.QueryByUsername(ctx, username)
}

// =============================================================================

func key(companyID int64) string {
	return strconv.FormatInt(companyID, 10)
}

func (s *Store) readCache(companyID int64) (companybus.Company, bool) {
	return s.cache.Get(key(companyID))
}

func (s *Store) writeCache(cmp companybus.Company) {
	s.cache.Set(key(cmp.ID), cmp)
}

func (s *Store) deleteCache(companyID int64) {
	s.cache.Delete(key(companyID))
}
