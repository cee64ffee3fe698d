// Package companymem provides an in-memory company store that honors the same
// unique keys as the companies table. It backs the unit tests of the layers
// above the database.
package companymem

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/jcpaschoal/kangaroute/business/domain/companybus"
	"github.com/jcpaschoal/kangaroute/business/sdk/sqldb"
)

// Store is an in-memory implementation of companybus.Storer.
type Store struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]companybus.Company

	// Err, when set, is returned by every call.
	Err error
}

// NewStore constructs an empty store.
func NewStore() *Store {
	return &Store{
		rows: make(map[int64]companybus.Company),
	}
}

// NewWithTx returns the same store; writes are not rolled back.
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (companybus.Storer, error) {
	return s, nil
}

// Create inserts a company, enforcing the unique keys.
func (s *Store) Create(ctx context.Context, cmp companybus.Company) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return 0, s.Err
	}

	if s.conflict(companybus.Conflict{Email: cmp.Email, AdminUsername: cmp.AdminUsername, TaxID: cmp.TaxID}) {
		return 0, companybus.ErrUniqueCompany
	}

	s.nextID++
	cmp.ID = s.nextID
	s.rows[cmp.ID] = cmp

	return cmp.ID, nil
}

// Update replaces an active company.
func (s *Store) Update(ctx context.Context, cmp companybus.Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}

	old, exists := s.rows[cmp.ID]
	if !exists || !old.IsActive {
		return companybus.ErrNotFound
	}

	if s.conflict(companybus.Conflict{ExcludeID: cmp.ID, Email: cmp.Email, AdminUsername: cmp.AdminUsername, TaxID: cmp.TaxID}) {
		return companybus.ErrUniqueCompany
	}

	cmp.PasswordHash = old.PasswordHash
	cmp.CreatedAt = old.CreatedAt
	cmp.IsActive = old.IsActive
	s.rows[cmp.ID] = cmp

	return nil
}

// TouchUpdatedAt refreshes updated_at.
func (s *Store) TouchUpdatedAt(ctx context.Context, companyID int64, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}

	cmp, exists := s.rows[companyID]
	if !exists {
		return companybus.ErrNotFound
	}

	cmp.UpdatedAt = at
	s.rows[companyID] = cmp

	return nil
}

// HasConflict reports whether another company holds any of the keys.
func (s *Store) HasConflict(ctx context.Context, c companybus.Conflict) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return false, s.Err
	}

	return s.conflict(c), nil
}

// QueryActive returns the active companies, newest first.
func (s *Store) QueryActive(ctx context.Context) ([]companybus.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}

	cmps := make([]companybus.Company, 0, len(s.rows))
	for _, cmp := range s.rows {
		if cmp.IsActive {
			cmps = append(cmps, cmp)
		}
	}

	sort.Slice(cmps, func(i, j int) bool {
		if cmps[i].CreatedAt.Equal(cmps[j].CreatedAt) {
			return cmps[i].ID > cmps[j].ID
		}
		return cmps[i].CreatedAt.After(cmps[j].CreatedAt)
	})

	return cmps, nil
}

// QueryByID returns the active company with the id.
func (s *Store) QueryByID(ctx context.Context, companyID int64) (companybus.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return companybus.Company{}, s.Err
	}

	cmp, exists := s.rows[companyID]
	if !exists || !cmp.IsActive {
		return companybus.Company{}, companybus.ErrNotFound
	}

	return cmp, nil
}

// QueryByUsername returns the active company with the admin username.
func (s *Store) QueryByUsername(ctx context.Context, username string) (companybus.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return companybus.Company{}, s.Err
	}

	for _, cmp := range s.rows {
		if cmp.AdminUsername == username && cmp.IsActive {
			return cmp, nil
		}
	}

	return companybus.Company{}, companybus.ErrNotFound
}

// Deactivate flips a company to inactive.
func (s *Store) Deactivate(companyID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cmp, exists := s.rows[companyID]
	if !exists {
		return errors.New("unknown company")
	}

	cmp.IsActive = false
	s.rows[companyID] = cmp

	return nil
}

// Backdate moves both timestamps of a company back by d.
func (s *Store) Backdate(companyID int64, d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cmp, exists := s.rows[companyID]
	if !exists {
		return errors.New("unknown company")
	}

	cmp.CreatedAt = cmp.CreatedAt.Add(-d)
	cmp.UpdatedAt = cmp.UpdatedAt.Add(-d)
	s.rows[companyID] = cmp

	return nil
}

func (s *Store) conflict(c companybus.Conflict) bool {
	for id, cmp := range s.rows {
		if id == c.ExcludeID {
			continue
		}
		if cmp.Email == c.Email || cmp.AdminUsername == c.AdminUsername || cmp.TaxID == c.TaxID {
			return true
		}
	}

	return false
}
