// Package vehiclemem provides an in-memory vehicle store that honors the
// per-company active plate index. It backs the unit tests of the layers above
// the database.
package vehiclemem

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jcpaschoal/kangaroute/business/domain/vehiclebus"
	"github.com/jcpaschoal/kangaroute/business/sdk/sqldb"
	"github.com/jcpaschoal/kangaroute/business/types/plate"
)

// Store is an in-memory implementation of vehiclebus.Storer.
type Store struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]vehiclebus.Vehicle

	// Err, when set, is returned by every call.
	Err error
}

// NewStore constructs an empty store.
func NewStore() *Store {
	return &Store{
		rows: make(map[int64]vehiclebus.Vehicle),
	}
}

// NewWithTx returns the same store; writes are not rolled back.
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (vehiclebus.Storer, error) {
	return s, nil
}

// Create inserts a vehicle, enforcing the active plate index.
func (s *Store) Create(ctx context.Context, vcl vehiclebus.Vehicle) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return 0, s.Err
	}

	if s.plateInUse(vcl.CompanyID, vcl.LicensePlate, 0) {
		return 0, vehiclebus.ErrUniquePlate
	}

	s.nextID++
	vcl.ID = s.nextID
	s.rows[vcl.ID] = vcl

	return vcl.ID, nil
}

// Update replaces an active vehicle owned by the same company.
func (s *Store) Update(ctx context.Context, vcl vehiclebus.Vehicle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}

	old, exists := s.rows[vcl.ID]
	if !exists || !old.IsActive || old.CompanyID != vcl.CompanyID {
		return vehiclebus.ErrNotFound
	}

	if s.plateInUse(vcl.CompanyID, vcl.LicensePlate, vcl.ID) {
		return vehiclebus.ErrUniquePlate
	}

	vcl.CreatedAt = old.CreatedAt
	vcl.IsActive = true
	s.rows[vcl.ID] = vcl

	return nil
}

// Deactivate soft deletes an active vehicle owned by the company.
func (s *Store) Deactivate(ctx context.Context, companyID int64, vehicleID int64, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}

	vcl, exists := s.rows[vehicleID]
	if !exists || !vcl.IsActive || vcl.CompanyID != companyID {
		return vehiclebus.ErrNotFound
	}

	vcl.IsActive = false
	vcl.UpdatedAt = at
	s.rows[vehicleID] = vcl

	return nil
}

// PlateInUse reports whether another active vehicle of the company holds the
// plate.
func (s *Store) PlateInUse(ctx context.Context, companyID int64, lp plate.Plate, excludeID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return false, s.Err
	}

	return s.plateInUse(companyID, lp, excludeID), nil
}

// QueryByCompany returns the active vehicles of the company, newest first.
func (s *Store) QueryByCompany(ctx context.Context, companyID int64) ([]vehiclebus.Vehicle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}

	vcls := make([]vehiclebus.Vehicle, 0)
	for _, vcl := range s.rows {
		if vcl.IsActive && vcl.CompanyID == companyID {
			vcls = append(vcls, vcl)
		}
	}

	sort.Slice(vcls, func(i, j int) bool {
		if vcls[i].CreatedAt.Equal(vcls[j].CreatedAt) {
			return vcls[i].ID > vcls[j].ID
		}
		return vcls[i].CreatedAt.After(vcls[j].CreatedAt)
	})

	return vcls, nil
}

// QueryByID returns the active vehicle owned by the company.
func (s *Store) QueryByID(ctx context.Context, companyID int64, vehicleID int64) (vehiclebus.Vehicle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return vehiclebus.Vehicle{}, s.Err
	}

	vcl, exists := s.rows[vehicleID]
	if !exists || !vcl.IsActive || vcl.CompanyID != companyID {
		return vehiclebus.Vehicle{}, vehiclebus.ErrNotFound
	}

	return vcl, nil
}

// Owned reports whether the vehicle is active and owned by the company. The
// slot memory store uses it to mirror the ownership joins of the slots table.
func (s *Store) Owned(companyID int64, vehicleID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	vcl, exists := s.rows[vehicleID]

	return exists && vcl.IsActive && vcl.CompanyID == companyID
}

func (s *Store) plateInUse(companyID int64, lp plate.Plate, excludeID int64) bool {
	for id, vcl := range s.rows {
		if id == excludeID || !vcl.IsActive || vcl.CompanyID != companyID {
			continue
		}
		if vcl.LicensePlate.Equal(lp) {
			return true
		}
	}

	return false
}
