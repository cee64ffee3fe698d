// Package slotmem provides an in-memory slot store that honors the per-vehicle
// name constraint and the ownership joins of the slots table. It backs the
// unit tests of the layers above the database.
package slotmem

import (
	"context"
	"sort"
	"sync"

	"github.com/jcpaschoal/kangaroute/business/domain/slotbus"
	"github.com/jcpaschoal/kangaroute/business/sdk/sqldb"
	"github.com/jcpaschoal/kangaroute/business/types/name"
)

// Owner reports whether a vehicle is active and owned by a company.
type Owner interface {
	Owned(companyID int64, vehicleID int64) bool
}

// Store is an in-memory implementation of slotbus.Storer.
type Store struct {
	mu     sync.Mutex
	owner  Owner
	nextID int64
	rows   map[int64]slotbus.Slot

	// Err, when set, is returned by every call.
	Err error
}

// NewStore constructs an empty store that resolves vehicle ownership through
// the owner.
func NewStore(owner Owner) *Store {
	return &Store{
		owner: owner,
		rows:  make(map[int64]slotbus.Slot),
	}
}

// NewWithTx returns the same store; writes are not rolled back.
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (slotbus.Storer, error) {
	return s, nil
}

// Create inserts a slot, enforcing the name constraint.
func (s *Store) Create(ctx context.Context, slt slotbus.Slot) (slotbus.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return slotbus.Slot{}, s.Err
	}

	if s.nameInUse(slt.VehicleID, slt.Name, 0) {
		return slotbus.Slot{}, slotbus.ErrUniqueName
	}

	s.nextID++
	slt.ID = s.nextID
	s.rows[slt.ID] = slt

	return slt, nil
}

// Update replaces a slot that sits in an active vehicle of the company.
func (s *Store) Update(ctx context.Context, companyID int64, slt slotbus.Slot) (slotbus.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return slotbus.Slot{}, s.Err
	}

	old, exists := s.rows[slt.ID]
	if !exists || !s.owner.Owned(companyID, old.VehicleID) {
		return slotbus.Slot{}, slotbus.ErrNotFound
	}

	if s.nameInUse(old.VehicleID, slt.Name, slt.ID) {
		return slotbus.Slot{}, slotbus.ErrUniqueName
	}

	slt.VehicleID = old.VehicleID
	slt.CreatedAt = old.CreatedAt
	s.rows[slt.ID] = slt

	return slt, nil
}

// Delete removes a slot that sits in an active vehicle of the company.
func (s *Store) Delete(ctx context.Context, companyID int64, slotID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}

	slt, exists := s.rows[slotID]
	if !exists || !s.owner.Owned(companyID, slt.VehicleID) {
		return slotbus.ErrNotFound
	}

	delete(s.rows, slotID)

	return nil
}

// NameInUse reports whether another slot of the vehicle has the name.
func (s *Store) NameInUse(ctx context.Context, vehicleID int64, nme name.Name, excludeID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return false, s.Err
	}

	return s.nameInUse(vehicleID, nme, excludeID), nil
}

// QueryByVehicle returns the slots of the vehicle, newest first.
func (s *Store) QueryByVehicle(ctx context.Context, vehicleID int64) ([]slotbus.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}

	slts := make([]slotbus.Slot, 0)
	for _, slt := range s.rows {
		if slt.VehicleID == vehicleID {
			slts = append(slts, slt)
		}
	}

	sort.Slice(slts, func(i, j int) bool {
		if slts[i].CreatedAt.Equal(slts[j].CreatedAt) {
			return slts[i].ID > slts[j].ID
		}
		return slts[i].CreatedAt.After(slts[j].CreatedAt)
	})

	return slts, nil
}

// QueryByID returns the slot if its vehicle is active and owned by the
// company.
func (s *Store) QueryByID(ctx context.Context, companyID int64, slotID int64) (slotbus.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return slotbus.Slot{}, s.Err
	}

	slt, exists := s.rows[slotID]
	if !exists || !s.owner.Owned(companyID, slt.VehicleID) {
		return slotbus.Slot{}, slotbus.ErrNotFound
	}

	return slt, nil
}

func (s *Store) nameInUse(vehicleID int64, nme name.Name, excludeID int64) bool {
	for id, slt := range s.rows {
		if id != excludeID && slt.VehicleID == vehicleID && slt.Name.Equal(nme) {
			return true
		}
	}

	return false
}
