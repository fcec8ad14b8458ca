// Package memstore is an in-process store backend. It is selected with
// STORE_DRIVER=memory for local development and backs the handler and
// service tests. All collections share one mutex, so every operation,
// including DeleteMany, is atomic.
package memstore

import (
	"sort"
	"sync"
	"time"

	"github.com/iliyamo/medicamp-server/internal/model"
)

// DB holds every collection.
type DB struct {
	mu            sync.RWMutex
	users         map[model.ID]model.User
	camps         map[model.ID]model.Camp
	registrations map[model.ID]model.Registration
	payments      map[model.ID]model.Payment
	reviews       map[model.ID]model.Review
}

// New returns an empty DB.
func New() *DB {
	return &DB{
		users:         map[model.ID]model.User{},
		camps:         map[model.ID]model.Camp{},
		registrations: map[model.ID]model.Registration{},
		payments:      map[model.ID]model.Payment{},
		reviews:       map[model.ID]model.Review{},
	}
}

// sortByTime orders values oldest first, falling back to id so listings
// are stable.
func sortByTime[T any](vals []T, at func(T) time.Time, id func(T) model.ID) {
	sort.Slice(vals, func(i, j int) bool {
		ti, tj := at(vals[i]), at(vals[j])
		if !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return id(vals[i]) < id(vals[j])
	})
}

func inserted(id model.ID) model.InsertResult {
	return model.InsertResult{Acknowledged: true, InsertedID: id}
}
