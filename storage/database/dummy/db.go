package dummydb

import (
	"sync"

	"checkpoint/core/roster"
)

type (
	DB struct {
		roster *rosterTable
	}

	rosterTable struct {
		sync.RWMutex
		students map[string]*roster.Student // keyed by StudentID
		scanLogs []roster.ScanLog
	}
)

func Open() (*DB, error) {
	db := &DB{
		roster: &rosterTable{students: make(map[string]*roster.Student)},
	}
	return db, nil
}
