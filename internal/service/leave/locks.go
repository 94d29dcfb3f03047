package leave

import "sync"

// employeeLocks serializes submissions per employee so two concurrent
// requests cannot both pass the overlap check before either is persisted.
type employeeLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newEmployeeLocks() *employeeLocks {
	return &employeeLocks{locks: make(map[int64]*sync.Mutex)}
}

func (l *employeeLocks) lock(employeeID int64) (unlock func()) {
	l.mu.Lock()
	m, ok := l.locks[employeeID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[employeeID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
