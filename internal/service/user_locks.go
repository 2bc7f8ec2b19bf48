package service

import "sync"

// UserLocks serializes cart mutations and checkout commits per user. Requests
// for different users never contend. Shared by CartService and OrderService
// so a checkout cannot interleave with a cart edit for the same user.
type UserLocks struct {
	mutexes sync.Map
}

// NewUserLocks creates a new per-user lock table.
func NewUserLocks() *UserLocks {
	return &UserLocks{}
}

// Lock acquires the user's mutex and returns the unlock function.
func (l *UserLocks) Lock(username string) func() {
	value, _ := l.mutexes.LoadOrStore(username, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
