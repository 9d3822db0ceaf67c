package state

import "github.com/itchan-dev/forumstate/shared/domain"

type entity struct {
	thread domain.Thread
	refs   int
}

// entityTable is the one copy of every thread that some view currently shows.
// Views take a reference per id they hold; an entry is evicted when its last
// reference is released.
//
// Every load replaces the shared copy, so the open detail thread shows
// whatever the latest resolving fetch returned, a list fetch included, even
// when that fetch was issued before the detail one.
type entityTable struct {
	threads map[domain.ThreadId]*entity
}

func newEntityTable() *entityTable {
	return &entityTable{threads: make(map[domain.ThreadId]*entity)}
}

// hold stores thread, replacing any previous copy, and takes one reference.
func (t *entityTable) hold(thread domain.Thread) {
	e, ok := t.threads[thread.Id]
	if !ok {
		e = &entity{}
		t.threads[thread.Id] = e
	}
	e.thread = thread.Clone()
	e.refs++
}

// replace swaps the stored copy of an already held thread without taking
// another reference.
func (t *entityTable) replace(thread domain.Thread) {
	if e, ok := t.threads[thread.Id]; ok {
		e.thread = thread.Clone()
	}
}

func (t *entityTable) release(id domain.ThreadId) {
	e, ok := t.threads[id]
	if !ok {
		return
	}
	e.refs--
	if e.refs <= 0 {
		delete(t.threads, id)
	}
}

func (t *entityTable) get(id domain.ThreadId) *domain.Thread {
	e, ok := t.threads[id]
	if !ok {
		return nil
	}
	return &e.thread
}

func (t *entityTable) size() int {
	return len(t.threads)
}
