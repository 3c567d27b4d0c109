package dxf

import "github.com/cadgraph/cadgraph.go/pkg/models"

// Queue holds the objects discovered while writing one section that belong
// to the OBJECTS section. An object is queued at most once per write, even
// when it is reached again after being drained.
type Queue struct {
	items []models.CadObject
	seen  map[models.CadObject]struct{}
}

func NewQueue() *Queue {
	return &Queue{seen: make(map[models.CadObject]struct{})}
}

// Push queues obj and reports whether it was new.
func (q *Queue) Push(obj models.CadObject) bool {
	if isNilValue(obj) {
		return false
	}
	if _, ok := q.seen[obj]; ok {
		return false
	}
	q.seen[obj] = struct{}{}
	q.items = append(q.items, obj)
	return true
}

// PushFront queues obj ahead of everything already queued and reports
// whether it was new.
func (q *Queue) PushFront(obj models.CadObject) bool {
	if isNilValue(obj) {
		return false
	}
	if _, ok := q.seen[obj]; ok {
		return false
	}
	q.seen[obj] = struct{}{}
	q.items = append([]models.CadObject{obj}, q.items...)
	return true
}

// Pop removes the oldest object.
func (q *Queue) Pop() (models.CadObject, bool) {
	if len(q.items) == 0 {
		return nil, false
	}
	obj := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	return obj, true
}

func (q *Queue) Len() int { return len(q.items) }

// Seen reports whether obj was ever pushed.
func (q *Queue) Seen(obj models.CadObject) bool {
	_, ok := q.seen[obj]
	return ok
}
