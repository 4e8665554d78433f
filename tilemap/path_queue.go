package tilemap

import (
	"github.com/jakecoffman/cp"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/tileshooter/logger"
)

// DefaultBatchDivisor controls how fast the queue drains as it grows: a
// backlog of n requests resolves n/DefaultBatchDivisor+1 per tick.
const DefaultBatchDivisor = 32

// Scout is anything that wants paths delivered.
type Scout interface {
	ReceivePath(waypoints []cp.Vector)
}

// Liveness lets a Scout opt out of deliveries once it has been destroyed.
type Liveness interface {
	Destroyed() bool
}

// PathRequest is one outstanding route query.
type PathRequest struct {
	Requester Scout
	From      TileCoord
	To        TileCoord
}

// PathQueue defers pathfinding across ticks. Requests are resolved in FIFO
// order, a throttled batch per DrainTick.
type PathQueue struct {
	finder   *PathFinder
	tileSize float64
	divisor  int

	items []PathRequest
	head  int

	log logrus.FieldLogger
}

// NewPathQueue creates a queue resolving requests with finder. divisor <= 0
// selects DefaultBatchDivisor.
func NewPathQueue(finder *PathFinder, tileSize float64, divisor int) *PathQueue {
	if divisor <= 0 {
		divisor = DefaultBatchDivisor
	}
	return &PathQueue{
		finder:   finder,
		tileSize: tileSize,
		divisor:  divisor,
		log:      logger.For("path_queue"),
	}
}

// SetLogger replaces the queue's logger.
func (q *PathQueue) SetLogger(l logrus.FieldLogger) {
	if q == nil || l == nil {
		return
	}
	q.log = l
}

// Enqueue appends a request. It never blocks and never rejects.
func (q *PathQueue) Enqueue(requester Scout, from, to TileCoord) {
	if q == nil || requester == nil {
		return
	}
	q.items = append(q.items, PathRequest{Requester: requester, From: from, To: to})
}

// Pending returns the number of queued requests.
func (q *PathQueue) Pending() int {
	if q == nil {
		return 0
	}
	return len(q.items) - q.head
}

// BatchSize returns how many requests a drain resolves with pending queued.
func (q *PathQueue) BatchSize(pending int) int {
	if pending <= 1 {
		return 1
	}
	divisor := DefaultBatchDivisor
	if q != nil {
		divisor = q.divisor
	}
	return pending/divisor + 1
}

// DrainTick resolves one throttled batch and returns how many requests were
// dequeued. Each live requester receives exactly one synchronous delivery,
// possibly empty.
func (q *PathQueue) DrainTick() int {
	pending := q.Pending()
	if pending == 0 {
		return 0
	}
	n := min(q.BatchSize(pending), pending)
	for i := 0; i < n; i++ {
		q.resolve(q.pop())
	}
	if n > 1 {
		q.log.WithFields(logrus.Fields{
			"resolved":  n,
			"remaining": q.Pending(),
		}).Debug("drained path batch")
	}
	return n
}

// Update drains one batch; it lets the queue run as a post-update system.
func (q *PathQueue) Update(float64) {
	q.DrainTick()
}

// Clear drops every queued request without delivering.
func (q *PathQueue) Clear() {
	if q == nil {
		return
	}
	q.items = nil
	q.head = 0
}

func (q *PathQueue) pop() PathRequest {
	req := q.items[q.head]
	q.items[q.head] = PathRequest{}
	q.head++
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	} else if q.head >= 32 && q.head*2 >= len(q.items) {
		n := copy(q.items, q.items[q.head:])
		q.items = q.items[:n]
		q.head = 0
	}
	return req
}

func (q *PathQueue) resolve(req PathRequest) {
	if live, ok := req.Requester.(Liveness); ok && live.Destroyed() {
		q.log.WithFields(logrus.Fields{
			"from": req.From,
			"to":   req.To,
		}).Debug("dropped path request for destroyed requester")
		return
	}
	req.Requester.ReceivePath(q.waypoints(req.From, req.To))
}

// waypoints converts a tile path to tile-centre waypoints, excluding the
// already-occupied start tile.
func (q *PathQueue) waypoints(from, to TileCoord) []cp.Vector {
	path := q.finder.FindPath(from, to)
	if len(path) < 2 {
		return nil
	}
	return tilePathToWorld(path[1:], q.tileSize)
}
