package tilemap

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingScout struct {
	id         int
	deliveries [][]cp.Vector
	log        *[]int
}

func (s *recordingScout) ReceivePath(waypoints []cp.Vector) {
	s.deliveries = append(s.deliveries, waypoints)
	if s.log != nil {
		*s.log = append(*s.log, s.id)
	}
}

type mortalScout struct {
	recordingScout
	dead bool
}

func (s *mortalScout) Destroyed() bool { return s.dead }

func openQueue(divisor int) *PathQueue {
	g := gridFromRows(
		"....",
		".#..",
		"....",
	)
	return NewPathQueue(NewPathFinder(g, 0), 32, divisor)
}

func TestBatchSize(t *testing.T) {
	q := openQueue(0)
	cases := []struct {
		pending int
		want    int
	}{
		{0, 1},
		{1, 1},
		{2, 1},
		{31, 1},
		{32, 2},
		{40, 2},
		{64, 3},
		{1000, 32},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, q.BatchSize(c.pending), "pending=%d", c.pending)
	}
}

func TestDrainTickForty(t *testing.T) {
	q := openQueue(0)
	scouts := make([]*recordingScout, 40)
	for i := range scouts {
		scouts[i] = &recordingScout{id: i}
		q.Enqueue(scouts[i], TileCoord{0, 0}, TileCoord{3, 2})
	}

	require.Equal(t, 40, q.Pending())
	assert.Equal(t, 2, q.DrainTick())
	assert.Equal(t, 38, q.Pending())

	delivered := 0
	for _, s := range scouts {
		delivered += len(s.deliveries)
	}
	assert.Equal(t, 2, delivered)
	assert.Len(t, scouts[0].deliveries, 1)
	assert.Len(t, scouts[1].deliveries, 1)
	assert.Empty(t, scouts[2].deliveries)
}

func TestDrainPreservesFIFOAndDeliversOnce(t *testing.T) {
	q := openQueue(4)
	var order []int
	scouts := make([]*recordingScout, 25)
	for i := range scouts {
		scouts[i] = &recordingScout{id: i, log: &order}
		to := TileCoord{3, 2}
		if i%3 == 0 {
			// solid goal: still delivered, empty
			to = TileCoord{1, 1}
		}
		q.Enqueue(scouts[i], TileCoord{0, 0}, to)
	}

	ticks := 0
	for q.Pending() > 0 {
		before := q.Pending()
		n := q.DrainTick()
		assert.Equal(t, q.BatchSize(before), n)
		ticks++
		require.Less(t, ticks, 100, "queue never drained")
	}

	require.Len(t, order, 25)
	for i, id := range order {
		assert.Equal(t, i, id)
	}
	for i, s := range scouts {
		require.Len(t, s.deliveries, 1, "scout %d", i)
		if i%3 == 0 {
			assert.Empty(t, s.deliveries[0])
		} else {
			assert.NotEmpty(t, s.deliveries[0])
		}
	}
	assert.Zero(t, q.DrainTick())
}

func TestWaypointsExcludeStart(t *testing.T) {
	q := openQueue(0)
	s := &recordingScout{}
	q.Enqueue(s, TileCoord{0, 0}, TileCoord{2, 0})
	q.DrainTick()

	require.Len(t, s.deliveries, 1)
	assert.Equal(t, []cp.Vector{{X: 48, Y: 16}, {X: 80, Y: 16}}, s.deliveries[0])
}

func TestDestroyedRequesterIsSkipped(t *testing.T) {
	q := openQueue(0)
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	q.SetLogger(log)

	dead := &mortalScout{dead: true}
	alive := &mortalScout{}
	q.Enqueue(dead, TileCoord{0, 0}, TileCoord{3, 0})
	q.Enqueue(alive, TileCoord{0, 0}, TileCoord{3, 0})

	assert.Equal(t, 1, q.DrainTick())
	assert.Empty(t, dead.deliveries)
	require.NotNil(t, hook.LastEntry())
	assert.Contains(t, hook.LastEntry().Message, "destroyed requester")

	assert.Equal(t, 1, q.DrainTick())
	assert.Len(t, alive.deliveries, 1)
}

func TestQueueWithoutGridDeliversEmpty(t *testing.T) {
	q := NewPathQueue(NewPathFinder(nil, 0), 32, 0)
	s := &recordingScout{}
	q.Enqueue(s, TileCoord{0, 0}, TileCoord{2, 2})
	q.DrainTick()
	require.Len(t, s.deliveries, 1)
	assert.Empty(t, s.deliveries[0])
}

func TestQueueCompactsAndClears(t *testing.T) {
	q := openQueue(1)
	for i := 0; i < 200; i++ {
		q.Enqueue(&recordingScout{}, TileCoord{0, 0}, TileCoord{1, 0})
	}
	q.DrainTick() // 200/1+1 capped at pending
	assert.Zero(t, q.Pending())

	for i := 0; i < 100; i++ {
		q.Enqueue(&recordingScout{}, TileCoord{0, 0}, TileCoord{1, 0})
	}
	q.Clear()
	assert.Zero(t, q.Pending())
	q.Enqueue(nil, TileCoord{}, TileCoord{})
	assert.Zero(t, q.Pending(), "nil requester ignored")
}
