package dispatcher

import (
	"slices"

	"monovator/src/types"
)

// requestQueue holds the pending stops for one sweep direction, nearest
// stop first: ascending floors for MD_Up, descending for MD_Down. Each
// floor appears at most once.
type requestQueue struct {
	dir  types.MotorDirection
	reqs []types.FloorRequest
}

func newRequestQueue(dir types.MotorDirection) *requestQueue {
	return &requestQueue{dir: dir}
}

// compare orders floors along the sweep.
func (q *requestQueue) compare(a, b int) int {
	if q.dir == types.MD_Down {
		return b - a
	}
	return a - b
}

// insert adds req at its sorted position. It reports false and leaves the
// queue untouched if the floor is already queued.
func (q *requestQueue) insert(req types.FloorRequest) bool {
	i, found := slices.BinarySearchFunc(q.reqs, req.Floor, func(r types.FloorRequest, floor int) int {
		return q.compare(r.Floor, floor)
	})
	if found {
		return false
	}
	q.reqs = slices.Insert(q.reqs, i, req)
	return true
}

func (q *requestQueue) contains(floor int) bool {
	return slices.ContainsFunc(q.reqs, func(r types.FloorRequest) bool {
		return r.Floor == floor
	})
}

func (q *requestQueue) head() (types.FloorRequest, bool) {
	if len(q.reqs) == 0 {
		return types.FloorRequest{}, false
	}
	return q.reqs[0], true
}

func (q *requestQueue) pop() (types.FloorRequest, bool) {
	req, ok := q.head()
	if !ok {
		return req, false
	}
	q.reqs[0] = types.FloorRequest{}
	q.reqs = q.reqs[1:]
	return req, true
}

func (q *requestQueue) len() int {
	return len(q.reqs)
}

func (q *requestQueue) empty() bool {
	return len(q.reqs) == 0
}

// appendFloors appends the queued floors in service order to dst.
func (q *requestQueue) appendFloors(dst []int) []int {
	for _, r := range q.reqs {
		dst = append(dst, r.Floor)
	}
	return dst
}
