package dispatcher

import (
	"slices"
	"testing"

	"monovator/src/types"
)

func TestRequestQueue_UpIsAscending(t *testing.T) {
	q := newRequestQueue(types.MD_Up)
	for _, f := range []int{5, 1, 3} {
		if !q.insert(types.FloorRequest{Floor: f}) {
			t.Errorf("Expected floor %d to be inserted", f)
		}
	}
	if q.insert(types.FloorRequest{Floor: 3}) {
		t.Errorf("Expected duplicate floor 3 to be ignored")
	}
	if got := q.appendFloors(nil); !slices.Equal(got, []int{1, 3, 5}) {
		t.Errorf("Expected [1 3 5], got %v", got)
	}
}

func TestRequestQueue_DownIsDescending(t *testing.T) {
	q := newRequestQueue(types.MD_Down)
	for _, f := range []int{1, 5, 3, 5, -2} {
		q.insert(types.FloorRequest{Floor: f})
	}
	if got := q.appendFloors(nil); !slices.Equal(got, []int{5, 3, 1, -2}) {
		t.Errorf("Expected [5 3 1 -2], got %v", got)
	}
	if !q.contains(-2) || q.contains(4) {
		t.Errorf("contains gave wrong answer for %v", q.appendFloors(nil))
	}
}

func TestRequestQueue_PopServesHeadFirst(t *testing.T) {
	q := newRequestQueue(types.MD_Up)
	if _, ok := q.pop(); ok {
		t.Errorf("Expected pop on empty queue to fail")
	}
	q.insert(types.FloorRequest{Floor: 4})
	q.insert(types.FloorRequest{Floor: 2})

	head, _ := q.head()
	if head.Floor != 2 {
		t.Errorf("Expected head 2, got %d", head.Floor)
	}
	var popped []int
	for !q.empty() {
		req, _ := q.pop()
		popped = append(popped, req.Floor)
	}
	if !slices.Equal(popped, []int{2, 4}) {
		t.Errorf("Expected [2 4], got %v", popped)
	}
	if q.len() != 0 {
		t.Errorf("Expected empty queue, got len %d", q.len())
	}
}
