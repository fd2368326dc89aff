package clusterplay

// FIFO queue of point indices driving the breadth-first cluster expansion in
// DBSCAN. Popped slots are not reclaimed until the queue drains.
type indexQueue struct {
	items []int
	head  int
}

func newIndexQueue(size int) *indexQueue {
	return &indexQueue{items: make([]int, 0, size)}
}

func (q *indexQueue) Len() int { return len(q.items) - q.head }

func (q *indexQueue) NotEmpty() bool {
	return q.Len() > 0
}

func (q *indexQueue) Push(v int) {
	q.items = append(q.items, v)
}

func (q *indexQueue) Pop() int {
	v := q.items[q.head]
	q.head++

	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	}

	return v
}
