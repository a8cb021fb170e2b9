package dom

import (
	"fmt"

	"fortio.org/safecast"
)

// arena stores values contiguously and hands out 1-based handles.
// Handle 0 is reserved for "none".
type arena[T any] struct {
	data []T
}

func newArena[T any](capHint int) *arena[T] {
	return &arena[T]{data: make([]T, 0, capHint)}
}

func (a *arena[T]) allocate(v T) uint32 {
	a.data = append(a.data, v)
	id, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Sprintf("dom: arena overflow: %v", err))
	}
	return id
}

func (a *arena[T]) get(id uint32) *T {
	if id == 0 || int(id) > len(a.data) {
		return nil
	}
	return &a.data[id-1]
}

func (a *arena[T]) len() int {
	return len(a.data)
}
