package chunk

import "iter"

// ReadFunc decodes one chunk of type T from the cursor, leaving the
// cursor positioned immediately after the chunk on success.
type ReadFunc[T any] func(*Cursor) (T, error)

// Sequence yields exactly count chunks decoded contiguously from the
// cursor. Each item carries its own error; after the first failed item
// the iteration stops, since the cursor's position can no longer be
// trusted. Items yielded before the failure remain valid.
func Sequence[T any](c *Cursor, count int, read ReadFunc[T]) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for i := 0; i < count; i++ {
			item, err := read(c)
			if !yield(item, err) || err != nil {
				return
			}
		}
	}
}

// Collect decodes exactly count contiguous chunks into a slice,
// stopping at the first error.
func Collect[T any](c *Cursor, count int, read ReadFunc[T]) ([]T, error) {
	items := make([]T, 0, count)
	for item, err := range Sequence(c, count, read) {
		if err != nil {
			return items, err
		}
		items = append(items, item)
	}
	return items, nil
}
