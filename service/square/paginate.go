package square

import (
	"context"
	"fmt"
	"iter"
)

type pageFunc[T any] func(ctx context.Context, cursor string) (items []T, next string, err error)

// paginate threads the continuation cursor through fetch until a page comes
// back without one. Exhaustion ends the sequence; failure yields an error
// first, so callers can always tell the two apart.
func paginate[T any](ctx context.Context, fetch pageFunc[T]) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		seen := make(map[string]struct{})
		cursor := ""
		for {
			if err := ctx.Err(); err != nil {
				yield(zero, err)
				return
			}
			items, next, err := fetch(ctx, cursor)
			if err != nil {
				yield(zero, err)
				return
			}
			for _, item := range items {
				if !yield(item, nil) {
					return
				}
			}
			if next == "" {
				return
			}
			if _, dup := seen[next]; dup {
				yield(zero, &APIError{Op: "paginate", Err: fmt.Errorf("cursor %q repeated", next)})
				return
			}
			seen[next] = struct{}{}
			cursor = next
		}
	}
}

// Collect drains seq, returning everything or the first error.
func Collect[T any](seq iter.Seq2[T, error]) ([]T, error) {
	var out []T
	for item, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}
