// Package cursor turns a gorm query into a lazy iter.Seq2 backed by a
// database cursor.
package cursor

import (
	"context"
	"iter"

	"gorm.io/gorm"
)

// Seq yields one domain value per row. Each range over the sequence runs the
// query again on a fresh session, so a sequence can be consumed more than
// once. Iteration stops at the first error, which is yielded with the zero
// value. Breaking out of the range closes the cursor.
func Seq[D any, T any](
	ctx context.Context,
	db *gorm.DB,
	scope func(*gorm.DB) *gorm.DB,
	toDomain func(D) (T, error),
) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T

		tx := scope(db.WithContext(ctx).Session(&gorm.Session{}).Model(new(D)))
		rows, err := tx.Rows()
		if err != nil {
			yield(zero, err)
			return
		}
		defer rows.Close()

		for rows.Next() {
			var dto D
			if err = tx.ScanRows(rows, &dto); err != nil {
				yield(zero, err)
				return
			}

			item, mapErr := toDomain(dto)
			if mapErr != nil {
				yield(zero, mapErr)
				return
			}
			if !yield(item, nil) {
				return
			}
		}

		if err = rows.Err(); err != nil {
			yield(zero, err)
		}
	}
}
