package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const orderNumberPrefix = "ORD-"

// firstOrderSeq is what the counter row starts from when it has to be
// created on the fly; the stored value is the number being issued.
const firstOrderSeq = 1001

// FormatOrderNumber renders a sequence value as a display order number.
func FormatOrderNumber(seq int64) string {
	return fmt.Sprintf("%s%d", orderNumberPrefix, seq)
}

// NextOrderNumber atomically increments the shared order counter and returns
// the formatted order number. No two callers can observe the same value; the
// row lock taken by the upsert serializes concurrent order creations. Any
// failure must abort the enclosing order creation rather than reuse a number.
func NextOrderNumber(tx *gorm.DB) (string, error) {
	var seq int64
	err := tx.Raw(`
		INSERT INTO order_counters (id, name, seq, created_at, updated_at)
		VALUES (?, 'order', ?, now(), now())
		ON CONFLICT (name)
		DO UPDATE SET seq = order_counters.seq + 1, updated_at = now()
		RETURNING seq`,
		uuid.New(), firstOrderSeq,
	).Scan(&seq).Error
	if err != nil {
		return "", err
	}
	if seq == 0 {
		return "", errors.New("order counter returned no sequence value")
	}
	return FormatOrderNumber(seq), nil
}
