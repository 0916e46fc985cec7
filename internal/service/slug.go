package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/inkpress/blog-service/internal/apperror"
	"github.com/inkpress/blog-service/internal/slugger"
)

type slugProbe func(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error)

// uniqueSlug probes the store for base, then base-1, base-2 and so on until a
// free candidate turns up. The store's unique index stays the final arbiter:
// two concurrent allocations can both see a candidate as free, and the caller
// retries this whole routine when its insert hits the constraint.
func uniqueSlug(ctx context.Context, probe slugProbe, base string, excludeID *uuid.UUID) (string, error) {
	candidate := base
	for attempt := 1; attempt <= maxConflictRetries; attempt++ {
		exists, err := probe(ctx, candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = slugger.WithSuffix(base, attempt)
	}
	return "", fmt.Errorf("no free slug for %q: %w", base, apperror.ErrConflict)
}
