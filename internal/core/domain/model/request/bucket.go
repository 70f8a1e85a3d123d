package request

import (
	"fmt"
	"strings"

	"marketplace/internal/pkg/errs"
)

// Bucket groups statuses the way the deliveries list presents them.
type Bucket string

const (
	BucketAll       Bucket = "all"
	BucketPending   Bucket = "pending"
	BucketActive    Bucket = "active"
	BucketCompleted Bucket = "completed"
)

// ParseBucket converts a query value to a Bucket. An empty value means BucketAll.
func ParseBucket(s string) (Bucket, error) {
	switch b := Bucket(strings.ToLower(strings.TrimSpace(s))); b {
	case "":
		return BucketAll, nil
	case BucketAll, BucketPending, BucketActive, BucketCompleted:
		return b, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("filter", fmt.Errorf("%q is not a known filter", s))
	}
}

// Contains reports whether a request in status s belongs to the bucket.
// Completed covers both terminal statuses.
func (b Bucket) Contains(s Status) bool {
	switch b {
	case BucketAll:
		return true
	case BucketPending:
		return s == StatusPending
	case BucketActive:
		return s.IsActive()
	case BucketCompleted:
		return s.IsTerminal()
	default:
		return false
	}
}
