package db

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

// Operation is a function that performs an action and returns an error if it fails.
type Operation func() error

// RetryableError is a function that checks if an error is worth retrying.
type RetryableError func(err error) bool

const DefaultMaxRetries = 3

// Try executes an operation, retrying transient Mongo errors up to
// DefaultMaxRetries times. Duplicate key errors are never retried: they mean
// the record already exists and repeating the write cannot succeed.
func Try(op Operation) error {
	return WithRetries(op, DefaultMaxRetries, IsTransientError)
}

// WithRetries executes an operation with a retry mechanism.
// It attempts the operation up to maxRetries times with a small incremental backoff.
func WithRetries(op Operation, maxRetries int, retryable RetryableError) error {
	var err error
	// Loop for initial attempt (attempt = 0) + maxRetries
	for attempt := 0; attempt <= maxRetries; attempt++ {
		err = op()
		if err == nil {
			return nil // Success
		}

		if attempt == maxRetries {
			break
		}

		if retryable(err) {
			time.Sleep(time.Duration(50*(attempt+1)) * time.Millisecond)
		} else {
			return err // Not retryable, return immediately
		}
	}
	return err // All attempts failed or last attempt failed
}

// IsDuplicateKeyError checks if an error from MongoDB is a duplicate key error
// (code 11000). The billing service maps this onto its "already billed"
// condition via the unique (tenant_id, due_date) index.
func IsDuplicateKeyError(err error) bool {
	var e mongo.WriteException
	if errors.As(err, &e) {
		for _, we := range e.WriteErrors {
			if we.Code == 11000 {
				return true
			}
		}
	}
	// Also check for BulkWriteException, which can contain duplicate key errors
	var bwe mongo.BulkWriteException
	if errors.As(err, &bwe) {
		for _, writeError := range bwe.WriteErrors {
			if writeError.Code == 11000 {
				return true
			}
		}
	}
	return false
}

// IsTransientError reports whether a Mongo error is safe to retry.
func IsTransientError(err error) bool {
	if IsDuplicateKeyError(err) {
		return false
	}
	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) {
		return true
	}
	var ce mongo.CommandError
	return errors.As(err, &ce) && ce.HasErrorLabel("TransientTransactionError")
}
