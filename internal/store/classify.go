// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Oleg Katev

package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// Constraint kinds reported inside [IntegrityError].
const (
	ConstraintForeignKey = "foreign_key"
	ConstraintUnique     = "unique"
	ConstraintCheck      = "check"
	ConstraintNotNull    = "not_null"
	constraintOther      = "constraint"
)

// classifyConstraint inspects a driver error and reports the violated
// constraint kind. The second return is false when err is not a constraint
// violation at all (e.g. a connection failure), in which case the caller
// wraps it as a plain execution error instead of an [IntegrityError].
//
// Both supported drivers are recognised: mattn/go-sqlite3 extended result
// codes and PostgreSQL class-23 codes via pgerrcode.
func classifyConstraint(err error) (string, bool) {
	var se sqlite3.Error
	if errors.As(err, &se) {
		if se.Code != sqlite3.ErrConstraint {
			return "", false
		}
		switch se.ExtendedCode {
		case sqlite3.ErrConstraintForeignKey:
			return ConstraintForeignKey, true
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return ConstraintUnique, true
		case sqlite3.ErrConstraintCheck:
			return ConstraintCheck, true
		case sqlite3.ErrConstraintNotNull:
			return ConstraintNotNull, true
		default:
			return constraintOther, true
		}
	}

	var pe *pgconn.PgError
	if errors.As(err, &pe) {
		switch pe.Code {
		case pgerrcode.ForeignKeyViolation:
			return ConstraintForeignKey, true
		case pgerrcode.UniqueViolation:
			return ConstraintUnique, true
		case pgerrcode.CheckViolation:
			return ConstraintCheck, true
		case pgerrcode.NotNullViolation:
			return ConstraintNotNull, true
		case pgerrcode.IntegrityConstraintViolation, pgerrcode.RestrictViolation:
			return constraintOther, true
		}
		return "", false
	}

	return "", false
}

// integrityOrExec converts a write failure into either an [IntegrityError]
// carrying the node id and constraint kind, or a wrapped execution error.
func integrityOrExec(err error, nodeID string) error {
	if kind, ok := classifyConstraint(err); ok {
		return &IntegrityError{NodeID: nodeID, Constraint: kind, Err: err}
	}
	return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
}
