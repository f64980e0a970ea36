package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"
)

var (
	// ErrNotFound is returned when no record matches the identifier.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a write violates a unique index.
	ErrDuplicate = errors.New("duplicate key")
)

const (
	uniqueViolation = "23505"
	// connectionException is the SQLSTATE class for lost or refused connections.
	connectionException = "08"
	// serverShutdown prefixes the admin shutdown and crash recovery codes.
	serverShutdown = "57P"
)

// base carries the pool and the per-call timeout shared by every Postgres repository.
type base struct {
	db      *sqlx.DB
	timeout time.Duration
}

func (b base) ctx(ctx context.Context) (context.Context, context.CancelFunc) {
	if b.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, b.timeout)
}

// translate maps driver errors onto the package sentinels and adds op context to the rest.
func translate(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
		return fmt.Errorf("%s: %w", op, ErrDuplicate)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// IsUnavailable reports whether err means the backing store could not be reached or did not
// answer in time, as opposed to rejecting the operation itself.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, mongo.ErrClientDisconnected) {
		return true
	}
	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) {
		return true
	}
	var selErr topology.ServerSelectionError
	if errors.As(err, &selErr) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code.Class()) == connectionException ||
			strings.HasPrefix(string(pqErr.Code), serverShutdown)
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// expectOne turns a zero-row write into ErrNotFound.
func expectOne(op string, res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// likePattern builds a case-insensitive substring pattern with LIKE wildcards escaped.
func likePattern(search string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(search)) + "%"
}
