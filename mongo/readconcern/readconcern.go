// Copyright (C) MongoDB, Inc. 2026-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package readconcern defines read concerns for MongoDB operations.
//
// A ReadConcern is immutable once New returns. It may be shared between
// goroutines without synchronization.
//
// For more information about MongoDB read concerns, see
// https://www.mongodb.com/docs/manual/reference/read-concern/
package readconcern

import (
	"fmt"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Well-known read concern levels. The server is the authority on which levels
// it accepts, so New does not restrict the level to this set.
const (
	LevelLocal        = "local"
	LevelMajority     = "majority"
	LevelLinearizable = "linearizable"
	LevelAvailable    = "available"
	LevelSnapshot     = "snapshot"
)

// ErrInvalidArgument indicates that a read concern was constructed from a value of the wrong type.
var ErrInvalidArgument = errors.New("invalid read concern argument")

// ErrEmptyReadConcern indicates that a nil read concern was marshaled.
var ErrEmptyReadConcern = errors.New("a read concern must not be nil to be marshaled")

// A ReadConcern defines a MongoDB read concern, which allows you to control the consistency and
// isolation properties of the data read from replica sets and replica set shards.
type ReadConcern struct {
	level            string
	hasLevel         bool
	atClusterTime    primitive.Timestamp
	hasAtClusterTime bool
}

// Option is an option to provide when creating a ReadConcern.
type Option func(concern *ReadConcern)

var defaultReadConcern = New()

// New constructs a new read concern from the given options.
func New(options ...Option) *ReadConcern {
	concern := &ReadConcern{}

	for _, option := range options {
		option(concern)
	}

	return concern
}

// Default returns the shared read concern with no fields set, which defers to the server's default
// behavior.
func Default() *ReadConcern {
	return defaultReadConcern
}

// Level creates an option that sets the level of a ReadConcern.
func Level(level string) Option {
	return func(concern *ReadConcern) {
		concern.level = level
		concern.hasLevel = true
	}
}

// AtClusterTime creates an option that sets the cluster time a snapshot read reads from.
func AtClusterTime(ts primitive.Timestamp) Option {
	return func(concern *ReadConcern) {
		concern.atClusterTime = ts
		concern.hasAtClusterTime = true
	}
}

// NewFromValues constructs a ReadConcern from untyped values, such as those decoded from a
// configuration map. A nil argument leaves the corresponding field unset. level must be a string
// and atClusterTime must be a primitive.Timestamp (or pointers to them); otherwise the returned
// error wraps ErrInvalidArgument.
func NewFromValues(level, atClusterTime interface{}) (*ReadConcern, error) {
	var opts []Option

	switch l := level.(type) {
	case nil:
	case string:
		opts = append(opts, Level(l))
	case *string:
		if l != nil {
			opts = append(opts, Level(*l))
		}
	default:
		return nil, errors.Wrapf(ErrInvalidArgument, "level must be a string or nil, got %T", level)
	}

	switch ts := atClusterTime.(type) {
	case nil:
	case primitive.Timestamp:
		opts = append(opts, AtClusterTime(ts))
	case *primitive.Timestamp:
		if ts != nil {
			opts = append(opts, AtClusterTime(*ts))
		}
	default:
		return nil, errors.Wrapf(ErrInvalidArgument, "atClusterTime must be a primitive.Timestamp or nil, got %T", atClusterTime)
	}

	return New(opts...), nil
}

// Local returns a ReadConcern that requests data from the instance with no guarantee that the data
// has been written to a majority of the replica set members (i.e. may be rolled back).
func Local() *ReadConcern {
	return New(Level(LevelLocal))
}

// Majority returns a ReadConcern that requests data that has been acknowledged by a majority of the
// replica set members (i.e. the documents read are durable and guaranteed not to roll back).
func Majority() *ReadConcern {
	return New(Level(LevelMajority))
}

// Linearizable returns a ReadConcern that requests data that reflects all successful
// majority-acknowledged writes that completed prior to the start of the read operation.
func Linearizable() *ReadConcern {
	return New(Level(LevelLinearizable))
}

// Available returns a ReadConcern that requests data from an instance with no guarantee that the
// data has been written to a majority of the replica set members (i.e. may be rolled back).
func Available() *ReadConcern {
	return New(Level(LevelAvailable))
}

// Snapshot returns a ReadConcern that requests majority-committed data as it appears across shards
// from a specific single point in time in the recent past.
func Snapshot() *ReadConcern {
	return New(Level(LevelSnapshot))
}

// SnapshotAt returns a snapshot ReadConcern pinned to the given cluster time.
func SnapshotAt(ts primitive.Timestamp) *ReadConcern {
	return New(Level(LevelSnapshot), AtClusterTime(ts))
}

// GetLevel returns the read concern level and whether it was set.
func (rc *ReadConcern) GetLevel() (string, bool) {
	if rc == nil {
		return "", false
	}
	return rc.level, rc.hasLevel
}

// GetAtClusterTime returns the cluster time a snapshot read reads from and whether it was set.
func (rc *ReadConcern) GetAtClusterTime() (primitive.Timestamp, bool) {
	if rc == nil {
		return primitive.Timestamp{}, false
	}
	return rc.atClusterTime, rc.hasAtClusterTime
}

// OKForLegacy reports whether the read concern can be used with wire protocol versions that
// predate read concern support. Only an unset level or "local" qualifies.
func (rc *ReadConcern) OKForLegacy() bool {
	level, ok := rc.GetLevel()
	return !ok || level == LevelLocal
}

// IsEmpty reports whether the document form of the read concern has no fields.
func (rc *ReadConcern) IsEmpty() bool {
	return rc.effective() == canonical{}
}

// canonical holds exactly the fields that appear in the document form.
type canonical struct {
	level            string
	atClusterTime    primitive.Timestamp
	hasAtClusterTime bool
}

func (rc *ReadConcern) effective() canonical {
	if rc == nil {
		return canonical{}
	}
	return canonical{
		level:            rc.level,
		atClusterTime:    rc.atClusterTime,
		hasAtClusterTime: rc.hasAtClusterTime,
	}
}

// Equal reports whether rc and other have the same document form. A nil ReadConcern is equal to
// one with no fields set.
func (rc *ReadConcern) Equal(other *ReadConcern) bool {
	return rc.effective() == other.effective()
}

// Equivalent compares rc against an arbitrary value. ok is false when v is neither a
// ReadConcern nor a *ReadConcern, in which case equal is always false.
func (rc *ReadConcern) Equivalent(v interface{}) (equal, ok bool) {
	switch other := v.(type) {
	case *ReadConcern:
		return rc.Equal(other), true
	case ReadConcern:
		return rc.Equal(&other), true
	default:
		return false, false
	}
}

// String implements the fmt.Stringer interface.
func (rc *ReadConcern) String() string {
	if level, _ := rc.GetLevel(); level != "" {
		return fmt.Sprintf("ReadConcern(%s)", level)
	}
	return "ReadConcern()"
}
