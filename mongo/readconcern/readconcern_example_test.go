// Copyright (C) MongoDB, Inc. 2026-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package readconcern_test

import (
	"fmt"

	"github.com/ikmak/mongo-readconcern/mongo/readconcern"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Decide whether a read concern can be sent to a server that predates read
// concern support.
func Example_legacy() {
	for _, rc := range []*readconcern.ReadConcern{
		readconcern.Default(),
		readconcern.Local(),
		readconcern.Majority(),
	} {
		fmt.Println(rc, rc.OKForLegacy())
	}

	// Output:
	// ReadConcern() true
	// ReadConcern(local) true
	// ReadConcern(majority) false
}

// Build a snapshot read concern pinned to a cluster time.
func Example_snapshotAt() {
	rc := readconcern.SnapshotAt(primitive.Timestamp{T: 1700000000, I: 1})

	level, _ := rc.GetLevel()
	ts, _ := rc.GetAtClusterTime()
	fmt.Println(level, ts.T, ts.I)
	fmt.Println(len(rc.Document()))

	// Output:
	// snapshot 1700000000 1
	// 2
}

// Construct a read concern from values of unknown type.
func ExampleNewFromValues() {
	rc, err := readconcern.NewFromValues("majority", nil)
	fmt.Println(rc.Document()["level"], err)

	_, err = readconcern.NewFromValues(42, nil)
	fmt.Println(err)

	// Output:
	// majority <nil>
	// level must be a string or nil, got int: invalid read concern argument
}
