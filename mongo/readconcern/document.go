// Copyright (C) MongoDB, Inc. 2026-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package readconcern

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"
)

// Document returns the document form of the read concern. Only fields that are set appear in it:
// "level" when the level is a non-empty string and "atClusterTime" when a cluster time was given.
//
// A new map is allocated on every call. Mutating it does not affect the ReadConcern.
func (rc *ReadConcern) Document() bson.M {
	doc := bson.M{}
	c := rc.effective()
	if c.level != "" {
		doc["level"] = c.level
	}
	if c.hasAtClusterTime {
		doc["atClusterTime"] = c.atClusterTime
	}
	return doc
}

// MarshalBSON implements the bson.Marshaler interface. The elements are written in the order
// level, atClusterTime.
func (rc *ReadConcern) MarshalBSON() ([]byte, error) {
	return bsoncore.BuildDocument(nil, rc.appendElements(nil)), nil
}

// MarshalBSONValue implements the bson.ValueMarshaler interface so a ReadConcern can be embedded
// as the value of a command's readConcern field.
func (rc *ReadConcern) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if rc == nil {
		return 0, nil, ErrEmptyReadConcern
	}

	return bsontype.EmbeddedDocument, bsoncore.BuildDocument(nil, rc.appendElements(nil)), nil
}

func (rc *ReadConcern) appendElements(dst []byte) []byte {
	c := rc.effective()
	if c.level != "" {
		dst = bsoncore.AppendStringElement(dst, "level", c.level)
	}
	if c.hasAtClusterTime {
		dst = bsoncore.AppendTimestampElement(dst, "atClusterTime", c.atClusterTime.T, c.atClusterTime.I)
	}
	return dst
}
