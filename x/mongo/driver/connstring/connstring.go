// Copyright (C) MongoDB, Inc. 2026-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package connstring extracts read concern settings from MongoDB connection strings.
package connstring

import (
	"net/url"
	"strings"

	"github.com/ikmak/mongo-readconcern/mongo/readconcern"
	"github.com/pkg/errors"
)

const (
	// SchemeMongoDB is the scheme for a MongoDB connection string.
	SchemeMongoDB = "mongodb"
	// SchemeMongoDBSRV is the scheme for a MongoDB SRV connection string.
	SchemeMongoDBSRV = "mongodb+srv"
)

// ConnString represents a connection string to mongodb.
type ConnString struct {
	Original         string
	Scheme           string
	Hosts            []string
	Database         string
	ReadConcernLevel string

	UnknownOptions map[string][]string
}

// Parse parses the provided uri and returns a ConnString object.
func Parse(s string) (ConnString, error) {
	p := parser{cs: ConnString{Original: s}}
	if err := p.parse(s); err != nil {
		return ConnString{}, errors.Wrap(err, "error parsing uri")
	}
	return p.cs, nil
}

// ReadConcern returns the read concern named by the readConcernLevel option, or nil when the
// option was not given.
func (cs ConnString) ReadConcern() *readconcern.ReadConcern {
	if cs.ReadConcernLevel == "" {
		return nil
	}
	return readconcern.New(readconcern.Level(cs.ReadConcernLevel))
}

type parser struct {
	cs ConnString

	readConcernLevelSet bool
}

func (p *parser) parse(original string) error {
	var uri string
	switch {
	case strings.HasPrefix(original, SchemeMongoDBSRV+"://"):
		p.cs.Scheme = SchemeMongoDBSRV
		uri = original[len(SchemeMongoDBSRV)+3:]
	case strings.HasPrefix(original, SchemeMongoDB+"://"):
		p.cs.Scheme = SchemeMongoDB
		uri = original[len(SchemeMongoDB)+3:]
	default:
		return errors.New(`scheme must be "mongodb" or "mongodb+srv"`)
	}

	hosts := uri
	rest := ""
	if idx := strings.IndexAny(uri, "/?"); idx != -1 {
		hosts = uri[:idx]
		rest = uri[idx:]
	}

	// credentials are not interpreted here, but they must not be mistaken for hosts
	if idx := strings.LastIndex(hosts, "@"); idx != -1 {
		hosts = hosts[idx+1:]
	}

	for _, host := range strings.Split(hosts, ",") {
		if host == "" {
			return errors.New("must have at least 1 host and no empty hosts")
		}
		h, err := url.QueryUnescape(host)
		if err != nil {
			return errors.Wrap(err, "invalid host")
		}
		p.cs.Hosts = append(p.cs.Hosts, h)
	}

	if strings.HasPrefix(rest, "/") {
		rest = rest[1:]
	}

	database := rest
	options := ""
	if idx := strings.Index(rest, "?"); idx != -1 {
		database = rest[:idx]
		options = rest[idx+1:]
	}

	if database != "" {
		db, err := url.PathUnescape(database)
		if err != nil {
			return errors.Wrap(err, "invalid database")
		}
		p.cs.Database = db
	}

	if options == "" {
		return nil
	}

	values, err := url.ParseQuery(options)
	if err != nil {
		return errors.Wrap(err, "invalid options")
	}

	for key, vals := range values {
		if err := p.addOption(key, vals); err != nil {
			return err
		}
	}

	return nil
}

func (p *parser) addOption(key string, values []string) error {
	switch strings.ToLower(key) {
	case "readconcernlevel":
		if len(values) != 1 || p.readConcernLevelSet {
			return errors.Errorf("option %q may only be specified once", key)
		}
		p.cs.ReadConcernLevel = values[0]
		p.readConcernLevelSet = true
	default:
		if p.cs.UnknownOptions == nil {
			p.cs.UnknownOptions = make(map[string][]string)
		}
		lowerKey := strings.ToLower(key)
		p.cs.UnknownOptions[lowerKey] = append(p.cs.UnknownOptions[lowerKey], values...)
	}

	return nil
}
