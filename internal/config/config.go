// Copyright (C) MongoDB, Inc. 2026-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package config loads the default read concern for a client from the environment, dotenv files,
// TOML files and connection strings.
package config

import (
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/ikmak/mongo-readconcern/mongo/readconcern"
	"github.com/ikmak/mongo-readconcern/x/mongo/driver/connstring"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Config holds the settings a client derives its default read concern from.
type Config struct {
	URI         string            `env:"MONGODB_URI" toml:"uri"`
	LogLevel    string            `env:"MONGODB_LOG_LEVEL" toml:"log_level"`
	ReadConcern ReadConcernConfig `envPrefix:"MONGO_READ_CONCERN_" toml:"read_concern"`
}

// ReadConcernConfig holds explicitly configured read concern fields. They take precedence over the
// readConcernLevel option of the connection string.
type ReadConcernConfig struct {
	Level         string    `env:"LEVEL" toml:"level"`
	AtClusterTime Timestamp `envPrefix:"AT_CLUSTER_TIME_" toml:"at_cluster_time"`
}

// Timestamp is the configured form of a cluster time. The zero value means unset.
type Timestamp struct {
	T uint32 `env:"T" toml:"t"`
	I uint32 `env:"I" toml:"i"`
}

// IsZero reports whether no cluster time was configured.
func (ts Timestamp) IsZero() bool {
	return ts.T == 0 && ts.I == 0
}

// LoadEnv loads the given dotenv files, skipping any that do not exist, and then parses the
// configuration from the environment. Variables already present in the environment win over
// values from the files.
func LoadEnv(files ...string) (Config, error) {
	for _, file := range files {
		if _, err := os.Stat(file); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return Config{}, errors.Wrapf(err, "cannot load env file %s", file)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "parse env")
	}
	return cfg, nil
}

// LoadFile parses the configuration from a TOML file.
func LoadFile(path string) (Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "cannot read config file %s", path)
	}

	var cfg Config
	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "cannot parse config file %s", path)
	}
	return cfg, nil
}

// Merge returns c with every non-empty setting of other applied on top.
func (c Config) Merge(other Config) Config {
	if other.URI != "" {
		c.URI = other.URI
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.ReadConcern.Level != "" {
		c.ReadConcern.Level = other.ReadConcern.Level
	}
	if !other.ReadConcern.AtClusterTime.IsZero() {
		c.ReadConcern.AtClusterTime = other.ReadConcern.AtClusterTime
	}
	return c
}

// Resolve builds the read concern described by c. Explicit read concern fields are used first,
// then the readConcernLevel option of the URI. Without either the shared default is returned.
func (c Config) Resolve(log logrus.FieldLogger) (*readconcern.ReadConcern, error) {
	var opts []readconcern.Option
	if c.ReadConcern.Level != "" {
		opts = append(opts, readconcern.Level(c.ReadConcern.Level))
	}
	if ts := c.ReadConcern.AtClusterTime; !ts.IsZero() {
		opts = append(opts, readconcern.AtClusterTime(primitive.Timestamp{T: ts.T, I: ts.I}))
	}
	if len(opts) > 0 {
		rc := readconcern.New(opts...)
		log.WithField("source", "config").Debugf("using read concern %s", rc)
		return rc, nil
	}

	if c.URI != "" {
		cs, err := connstring.Parse(c.URI)
		if err != nil {
			return nil, errors.Wrap(err, "invalid connection string")
		}
		if rc := cs.ReadConcern(); rc != nil {
			log.WithField("source", "uri").Debugf("using read concern %s", rc)
			return rc, nil
		}
	}

	log.WithField("source", "default").Debug("using server default read concern")
	return readconcern.Default(), nil
}
