// Copyright (C) MongoDB, Inc. 2026-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Command readconcern prints the read concern a client would send, given flags, configuration
// files and the environment.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ikmak/mongo-readconcern/internal/config"
	"github.com/ikmak/mongo-readconcern/internal/logger"
	"github.com/ikmak/mongo-readconcern/mongo/readconcern"
	"github.com/pkg/errors"
	"github.com/tidwall/pretty"
	"go.mongodb.org/mongo-driver/bson"
)

// errNotLegacy is returned when -legacy is given and the read concern needs a modern server.
var errNotLegacy = errors.New("read concern is not compatible with legacy wire versions")

func main() {
	err := mainReal(os.Args[1:], os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func mainReal(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("readconcern", flag.ContinueOnError)
	fs.SetOutput(stderr)

	level := fs.String("level", "", "read concern level, e.g. majority")
	t := fs.Uint("t", 0, "atClusterTime seconds")
	i := fs.Uint("i", 0, "atClusterTime increment")
	uri := fs.String("uri", "", "connection string; its readConcernLevel option is used when -level is not given")
	configFile := fs.String("config", "", "TOML configuration file")
	envFile := fs.String("env", ".env", "dotenv file, ignored when missing")
	legacy := fs.Bool("legacy", false, "fail unless the read concern is usable with legacy wire versions")
	verbose := fs.Bool("v", false, "log at debug level")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *t > uint(^uint32(0)) || *i > uint(^uint32(0)) {
		return errors.New("-t and -i must fit in 32 bits")
	}

	cfg, err := config.LoadEnv(*envFile)
	if err != nil {
		return err
	}
	if *configFile != "" {
		fileCfg, err := config.LoadFile(*configFile)
		if err != nil {
			return err
		}
		cfg = cfg.Merge(fileCfg)
	}
	cfg = cfg.Merge(config.Config{
		URI: *uri,
		ReadConcern: config.ReadConcernConfig{
			Level:         *level,
			AtClusterTime: config.Timestamp{T: uint32(*t), I: uint32(*i)},
		},
	})
	if *verbose {
		cfg.LogLevel = string(logger.DebugLevelLiteral)
	}

	log := logger.New(stderr, cfg.LogLevel)

	rc, err := cfg.Resolve(log)
	if err != nil {
		return err
	}

	if err := printReadConcern(stdout, rc); err != nil {
		return err
	}

	if *legacy && !rc.OKForLegacy() {
		return errors.Wrap(errNotLegacy, rc.String())
	}
	return nil
}

func printReadConcern(w io.Writer, rc *readconcern.ReadConcern) error {
	ext, err := bson.MarshalExtJSON(rc, false, false)
	if err != nil {
		return errors.Wrap(err, "cannot marshal read concern")
	}

	if _, err := w.Write(pretty.Pretty(ext)); err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s okForLegacy=%t\n", rc, rc.OKForLegacy())
	return err
}
