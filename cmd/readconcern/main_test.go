// Copyright (C) MongoDB, Inc. 2026-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	for _, key := range []string{
		"MONGODB_URI",
		"MONGODB_LOG_LEVEL",
		"MONGO_READ_CONCERN_LEVEL",
		"MONGO_READ_CONCERN_AT_CLUSTER_TIME_T",
		"MONGO_READ_CONCERN_AT_CLUSTER_TIME_I",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	args = append([]string{"-env", filepath.Join(t.TempDir(), "missing.env")}, args...)

	var stdout, stderr bytes.Buffer
	err := mainReal(args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestMainReal_Default(t *testing.T) {
	out, _, err := run(t, "-legacy")
	require.NoError(t, err)
	assert.Contains(t, out, "{}")
	assert.Contains(t, out, "ReadConcern() okForLegacy=true")
}

func TestMainReal_Level(t *testing.T) {
	out, _, err := run(t, "-level", "majority")
	require.NoError(t, err)
	assert.Contains(t, out, `"level": "majority"`)
	assert.Contains(t, out, "ReadConcern(majority) okForLegacy=false")
}

func TestMainReal_SnapshotAt(t *testing.T) {
	out, _, err := run(t, "-level", "snapshot", "-t", "1700000000", "-i", "4")
	require.NoError(t, err)
	assert.Contains(t, out, `"level": "snapshot"`)
	assert.Contains(t, out, `"$timestamp"`)
	assert.Contains(t, out, "1700000000")
}

func TestMainReal_URIAndVerbose(t *testing.T) {
	out, logs, err := run(t, "-v", "-uri", "mongodb://localhost/?readConcernLevel=local")
	require.NoError(t, err)
	assert.Contains(t, out, "ReadConcern(local) okForLegacy=true")
	assert.Contains(t, logs, "source=uri")
}

func TestMainReal_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.toml")
	require.NoError(t, os.WriteFile(path, []byte("[read_concern]\nlevel = \"available\"\n"), 0o600))

	out, _, err := run(t, "-config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "ReadConcern(available)")

	// flags win over the file
	out, _, err = run(t, "-config", path, "-level", "linearizable")
	require.NoError(t, err)
	assert.Contains(t, out, "ReadConcern(linearizable)")
}

func TestMainReal_Errors(t *testing.T) {
	_, _, err := run(t, "-legacy", "-level", "majority")
	require.Error(t, err)
	assert.Equal(t, errNotLegacy, errors.Cause(err))

	_, _, err = run(t, "-uri", "http://localhost")
	require.Error(t, err)

	_, _, err = run(t, "-t", "4294967296")
	require.Error(t, err)

	_, _, err = run(t, "-config", filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}
