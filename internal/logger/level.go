// Copyright (C) MongoDB, Inc. 2026-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package logger

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// LevelLiteral is a severity name as it appears in configuration, e.g. the MONGODB_LOG_LEVEL
// environment variable.
type LevelLiteral string

const (
	OffLevelLiteral       LevelLiteral = "off"
	EmergencyLevelLiteral LevelLiteral = "emergency"
	AlertLevelLiteral     LevelLiteral = "alert"
	CriticalLevelLiteral  LevelLiteral = "critical"
	ErrorLevelLiteral     LevelLiteral = "error"
	WarnLevelLiteral      LevelLiteral = "warn"
	NoticeLevelLiteral    LevelLiteral = "notice"
	InfoLevelLiteral      LevelLiteral = "info"
	DebugLevelLiteral     LevelLiteral = "debug"
	TraceLevelLiteral     LevelLiteral = "trace"
)

// Level returns the logrus level for the literal. Off and unknown literals map to logrus.PanicLevel,
// which silences everything short of a panic.
func (llevel LevelLiteral) Level() logrus.Level {
	switch llevel {
	case EmergencyLevelLiteral, AlertLevelLiteral, CriticalLevelLiteral:
		return logrus.FatalLevel
	case ErrorLevelLiteral:
		return logrus.ErrorLevel
	case WarnLevelLiteral:
		return logrus.WarnLevel
	case NoticeLevelLiteral, InfoLevelLiteral:
		return logrus.InfoLevel
	case DebugLevelLiteral:
		return logrus.DebugLevel
	case TraceLevelLiteral:
		return logrus.TraceLevel
	default:
		return logrus.PanicLevel
	}
}

func (llevel LevelLiteral) equalFold(str string) bool {
	return strings.EqualFold(string(llevel), str)
}

// AllLevelLiterals returns every recognized level literal.
func AllLevelLiterals() []LevelLiteral {
	return []LevelLiteral{
		OffLevelLiteral,
		EmergencyLevelLiteral,
		AlertLevelLiteral,
		CriticalLevelLiteral,
		ErrorLevelLiteral,
		WarnLevelLiteral,
		NoticeLevelLiteral,
		InfoLevelLiteral,
		DebugLevelLiteral,
		TraceLevelLiteral,
	}
}

// ParseLevel matches level case-insensitively against the known literals. An empty string yields
// the fallback level; any other unrecognized string is treated as "off".
func ParseLevel(level string, fallback logrus.Level) logrus.Level {
	if level == "" {
		return fallback
	}
	for _, llevel := range AllLevelLiterals() {
		if llevel.equalFold(level) {
			return llevel.Level()
		}
	}

	return OffLevelLiteral.Level()
}
