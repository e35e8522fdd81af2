// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build mage

// Package main provides build targets for the mirror project using Mage.
//
// Usage:
//
//	mage build             Compile the mirror binary to bin/
//	mage generate          Regenerate sample registration code
//	mage test:all          Run all tests (unit + integration)
//	mage test:unit         Run only unit tests (exclude integration)
//	mage test:integration  Run only integration tests (builds first)
//	mage test:cover        Run unit tests with a coverage profile
//	mage lint              Run golangci-lint
//	mage clean             Remove build artifacts
//	mage install           Install mirror to GOPATH/bin
//	mage stats             Print Go line counts
package main

// Default target when mage runs without arguments.
var Default = Build
