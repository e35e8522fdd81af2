// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build mage

package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"reflect"

	"github.com/mesh-intelligence/mirror/internal/gen"
	"github.com/mesh-intelligence/mirror/internal/sample"
)

const (
	samplePkg  = "github.com/mesh-intelligence/mirror/internal/sample"
	sampleFile = "internal/sample/zz_generated.go"
)

// Generate regenerates the field registrations of the sample types.
func Generate() error {
	var buf bytes.Buffer
	err := gen.Render(&buf, gen.Options{PackagePath: samplePkg, PackageName: "sample"},
		reflect.TypeFor[sample.Point](),
		reflect.TypeFor[sample.Point3D](),
		reflect.TypeFor[sample.Polar](),
		reflect.TypeFor[sample.Rect](),
	)
	if err != nil {
		return fmt.Errorf("generate %s: %w", sampleFile, err)
	}

	old, _ := os.ReadFile(sampleFile)
	if bytes.Equal(old, buf.Bytes()) {
		return nil
	}
	fmt.Println("writing", filepath.Clean(sampleFile))
	return os.WriteFile(sampleFile, buf.Bytes(), 0o644)
}
