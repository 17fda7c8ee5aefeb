// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package util - path helpers for configuration expansion
package util

import (
	"os"
	"path/filepath"
)

// EnsureAbsolute - prefix a relative path with the given directory
//
// an already absolute path is only cleaned
func EnsureAbsolute(directory string, filePath string) string {
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(directory, filePath)
	}
	return filepath.Clean(filePath)
}

// EnsureFileExists - true if the named file is present
func EnsureFileExists(name string) bool {
	_, err := os.Stat(name)
	return nil == err
}
