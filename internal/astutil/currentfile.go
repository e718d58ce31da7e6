// Copyright 2025-2026 Oliver Eikemeier. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package astutil

import (
	"go/ast"
	"go/token"
	"regexp"
	"slices"
	"strings"
)

// extractguard is the name of the linter.
const extractguard = "extractguard"

// CurrentFile holds file information for analysis.
type CurrentFile struct {
	file      *ast.File
	handle    *token.File
	generated bool
}

// NewCurrentFile creates a new [CurrentFile] from a [token.FileSet] and an *[ast.File].
func NewCurrentFile(fset *token.FileSet, file *ast.File) CurrentFile {
	if file == nil {
		return CurrentFile{}
	}

	handle := fset.File(file.FileStart)
	if handle == nil {
		return CurrentFile{}
	}

	generated := ast.IsGenerated(file)

	return CurrentFile{file, handle, generated}
}

// Valid returns true if the [CurrentFile] was successfully created
// from a valid file handle.
func (c CurrentFile) Valid() bool {
	return c.handle != nil
}

// Generated returns true if the file is a generated file.
func (c CurrentFile) Generated() bool {
	return c.generated
}

// Lines returns the number of lines a node spans.
func (c CurrentFile) Lines(node ast.Node) int {
	return c.line(node.End()) - c.line(node.Pos()) + 1
}

func (c CurrentFile) line(pos token.Pos) int {
	return c.handle.PositionFor(pos, false).Line
}

// NoLintComment checks if a line is followed by a //nolint:extractguard comment.
func (c CurrentFile) NoLintComment(pos token.Pos) bool {
	comment := c.TrailingComment(pos)
	if comment == nil {
		return false
	}

	return CommentHasNoLint(comment.List[0])
}

// TrailingComment returns the first comment group starting at or after pos on the same line, or nil.
func (c CurrentFile) TrailingComment(pos token.Pos) *ast.CommentGroup {
	if c.file == nil {
		return nil
	}

	// find the first comment starting after pos
	i, _ := slices.BinarySearchFunc(c.file.Comments, pos,
		func(c *ast.CommentGroup, p token.Pos) int { return int(c.Pos() - p) })
	if i >= len(c.file.Comments) {
		return nil
	}

	comment := c.file.Comments[i]

	if c.line(comment.Pos()) != c.line(pos) {
		return nil // not on this line
	}

	return comment
}

// SameLine reports whether a and b are on the same line.
func (c CurrentFile) SameLine(a, b token.Pos) bool {
	return c.line(a) == c.line(b)
}

// LineStart returns the position of the first character of the line containing pos.
func (c CurrentFile) LineStart(pos token.Pos) token.Pos {
	return c.handle.LineStart(c.line(pos))
}

// NextLineStart returns the position of the first character of the line after pos,
// or the end of the file when pos is on the last line.
func (c CurrentFile) NextLineStart(pos token.Pos) token.Pos {
	line := c.line(pos)
	if line >= c.handle.LineCount() {
		return token.Pos(c.handle.Base() + c.handle.Size())
	}

	return c.handle.LineStart(line + 1)
}

var nolintPattern = regexp.MustCompile(`^//\s*nolint:([a-zA-Z0-9,_-]+)`)

// CommentHasNoLint checks if the provided comment contains a `//nolint:extractguard` directive.
func CommentHasNoLint(comment *ast.Comment) bool {
	matches := nolintPattern.FindStringSubmatch(comment.Text)
	if matches == nil {
		return false
	}

	// Parse comma-separated linter list
	for linter := range strings.SplitSeq(matches[1], ",") {
		if l := strings.ToLower(strings.TrimSpace(linter)); l == extractguard || l == "all" {
			return true
		}
	}

	return false
}
