/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */


package db

import (
	"strings"
	"unicode"
)

// statementSplitter walks a migration file and cuts it at top-level
// semicolons. Comments are dropped; quoted strings, quoted identifiers and
// dollar-quoted bodies are copied verbatim.
type statementSplitter struct {
	src       string
	pos       int
	buf       strings.Builder
	out       []string
	quote     byte
	dollarTag string
	lineNote  bool
	blockNote bool
}

func splitSQLStatements(content string) []string {
	s := &statementSplitter{src: content}

	for s.pos < len(s.src) {
		s.step()
	}

	s.flush()

	return s.out
}

func (s *statementSplitter) step() {
	ch := s.src[s.pos]
	rest := s.src[s.pos:]

	switch {
	case s.lineNote:
		if ch == '\n' {
			s.lineNote = false
			s.buf.WriteByte(ch)
		}
		s.pos++
	case s.blockNote:
		if strings.HasPrefix(rest, "*/") {
			s.blockNote = false
			s.pos += 2
			return
		}
		s.pos++
	case s.dollarTag != "":
		if strings.HasPrefix(rest, s.dollarTag) {
			s.buf.WriteString(s.dollarTag)
			s.pos += len(s.dollarTag)
			s.dollarTag = ""
			return
		}
		s.buf.WriteByte(ch)
		s.pos++
	case s.quote != 0:
		if ch == s.quote {
			s.quote = 0
		}
		s.buf.WriteByte(ch)
		s.pos++
	default:
		s.stepUnquoted(ch, rest)
	}
}

func (s *statementSplitter) stepUnquoted(ch byte, rest string) {
	switch {
	case strings.HasPrefix(rest, "--"):
		s.lineNote = true
		s.pos += 2
	case strings.HasPrefix(rest, "/*"):
		s.blockNote = true
		s.pos += 2
	case ch == '\'' || ch == '"':
		s.quote = ch
		s.buf.WriteByte(ch)
		s.pos++
	case ch == ';':
		s.flush()
		s.pos++
	default:
		if tag := dollarTagAt(rest); tag != "" {
			s.dollarTag = tag
			s.buf.WriteString(tag)
			s.pos += len(tag)

			return
		}

		s.buf.WriteByte(ch)
		s.pos++
	}
}

func (s *statementSplitter) flush() {
	if stmt := strings.TrimSpace(s.buf.String()); stmt != "" {
		s.out = append(s.out, stmt)
	}

	s.buf.Reset()
}

// dollarTagAt returns the $tag$ opening rest, or "" when rest does not start
// with one.
func dollarTagAt(rest string) string {
	if rest == "" || rest[0] != '$' {
		return ""
	}

	for i := 1; i < len(rest); i++ {
		ch := rune(rest[i])

		if ch == '$' {
			return rest[:i+1]
		}

		if ch != '_' && !unicode.IsLetter(ch) && !unicode.IsDigit(ch) {
			return ""
		}
	}

	return ""
}

// migrationVersion is the numeric prefix of a migration file name.
func migrationVersion(filename string) string {
	version, _, _ := strings.Cut(filename, "_")

	return version
}
