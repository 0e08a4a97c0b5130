// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package lexicon maps vote outcomes, scoreboards and attendance rolls to
// text in English or French. Command words are part of the lexicon, so the
// French command protocol is "voter", "scores" and "votants".
package lexicon
