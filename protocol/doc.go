// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package protocol implements the line-oriented command protocol shared by the
stdio, UDP and TCP front-ends.

# Commands

With the English lexicon:

	vote <voter>              blank vote
	vote <voter> <candidate>  vote for candidate (invalid if unknown)
	vote                      "Voter missing." (never reaches the controller)
	scores                    scoreboard
	voters                    attendance roll
	<empty line>              help text
	<anything else>           "Invalid command"

Words are separated by any run of whitespace; words after the candidate are
ignored. Command words come from the lexicon, so French clients send
"voter", "scores" and "votants".
*/
package protocol
