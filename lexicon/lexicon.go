// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package lexicon

import (
	"errors"
	"fmt"
	"strings"

	"github.com/danielhkuo/quickly-tally/models"
)

var ErrUnknownLanguage = errors.New("unknown language")

// Language constants
const (
	LanguageEnglish = "en"
	LanguageFrench  = "fr"
)

// Lexicon holds every user-facing string, including the command words.
type Lexicon struct {
	// Command words
	Vote   string
	Voters string
	Scores string

	// Outcomes
	AcceptedVote    string
	BlankVote       string
	InvalidVote     string
	HasAlreadyVoted string

	// Rendering
	VotersTitle    string
	ScoresTitle    string
	Blank          string
	Invalid        string
	Help           string
	MissingVoter   string
	InvalidCommand string

	// Web page
	VotingMachine string
	Urn           string
	Voter         string
	Candidate     string
	VotersHeading string
	ScoresHeading string
}

func English() Lexicon {
	return Lexicon{
		Vote:            "vote",
		Voters:          "voters",
		Scores:          "scores",
		AcceptedVote:    "has voted for",
		BlankVote:       "has voted blank.",
		InvalidVote:     "has voted null.",
		HasAlreadyVoted: "has already voted.",
		VotersTitle:     "Voters:\n",
		ScoresTitle:     "Scores:\n",
		Blank:           "Blank",
		Invalid:         "Invalid",
		Help:            "Help :\n - vote <name> [candidate]\n - scores\n - voters",
		MissingVoter:    "Voter missing.",
		InvalidCommand:  "Invalid command\n",
		VotingMachine:   "Voting Machine",
		Urn:             "Urn",
		Voter:           "Voter",
		Candidate:       "Candidate",
		VotersHeading:   "Voters",
		ScoresHeading:   "Scores",
	}
}

func French() Lexicon {
	return Lexicon{
		Vote:            "voter",
		Voters:          "votants",
		Scores:          "scores",
		AcceptedVote:    "a voté pour",
		BlankVote:       "a voté blanc.",
		InvalidVote:     "a voté nul.",
		HasAlreadyVoted: "a déjà voté.",
		VotersTitle:     "Voici les votants:\n",
		ScoresTitle:     "Voici les scores:\n",
		Blank:           "Blanc",
		Invalid:         "Nul",
		Help:            "Aide :\n - voter <nom> [candidat]\n - scores\n - votants",
		MissingVoter:    "Il manque un votant.",
		InvalidCommand:  "Commande non valide\n",
		VotingMachine:   "Machine de vote",
		Urn:             "Urne",
		Voter:           "Votant",
		Candidate:       "Candidat",
		VotersHeading:   "Votants",
		ScoresHeading:   "Scores",
	}
}

// ForLanguage returns the lexicon for a language code.
func ForLanguage(language string) (Lexicon, error) {
	switch strings.ToLower(language) {
	case LanguageEnglish:
		return English(), nil
	case LanguageFrench:
		return French(), nil
	default:
		return Lexicon{}, fmt.Errorf("%w: %q", ErrUnknownLanguage, language)
	}
}

// FormatOutcome renders a vote outcome as one sentence.
func (l Lexicon) FormatOutcome(outcome models.VoteOutcome) string {
	switch outcome.Kind {
	case models.OutcomeAccepted:
		return fmt.Sprintf("%s %s %s.", outcome.Voter, l.AcceptedVote, outcome.Candidate)
	case models.OutcomeBlank:
		return fmt.Sprintf("%s %s", outcome.Voter, l.BlankVote)
	case models.OutcomeInvalid:
		return fmt.Sprintf("%s %s", outcome.Voter, l.InvalidVote)
	default:
		return fmt.Sprintf("%s %s", outcome.Voter, l.HasAlreadyVoted)
	}
}

// FormatScoreboard renders each candidate in name order, then blank and invalid.
func (l Lexicon) FormatScoreboard(scoreboard models.Scoreboard) string {
	var b strings.Builder
	b.WriteString(l.ScoresTitle)
	for _, candidate := range scoreboard.Candidates() {
		fmt.Fprintf(&b, "%s: %d\n", candidate, scoreboard.Scores[candidate])
	}
	fmt.Fprintf(&b, "%s: %d\n", l.Blank, scoreboard.Blank)
	fmt.Fprintf(&b, "%s: %d", l.Invalid, scoreboard.Invalid)
	return b.String()
}

// FormatAttendance renders the roll, one voter per line.
func (l Lexicon) FormatAttendance(sheet models.AttendanceSheet) string {
	var b strings.Builder
	b.WriteString(l.VotersTitle)
	for _, voter := range sheet.Voters() {
		fmt.Fprintf(&b, "- %s\n", voter)
	}
	return b.String()
}
