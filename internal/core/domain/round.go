package domain

import "errors"

// MaxGuesses bounds the guess sequence of a round.
const MaxGuesses = 6

// ErrInvalidGuess rejects a guess whose artist or title is not a vocabulary
// member. The attempt is not consumed.
var ErrInvalidGuess = errors.New("domain: guess not in vocabulary")

// RoundStatus is the state of the guess evaluator.
type RoundStatus string

const (
	StatusActive RoundStatus = "active"
	StatusWon    RoundStatus = "won"
	StatusLost   RoundStatus = "lost"
)

// Guess is one submitted artist/title pair. A skip carries empty fields.
type Guess struct {
	Artist BilingualText `json:"artist"`
	Title  BilingualText `json:"title"`
}

// SkipGuess is the sentinel guess recorded when the player reveals more audio
// instead of answering.
func SkipGuess() Guess {
	return Guess{}
}

// IsSkip reports whether the guess is the skip sentinel.
func (g Guess) IsSkip() bool {
	return g.Artist.IsEmpty() && g.Title.IsEmpty()
}

// Round is one song plus the player's progress against it.
type Round struct {
	Song       Song            `json:"song"`
	Vocabulary GuessVocabulary `json:"vocabulary"`
	Guesses    []Guess         `json:"guesses"`
	Status     RoundStatus     `json:"status"`
}

// NewRound starts an Active round with an empty guess sequence.
func NewRound(song Song, vocabulary GuessVocabulary) *Round {
	return &Round{
		Song:       song,
		Vocabulary: vocabulary,
		Status:     StatusActive,
	}
}

// SubmitGuess advances the state machine by one attempt.
//
// Finished rounds ignore further guesses. A skip is always recorded as a
// non-matching attempt and can never win. A non-skip guess must name a
// vocabulary artist and title by original form, otherwise ErrInvalidGuess is
// returned and no attempt is consumed. A recorded guess wins the round when
// both fields match the target in either language form; the sixth recorded
// guess without a win loses it.
func (r *Round) SubmitGuess(g Guess) error {
	if r.Status != StatusActive {
		return nil
	}

	if !g.IsSkip() {
		if !r.Vocabulary.HasArtist(g.Artist.Original) || !r.Vocabulary.HasTitle(g.Title.Original) {
			return ErrInvalidGuess
		}
	}

	r.Guesses = append(r.Guesses, g)

	switch {
	case !g.IsSkip() && r.artistCorrect(g) && r.titleCorrect(g):
		r.Status = StatusWon
	case len(r.Guesses) == MaxGuesses:
		r.Status = StatusLost
	}
	return nil
}

// Stage is the 0-based index of the next attempt, which also indexes the
// audio reveal duration on the presentation side.
func (r *Round) Stage() int {
	return len(r.Guesses)
}

func (r *Round) artistCorrect(g Guess) bool {
	return !g.IsSkip() && g.Artist.Matches(r.Song.Artist)
}

func (r *Round) titleCorrect(g Guess) bool {
	return !g.IsSkip() && g.Title.Matches(r.Song.Title)
}

// scoreByAttempt rewards earlier wins; index is the 1-based winning attempt
// minus one. Hand-tuned values carried over from the deployed game.
var scoreByAttempt = [MaxGuesses]int{15, 10, 7, 5, 4, 3}

// Score is the round's point value: the attempt-indexed reward for a win,
// zero otherwise. Active and lost rounds both score zero.
func (r *Round) Score() int {
	if r.Status != StatusWon {
		return 0
	}
	return scoreByAttempt[len(r.Guesses)-1]
}
