package game

// Points per letter of the word and penalty per wrong guess.
const (
	pointsPerLetter = 10
	pointsPerWrong  = 5
)

// Score maps a finished game to points: a loss is worth nothing, a win is
// worth wordLen*10 - wrongCount*5, never below zero. Scoring an unfinished
// game is a programming error and returns ErrScoreInProgress.
func Score(wordLen, wrongCount int, status Status) (int, error) {
	switch status {
	case StatusLost:
		return 0, nil
	case StatusWon:
		score := wordLen*pointsPerLetter - wrongCount*pointsPerWrong
		if score < 0 {
			score = 0
		}
		return score, nil
	default:
		return 0, ErrScoreInProgress
	}
}
