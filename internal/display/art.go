package display

// gallows holds one drawing per wrong-guess count, 0 through 6.
var gallows = [...]string{
	`
    +---+
    |   |
        |
        |
        |
        |
  =========`,
	`
    +---+
    |   |
    O   |
        |
        |
        |
  =========`,
	`
    +---+
    |   |
    O   |
    |   |
        |
        |
  =========`,
	`
    +---+
    |   |
    O   |
   /|   |
        |
        |
  =========`,
	`
    +---+
    |   |
    O   |
   /|\  |
        |
        |
  =========`,
	`
    +---+
    |   |
    O   |
   /|\  |
   /    |
        |
  =========`,
	`
    +---+
    |   |
    O   |
   /|\  |
   / \  |
        |
  =========`,
}

// Gallows returns the drawing for wrongCount, clamped to 0..6.
func Gallows(wrongCount int) string {
	if wrongCount < 0 {
		wrongCount = 0
	}
	if wrongCount >= len(gallows) {
		wrongCount = len(gallows) - 1
	}
	return gallows[wrongCount]
}
