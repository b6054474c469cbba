package game

import "fmt"

// StatusLine is the one-line HUD shared by the clients.
func StatusLine(sc Score) string {
	return fmt.Sprintf("Score %d  Shots %d  Time %d", sc.Score, sc.ShotsLeft, sc.TimeLeft)
}

// BestLine describes the stored record, or "" when there is none.
func BestLine(score int, holder string) string {
	if score <= 0 {
		return ""
	}
	return fmt.Sprintf("Best %d (%s)", score, holder)
}

// PowerBar renders power (0..100) as a bar of width cells.
func PowerBar(power, width int) string {
	if width <= 0 {
		return ""
	}
	power = max(0, min(power, 100))
	filled := power * width / 100
	bar := make([]byte, width)
	for i := range bar {
		if i < filled {
			bar[i] = '#'
		} else {
			bar[i] = '-'
		}
	}
	return string(bar)
}
