package services

import "strings"

// CommercialNotice is appended by the provider to every free-tier lyrics body.
const CommercialNotice = "******* This Lyrics is NOT for Commercial use *******"

// CleanLyrics removes the commercial notice and every ignored phrase by plain
// substring replacement.
func CleanLyrics(lyrics string, ignored ...string) string {
	lyrics = strings.ReplaceAll(lyrics, CommercialNotice, "")
	for _, phrase := range ignored {
		if phrase == "" {
			continue
		}
		lyrics = strings.ReplaceAll(lyrics, phrase, "")
	}
	return lyrics
}

// Tokenize cleans lyrics and splits them on whitespace into lowercase words,
// in text order.
func Tokenize(lyrics string, ignored ...string) []string {
	words := strings.Fields(CleanLyrics(lyrics, ignored...))
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return words
}
