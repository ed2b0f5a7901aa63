package repository

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// LikeContains turns free text into a lower-cased LIKE pattern matching it
// anywhere. Wildcards in the input are escaped with a backslash.
func LikeContains(text string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(text)) + "%"
}
