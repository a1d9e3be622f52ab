package validator

import (
	"unicode/utf8"
)

func RequestMessage(message string) bool {
	return utf8.RuneCountInString(message) <= 400
}

func ResponseMessage(message string) bool {
	return utf8.RuneCountInString(message) <= 400
}
