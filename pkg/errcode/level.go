package errcode

//go:generate go tool enumer -type=Level -trimprefix=Level -transform=snake -text -output=level_enumer.go
//go:generate go run ../../tools/enumerfix level_enumer.go

// Level is the severity an error is reported at. It selects the logging stream and decides
// whether reporting also logs the error context; it never affects register state.
type Level uint8

const (
	LevelNone Level = iota
	LevelDebug
	LevelInfo
	LevelWarning
	LevelError
	LevelPanic
)

// AtLeast reports whether l is as severe as threshold or more.
func (l Level) AtLeast(threshold Level) bool {
	return l >= threshold
}
