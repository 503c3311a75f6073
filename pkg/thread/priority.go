package thread

//go:generate go tool enumer -type=Priority -trimprefix=Priority -transform=snake -output=priority_enumer.go
//go:generate go run ../../tools/enumerfix priority_enumer.go

// Priority is a scheduling hint. The Go scheduler does not honour priorities; the value is
// kept for diagnostics and dumps.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityBelowNormal
	PriorityNormal
	PriorityAboveNormal
	PriorityHighest
	PriorityTimecritical
)
