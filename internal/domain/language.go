package domain

// Language selects the localized template variant for a farmer.
type Language string

const (
	English Language = "en"
	Kannada Language = "kn"
	Hindi   Language = "hi"
	Tamil   Language = "ta"
	Telugu  Language = "te"
)
