package mime

type Charset = string

const (
	UTF8  Charset = "utf8"
	ASCII Charset = "ascii"
)
