package iocli

//go:generate moq -out io_mock.go . IO

// IO абстрагирует терминал для команд CLI
type IO interface {
	Println(a ...any)
	Printf(format string, a ...any)
	// ReadInput returns io.EOF when input is exhausted
	ReadInput(prompt string) (string, error)
	// IsTerminal reports whether input comes from an interactive terminal
	IsTerminal() bool
	Write(p []byte) (n int, err error)
}
