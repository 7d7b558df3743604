package iocli

// IO - ввод и вывод команд CLI
type IO interface {
	Println(a ...any)
	Printf(format string, a ...any)
	ReadInput(prompt string) (string, error)
	ReadPassword(prompt string) (string, error)
	// Notify показывает короткое сообщение пользователю (аналог toast)
	Notify(message string)
	Write(p []byte) (n int, err error)
}
