package logger

type Logger interface {
	Info(mes string)
	Errorf(str string, arg ...any)
	Error(mess string)
	Infof(str string, arg ...any)
	Debug(mess string)
	Debugf(str string, arg ...any)
}

// Nop ничего не пишет, используется в тестах и утилитах
type Nop struct{}

func (Nop) Info(string)           {}
func (Nop) Errorf(string, ...any) {}
func (Nop) Error(string)          {}
func (Nop) Infof(string, ...any)  {}
func (Nop) Debug(string)          {}
func (Nop) Debugf(string, ...any) {}
