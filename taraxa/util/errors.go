package util

type ErrorString string

func (this ErrorString) Error() string {
	return string(this)
}

type ErrorHandler func(_ error)

func SetTo(errPtr *error) ErrorHandler {
	return func(err error) {
		*errPtr = err
	}
}

func PanicIfNotNil(value interface{}) bool {
	if !IsReallyNil(value) {
		panic(value)
	}
	return true
}

// Recover stops a panic carrying an error and hands it to the handlers.
// Any other panic value is re-raised.
func Recover(handlers ...ErrorHandler) {
	caught := recover()
	if caught == nil {
		return
	}
	err, is_err := caught.(error)
	if !is_err {
		panic(caught)
	}
	for _, handler := range handlers {
		handler(err)
	}
}
