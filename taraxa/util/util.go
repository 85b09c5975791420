package util

import (
	"reflect"
	"sync"
)

type Any = interface{}

func IsReallyNil(value Any) bool {
	if value == nil {
		return true
	}
	switch reflectValue := reflect.ValueOf(value); reflectValue.Kind() {
	case reflect.Chan, reflect.Func, reflect.Map, reflect.Ptr,
		reflect.UnsafePointer, reflect.Interface, reflect.Slice:
		return reflectValue.IsNil()
	default:
		return false
	}
}

func LockUnlock(l sync.Locker) func() {
	l.Lock()
	return l.Unlock
}

func RLockRUnlock(l *sync.RWMutex) func() {
	l.RLock()
	return l.RUnlock
}
