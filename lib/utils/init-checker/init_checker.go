package initchecker

import (
	"fmt"
	"reflect"
)

// CheckInit recibe pares nombre, valor y entra en pánico si algún valor es nil.
func CheckInit(pairs ...any) {
	if len(pairs)%2 != 0 {
		panic("CheckInit: cantidad impar de argumentos")
	}
	for i := 0; i < len(pairs); i += 2 {
		name, ok := pairs[i].(string)
		if !ok {
			panic("CheckInit: el primer elemento del par debe ser string")
		}
		if isNil(pairs[i+1]) {
			panic(fmt.Sprintf("la dependencia %s no fue inicializada", name))
		}
	}
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}
