package ijson

import (
	"runtime"

	"github.com/goccy/go-reflect"

	"github.com/oarkflow/ijson/marshaler"
	"github.com/oarkflow/ijson/unmarshaler"
)

func FunctionPath(fn any) string {
	ptr := reflect.ValueOf(fn).Pointer()
	funcInfo := runtime.FuncForPC(ptr)
	if funcInfo != nil {
		return funcInfo.Name()
	}
	return ""
}

// Hooks names the functions currently installed as marshaler and
// unmarshaler, for logging.
func Hooks() (marshalFn, unmarshalFn string) {
	return FunctionPath(marshaler.Instance()), FunctionPath(unmarshaler.Instance())
}
