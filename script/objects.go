package script

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/google/uuid"
)

// result turns an editor error into a tengo error value the script can test
// with is_error, rather than aborting the run.
func result(err error) tengo.Object {
	if err != nil {
		return &tengo.Error{Value: &tengo.String{Value: err.Error()}}
	}
	return tengo.TrueValue
}

func boolObject(b bool) tengo.Object {
	if b {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func intArgs(name string, args []tengo.Object, n int) ([]int, error) {
	if len(args) != n {
		return nil, tengo.ErrWrongNumArguments
	}
	out := make([]int, n)
	for i, arg := range args {
		v, ok := tengo.ToInt(arg)
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{
				Name:     fmt.Sprintf("%s argument %d", name, i+1),
				Expected: "int",
				Found:    arg.TypeName(),
			}
		}
		out[i] = v
	}
	return out, nil
}

func idArg(args []tengo.Object) (uuid.UUID, error) {
	if len(args) < 1 {
		return uuid.Nil, tengo.ErrWrongNumArguments
	}
	return uuid.Parse(objectAsString(args[0]))
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
