package cursor

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

// Tracer is a function that is use to log or report parser traces. This
// function signature was chosen because it is commonly available, such as
// fmt.Print or log.Println, etc.
type Tracer func(v ...any)

// Stage identifies the step of a rule a trace line belongs to.
type Stage int

const (
	StageTry Stage = iota
	StageGot
	StageFail
)

// trace formats one trace line and hands it to fn. preview is a short sample
// of the input ahead of the cursor.
func trace(fn Tracer, stage Stage, name, preview string, args ...any) {
	if fn == nil {
		return
	}

	out := &strings.Builder{}
	switch stage {
	case StageFail:
		fmt.Fprint(out, "ERR ")
	case StageGot:
		fmt.Fprint(out, "GOT ")
	case StageTry:
		fmt.Fprint(out, "TRY ")
	}

	fmt.Fprint(out, name)
	fmt.Fprint(out, "(")
	fmt.Fprint(out, preview)
	fmt.Fprint(out, "…")

	for i, arg := range args {
		fmt.Fprint(out, ", ")

		if arg != nil && reflect.TypeOf(arg).Kind() == reflect.Func {
			fmt.Fprint(out, runtime.FuncForPC(reflect.ValueOf(arg).Pointer()).Name())
			continue
		}

		if i == len(args)-1 {
			if err, isErr := arg.(error); isErr {
				fmt.Fprintf(out, "): %v", err)
				fn(out.String())
				return
			}
		}

		fmt.Fprint(out, arg)
	}

	fmt.Fprint(out, ")")

	fn(out.String())
}
