package editor_test

import (
	"fmt"

	"github.com/zephyrtronium/bigcalc"
	"github.com/zephyrtronium/bigcalc/editor"
)

func Example() {
	ev := bigcalc.NewEvaluator()
	var s editor.State
	for _, v := range []string{"2", "pi", "+", "*", "0", "5"} {
		s = editor.Apply(s, editor.Value(v), ev)
		fmt.Println(s.Expression)
	}
	s = editor.Apply(s, editor.Key("Enter"), ev)
	fmt.Println(s.LastResult, s.Expression)

	// Output:
	// 2
	// 2*pi
	// 2*pi+
	// 2*pi*
	// 2*pi*0
	// 2*pi*5
	// 2*pi*5 = 31.415926535897932384626433832795
}
