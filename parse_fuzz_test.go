package bigcalc_test

import (
	"testing"

	"github.com/zephyrtronium/bigcalc"
)

func FuzzParse(f *testing.F) {
	f.Add("x")
	f.Add("2*pi")
	f.Add("sin(")
	f.Fuzz(func(t *testing.T, s string) {
		bigcalc.ParseString(s)
	})
}
