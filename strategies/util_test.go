package strategies

import "testing"

type test struct {
	name string
	in   string
	out  string
}

func testStringFunc(t *testing.T, f func(string) string, tests []test) {
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			got := f(test.in)
			if got != test.out {
				t.Errorf("got %#v want %#v", got, test.out)
			}
		})
	}
}

func TestLowerFirst(t *testing.T) {
	tests := []test{
		{"Empty", "", ""},
		{"SingleLower", "l", "l"},
		{"SingleUpper", "L", "l"},
		{"SingleUnicodeLower", "ļ", "ļ"},
		{"SingleUnicodeUpper", "Ļ", "ļ"},
		{"LongerLower", "lasdf", "lasdf"},
		{"LongerUpper", "Lasdf", "lasdf"},
		{"LeadingUnderscore", "_lasdf", "lasdf"},
	}

	testStringFunc(t, lowerFirst, tests)
}

func TestUpperFirst(t *testing.T) {
	tests := []test{
		{"Empty", "", ""},
		{"SingleLower", "l", "L"},
		{"SingleUpper", "L", "L"},
		{"SingleUnicodeLower", "ļ", "Ļ"},
		{"SingleUnicodeUpper", "Ļ", "Ļ"},
		{"LongerLower", "lasdf", "Lasdf"},
		{"LongerUpper", "Lasdf", "Lasdf"},
		{"LeadingUnderscore", "_lasdf", "Lasdf"},
	}

	testStringFunc(t, upperFirst, tests)
}
