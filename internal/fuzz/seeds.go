package fuzztests

import "testing"

const maxFuzzInput = 4 << 10 // одна строка калькулятора

var seeds = []string{
	"",
	"1 + 1",
	"3 + 5 ** 3 ** 3",
	"30 / 2 * 3",
	"30 / (2 * 3)",
	"2 ** 5 % 6",
	"99999999999999999999",
	"5 / 0",
	"0 - 1",
	"2 ** 64",
	"1 2 + 3 4",
	"(1 +",
	"1 + * 2",
	"1 + 2 ))",
	"((((((1))))))",
	"1 $ 2",
	"1 + é",
	"\t1+2 ",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range seeds {
		f.Add([]byte(s))
	}
}

func clampInput(input []byte) string {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return string(input)
}
