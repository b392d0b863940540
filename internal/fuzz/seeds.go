package fuzztests

import "testing"

const maxSeedBytes = 64 << 10 // 64 KiB - ограничение для тестового корпуса

var languageSeeds = []string{
	"",
	"var x = 5",
	"\"use strict\";\nvar x = 5;\n",
	"\"use strict\";\nvar a = 1;\nif (a) a = 2;\n",
	"function f(p) { return p == null ? arguments.callee : eval(p); }",
	"var s = 'unterminated\n",
	"/* open comment",
	"for (var k in o) { debugger; }",
	"x = {a: [1, 2, {b: \"c\"}]};;;",
	"\uFEFFvar bom = true;",
	"var a = 1;\r\nvar b = 2\r\n",
	"while (x = next()) { new Foo(); i++; }",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range languageSeeds {
		if len(s) <= maxSeedBytes {
			f.Add([]byte(s))
		}
	}
}
