package kmp_test

import (
	"fmt"

	"github.com/seiflotfy/textpack/kmp"
)

func ExampleMatcher() {
	m, err := kmp.NewString("abab")
	if err != nil {
		panic(err)
	}
	fmt.Println(m.Table())
	fmt.Println(m.Search([]rune("abacababab")))
	fmt.Println(m.Search([]rune("aabba")) == kmp.NotFound)

	// Output:
	// [-1 0 0 1]
	// 4
	// true
}

func ExampleSearchString() {
	fmt.Println(kmp.SearchString("ab", "cabab"))
	fmt.Println(kmp.SearchString("", "x"))

	// Output:
	// 1
	// -1
}
