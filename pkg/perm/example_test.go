package perm_test

import (
	"fmt"

	"github.com/matzehuels/coalition/pkg/perm"
)

func ExampleGenerate() {
	for i, p := range perm.Generate(3, 0) {
		fmt.Println(i, p)
	}
	// Output:
	// 0 [0 1 2]
	// 1 [1 0 2]
	// 2 [2 0 1]
	// 3 [0 2 1]
	// 4 [1 2 0]
	// 5 [2 1 0]
}

func ExampleFactorial() {
	// Elimination orders of an 11-candidate election.
	fmt.Println(perm.Factorial(11))
	// Output:
	// 39916800
}

func ExampleUnrank() {
	p := perm.Unrank(4, 10)
	fmt.Println(p, perm.Rank(p))
	// Output:
	// [1 3 0 2] 10
}
