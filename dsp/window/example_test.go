package window

import "fmt"

func ExampleGenerate() {
	w := Generate(TypeHann, 4)
	fmt.Printf("%.2f %.2f %.2f %.2f\n", w[0], w[1], w[2], w[3])
	// Output:
	// 0.00 0.75 0.75 0.00
}

func ExampleApplyCoefficients() {
	buf := []float64{1, 1, 1, 1}
	out, _ := ApplyCoefficients(buf, Generate(TypeHann, len(buf)))
	fmt.Printf("%.2f %.2f %.2f %.2f | %.0f\n", out[0], out[1], out[2], out[3], buf[1])
	// Output:
	// 0.00 0.75 0.75 0.00 | 1
}
