package time_test

import (
	"fmt"

	timestats "github.com/cwbudde/accel-spectrum/stats/time"
)

func ExampleCalculate() {
	s := timestats.Calculate([]float64{1, -1, 1, -1})
	fmt.Printf("rms=%.1f peak=%.1f range=%.1f\n", s.RMS, s.Peak, s.Range)

	// Output:
	// rms=1.0 peak=1.0 range=2.0
}

func ExampleMedian() {
	fmt.Println(timestats.Median([]float64{10, 10, 250, 10}))

	// Output:
	// 10
}
