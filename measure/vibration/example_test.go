package vibration_test

import (
	"fmt"
	"strings"

	"github.com/cwbudde/accel-spectrum/ingest"
	"github.com/cwbudde/accel-spectrum/measure/vibration"
)

func ExampleAnalyze() {
	log := `timedelta_ms,Xacc,Yacc,Zacc
0,0,0,9.8
10,0,0,9.8
20,0,0,9.8
30,0,0,9.8
40,0,0,9.8
50,0,0,9.8
60,0,0,9.8
70,0,0,9.8
`
	s, _ := ingest.Load(strings.NewReader(log))
	r, _ := vibration.Analyze(s, vibration.DefaultConfig())

	fmt.Printf("fs=%.1f Hz nyquist=%.1f Hz\n", r.Rate.SampleRate, r.Rate.Nyquist())
	for _, ch := range r.Channels {
		fmt.Printf("%s bins=%d from %.1f Hz\n", ch.Name, ch.Spectrum.Len(), ch.Spectrum.Freqs[0])
	}
	// Output:
	// fs=100.0 Hz nyquist=50.0 Hz
	// Xacc bins=3 from 25.0 Hz
	// Yacc bins=3 from 25.0 Hz
	// Zacc bins=3 from 25.0 Hz
	// AccMag bins=4 from 12.5 Hz
}
