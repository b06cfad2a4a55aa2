// SPDX-License-Identifier: EPL-2.0

package vbap_test

import (
	"fmt"

	"github.com/ik5/govbap/vbap"
)

func ExampleEngine_Gains() {
	eng, err := vbap.New([]float64{30, 0, -30, 110, -110}, nil)
	if err != nil {
		fmt.Println(err)
		return
	}

	for _, az := range []float64{0, 15, -70} {
		if err := eng.SetDirection(az, 0); err != nil {
			fmt.Println(err)
			return
		}
		gains, _ := eng.Gains()
		fmt.Printf("az %4g: %.3f\n", az, gains)
	}

	// Output:
	// az    0: [0.000 1.000 0.000 0.000 0.000]
	// az   15: [0.707 0.707 0.000 0.000 0.000]
	// az  -70: [0.000 0.000 0.707 0.000 0.707]
}

func ExampleEngine_SetDirection() {
	eng, _ := vbap.New([]float64{30, 0, -30, 110, -110}, nil)

	err := eng.SetDirection(0, 15)
	fmt.Println(err)

	// Output:
	// vbap: invalid direction (az=0 el=15): elevation must be 0 on a 2-D setup
}
