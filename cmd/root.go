// Copyright 2026 The Strukturfem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package cmd implements the command line interface. The engine itself
// lives in the fem, ele, spm and inp packages; commands only build
// demonstration models and print results.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "strukturfem",
	Short: "3D frame direct-stiffness analysis engine",
	Long: `strukturfem - finite element analysis of 3D frame structures

The engine performs:
  - Linear static analysis (sparse CG or LU solvers)
  - Time-history response (Newmark-beta integration)
  - Displacement-controlled pushover with plastic hinges
  - Linear buckling (eigenvalue) analysis

Use 'strukturfem analyze' to run the built-in demonstration model.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
