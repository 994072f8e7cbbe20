// SPDX-License-Identifier: MIT

// Package formula parses model formulas written in compact algebraic
// (Wilkinson) notation into an explicit list of terms.
//
// 🚀 What is a formula?
//
//	y ~ 1 + cat(cond) * x + spl(speed, 5)
//	│   │   │        │       └─ spline predictor with 5 basis functions
//	│   │   │        └─ crossing: cond + x + cond:x
//	│   │   └─ forced categorical coding
//	│   └─ intercept (on by default, drop with 0 or -1)
//	└─ response placeholder (discarded)
//
// ✨ Operators:
//   - "+"  union of terms
//   - "-"  removal of terms ("-1" drops the intercept)
//   - "*"  crossing: A*B ⇒ A + B + A:B
//   - ":"  interaction only: A:B ⇒ A:B
//   - "( )" grouping, e.g. (a+b)*c
//
// Two call-like extensions are handled before expansion:
//   - cat(X)    marks X as categorical and is rewritten to X
//   - spl(X, k) declares a spline term; it is taken out of the linear
//     algebra entirely and reported in Formula.Splines
//
// Splines cannot take part in interactions: "spl(x,5)*a" and "a:spl(x,5)"
// are rejected with ErrFormula.
//
// ⚙️ Usage:
//
//	f, err := formula.Parse("y ~ cat(cond)*x + spl(speed,5)")
//	if err != nil {
//	    // errors.Is(err, formula.ErrFormula)
//	}
//	fmt.Println(f.Predictors) // [cond x]
//	fmt.Println(f.Terms)      // [[cond] [x] [cond x]]
//
// Complexity: O(n) in the formula length for tokenizing, O(T²·P) for
// crossing T terms of up to P predictors.
package formula
