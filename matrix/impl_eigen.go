// SPDX-License-Identifier: MIT

// Package matrix - spectra of general real matrices.
//
// Purpose:
//   - Eigenvalues of non-symmetric matrices (transition matrices are not
//     symmetric, so Jacobi rotations do not apply).
//   - A single eigenvector for a chosen eigenvalue via inverse iteration.
//
// Algorithm:
//   - Stage 1: reduce A to upper Hessenberg form by stabilized elementary
//     similarity transforms (Gaussian elimination with pivoting).
//   - Stage 2: Francis double-shift QR on the Hessenberg matrix with
//     deflation; complex conjugate pairs fall out of trailing 2×2 blocks.
//     Exceptional shifts at sweeps 10 and 20 break cycles on periodic inputs.
//
// Determinism:
//   - Fixed loop orders; results are sorted by descending modulus, then by
//     descending real part, then by descending imaginary part.

package matrix

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"
)

// Eigenvalues returns all eigenvalues of the square matrix m.
// MAIN DESCRIPTION:
//   - General real eigenvalue solver; complex values come in conjugate pairs.
//
// Implementation:
//   - Stage 1: Validate (not nil, square); copy into a work buffer.
//   - Stage 2: Hessenberg reduction (reduceHessenberg).
//   - Stage 3: shifted QR with deflation (hessenbergQR).
//   - Stage 4: sort for stable presentation.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrEigenFailed (sweep budget exhausted).
//
// Complexity:
//   - Time O(n³) typical, Space O(n²).
//
// AI-Hints:
//   - To find the eigenvalue nearest a target, scan with cmplx.Abs(λ - target).
func Eigenvalues(m Matrix, opts ...Option) ([]complex128, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf(opEigenvalues, err)
	}
	src, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opEigenvalues, err)
	}
	o := NewOptions(opts...)
	n := src.r

	a := make([][]float64, n)
	for i := 0; i < n; i++ {
		a[i] = make([]float64, n)
		copy(a[i], src.data[i*n:(i+1)*n])
	}
	reduceHessenberg(a)

	wr := make([]float64, n)
	wi := make([]float64, n)
	if err = hessenbergQR(a, wr, wi, o.maxIter); err != nil {
		return nil, matrixErrorf(opEigenvalues, err)
	}

	vals := make([]complex128, n)
	for i := 0; i < n; i++ {
		vals[i] = complex(wr[i], wi[i])
	}
	sort.SliceStable(vals, func(i, j int) bool {
		mi, mj := cmplx.Abs(vals[i]), cmplx.Abs(vals[j])
		if mi != mj {
			return mi > mj
		}
		if real(vals[i]) != real(vals[j]) {
			return real(vals[i]) > real(vals[j])
		}
		return imag(vals[i]) > imag(vals[j])
	})

	return vals, nil
}

// Eigenvector returns a real vector v with A·v ≈ λ·v by inverse iteration
// on (A − λI), starting from the all-ones vector.
// Implementation:
//   - Stage 1: Validate; form B = A − λI.
//   - Stage 2: LUP-factor B with a pivot floor eps·max(‖A‖∞,1) so an exact
//     eigenvalue does not make the solve fail.
//   - Stage 3: repeat x ← B⁻¹x, rescaled by its largest-magnitude entry.
//
// Behavior highlights:
//   - The returned vector is scaled so that its largest-magnitude entry is 1.
//   - λ must be real; callers holding a complex eigenvalue pass its real part
//     and get a best-effort real vector.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrNaNInf (non-finite λ).
//
// Complexity:
//   - Time O(n³ + refinements·n²), Space O(n²).
func Eigenvector(m Matrix, lambda float64, opts ...Option) ([]float64, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf(opEigenvector, err)
	}
	if math.IsNaN(lambda) || math.IsInf(lambda, 0) {
		return nil, matrixErrorf(opEigenvector, ErrNaNInf)
	}
	src, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opEigenvector, err)
	}
	o := NewOptions(opts...)
	n := src.r

	b := src.clone()
	var norm, rowAbs float64
	for i := 0; i < n; i++ {
		rowAbs = 0
		for j := 0; j < n; j++ {
			rowAbs += math.Abs(src.data[i*n+j])
		}
		norm = math.Max(norm, rowAbs)
		b.data[i*n+i] -= lambda
	}

	f, err := factor(b, o.eps*math.Max(norm, 1))
	if err != nil {
		return nil, matrixErrorf(opEigenvector, err)
	}

	x := make([]float64, n)
	for i := range x {
		x[i] = 1
	}
	for it := 0; it < o.refinements; it++ {
		if x, err = f.solve(x); err != nil {
			return nil, matrixErrorf(opEigenvector, err)
		}
		if err = scaleByMaxAbs(x); err != nil {
			return nil, matrixErrorf(opEigenvector, err)
		}
	}

	return x, nil
}

// scaleByMaxAbs divides x by its largest-magnitude entry (sign included).
func scaleByMaxAbs(x []float64) error {
	var big float64
	for _, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrNaNInf
		}
		if math.Abs(v) > math.Abs(big) {
			big = v
		}
	}
	if big == 0 {
		return fmt.Errorf("inverse iteration collapsed to zero: %w", ErrEigenFailed)
	}
	for i := range x {
		x[i] /= big
	}

	return nil
}

// reduceHessenberg brings a to upper Hessenberg form in place using
// elementary similarity transforms with partial pivoting. Entries below the
// first subdiagonal are zeroed on exit.
// Complexity: O(n³).
func reduceHessenberg(a [][]float64) {
	n := len(a)
	var (
		i, j, m, piv int
		x, y         float64
	)
	for m = 1; m < n-1; m++ {
		// Pivot: largest |a[j][m-1]| for j ≥ m.
		x, piv = 0, m
		for j = m; j < n; j++ {
			if math.Abs(a[j][m-1]) > math.Abs(x) {
				x, piv = a[j][m-1], j
			}
		}
		if piv != m {
			// Similarity permutation: swap rows and the matching columns.
			for j = m - 1; j < n; j++ {
				a[piv][j], a[m][j] = a[m][j], a[piv][j]
			}
			for j = 0; j < n; j++ {
				a[j][piv], a[j][m] = a[j][m], a[j][piv]
			}
		}
		if x == 0 {
			continue
		}
		for i = m + 1; i < n; i++ {
			y = a[i][m-1]
			if y == 0 {
				continue
			}
			y /= x
			a[i][m-1] = 0
			for j = m; j < n; j++ {
				a[i][j] -= y * a[m][j]
			}
			for j = 0; j < n; j++ {
				a[j][m] += y * a[j][i]
			}
		}
	}
}

// hessenbergQR computes the eigenvalues of an upper Hessenberg matrix with
// the Francis double-shift QR iteration. Real parts land in wr, imaginary
// parts in wi. a is destroyed.
//
// Errors: ErrEigenFailed when one eigenvalue needs more than maxIter sweeps.
// Complexity: O(n³) typical.
func hessenbergQR(a [][]float64, wr, wi []float64, maxIter int) error {
	n := len(a)
	var (
		nn, m, l, k, j, its, i, mmin int
		z, y, x, w, v, u, t          float64
		s, r, q, p, anorm            float64
	)

	for i = 0; i < n; i++ {
		for j = max(i-1, 0); j < n; j++ {
			anorm += math.Abs(a[i][j])
		}
	}

	nn = n - 1
	t = 0.0 // accumulated exceptional shifts
	for nn >= 0 {
		its = 0
		for {
			// Look for a single small subdiagonal element.
			for l = nn; l >= 1; l-- {
				s = math.Abs(a[l-1][l-1]) + math.Abs(a[l][l])
				if s == 0 {
					s = anorm
				}
				if math.Abs(a[l][l-1])+s == s {
					a[l][l-1] = 0
					break
				}
			}

			x = a[nn][nn]
			if l == nn {
				// One root found.
				wr[nn] = x + t
				wi[nn] = 0
				nn--
				break
			}

			y = a[nn-1][nn-1]
			w = a[nn][nn-1] * a[nn-1][nn]
			if l == nn-1 {
				// Two roots found from the trailing 2×2 block.
				p = 0.5 * (y - x)
				q = p*p + w
				z = math.Sqrt(math.Abs(q))
				x += t
				if q >= 0 {
					z = p + math.Copysign(z, p)
					wr[nn-1] = x + z
					wr[nn] = x + z
					if z != 0 {
						wr[nn] = x - w/z
					}
					wi[nn-1], wi[nn] = 0, 0
				} else {
					wr[nn-1] = x + p
					wr[nn] = x + p
					wi[nn-1] = -z
					wi[nn] = z
				}
				nn -= 2
				break
			}

			// No roots yet: perform a double-shift sweep.
			if its == maxIter {
				return fmt.Errorf("eigenvalue %d: no convergence after %d sweeps: %w", nn, maxIter, ErrEigenFailed)
			}
			if its == 10 || its == 20 {
				// Exceptional shift.
				t += x
				for i = 0; i <= nn; i++ {
					a[i][i] -= x
				}
				s = math.Abs(a[nn][nn-1]) + math.Abs(a[nn-1][nn-2])
				x = 0.75 * s
				y = x
				w = -0.4375 * s * s
			}
			its++

			// Form the shift and look for two consecutive small subdiagonal elements.
			for m = nn - 2; m >= l; m-- {
				z = a[m][m]
				r = x - z
				s = y - z
				p = (r*s-w)/a[m+1][m] + a[m][m+1]
				q = a[m+1][m+1] - z - r - s
				r = a[m+2][m+1]
				s = math.Abs(p) + math.Abs(q) + math.Abs(r)
				p /= s
				q /= s
				r /= s
				if m == l {
					break
				}
				u = math.Abs(a[m][m-1]) * (math.Abs(q) + math.Abs(r))
				v = math.Abs(p) * (math.Abs(a[m-1][m-1]) + math.Abs(z) + math.Abs(a[m+1][m+1]))
				if u+v == v {
					break
				}
			}
			for i = m + 2; i <= nn; i++ {
				a[i][i-2] = 0
				if i != m+2 {
					a[i][i-3] = 0
				}
			}

			// Double QR step on rows l..nn and columns m..nn.
			for k = m; k <= nn-1; k++ {
				if k != m {
					p = a[k][k-1]
					q = a[k+1][k-1]
					r = 0
					if k != nn-1 {
						r = a[k+2][k-1]
					}
					if x = math.Abs(p) + math.Abs(q) + math.Abs(r); x != 0 {
						p /= x
						q /= x
						r /= x
					}
				}
				s = math.Copysign(math.Sqrt(p*p+q*q+r*r), p)
				if s == 0 {
					continue
				}
				if k == m {
					if l != m {
						a[k][k-1] = -a[k][k-1]
					}
				} else {
					a[k][k-1] = -s * x
				}
				p += s
				x = p / s
				y = q / s
				z = r / s
				q /= p
				r /= p
				// Row modification.
				for j = k; j <= nn; j++ {
					p = a[k][j] + q*a[k+1][j]
					if k != nn-1 {
						p += r * a[k+2][j]
						a[k+2][j] -= p * z
					}
					a[k+1][j] -= p * y
					a[k][j] -= p * x
				}
				// Column modification.
				mmin = min(nn, k+3)
				for i = l; i <= mmin; i++ {
					p = x*a[i][k] + y*a[i][k+1]
					if k != nn-1 {
						p += z * a[i][k+2]
						a[i][k+2] -= p * r
					}
					a[i][k+1] -= p * q
					a[i][k] -= p
				}
			}

			if l >= nn-1 {
				break
			}
		}
	}

	return nil
}
