// Copyright (c) 2024 Wiregram Authors

// Package math carries the number-theoretic pieces of the auth handshake,
// mainly splitting the server's pq challenge into its two primes.
package math

import (
	"math/big"
)

// maxRhoSteps bounds every rho walk. A real pq has factors around 2^31,
// found within a few tens of thousands of steps; primes and other garbage
// run out of budget instead of spinning.
const maxRhoSteps = 1 << 22

// Factorize splits pq into p and q with 1 < p < q. Values up to 64 bits,
// which is everything a real server sends, take the fast path. Inputs with
// no such split, primes and anything below 4 included, return nil, nil.
func Factorize(pq *big.Int) (*big.Int, *big.Int) {
	if pq.BitLen() < 3 {
		return nil, nil
	}

	if pq.BitLen() <= 64 {
		p, q := factorizeU64(pq.Uint64())
		if p < 2 || q < 2 {
			return nil, nil
		}
		return big.NewInt(int64(p)), big.NewInt(int64(q))
	}

	p, q := pollardRho(pq)
	if p == nil {
		return nil, nil
	}
	if p.Cmp(q) > 0 {
		p, q = q, p
	}
	return p, q
}

// xorshift PRNG, seeded once. Factorization only needs cheap spread, not
// crypto randomness.
type fastRand struct {
	state uint64
}

func (r *fastRand) next() uint64 {
	x := r.state
	x ^= x >> 12
	x ^= x << 25
	x ^= x >> 27
	r.state = x
	return x * 0x2545f4914f6cdd1d
}

func (r *fastRand) inRange(n uint64) uint64 {
	return (r.next() % (n - 1)) + 1
}

// factorizeU64 runs Brent's variant of Pollard's rho on a 64-bit pq.
func factorizeU64(pq uint64) (uint64, uint64) {
	if pq%2 == 0 {
		return 2, pq / 2
	}

	rnd := &fastRand{state: 0xdeadbeefcafebabe}

	bigPQ := new(big.Int).SetUint64(pq)
	bigY := new(big.Int)
	bigC := new(big.Int)
	bigQ := big.NewInt(1)
	bigTemp := new(big.Int)
	bigDiff := new(big.Int)

	bigC.SetUint64(rnd.inRange(pq))
	y := rnd.inRange(pq)
	bigY.SetUint64(y)

	// f(y) = (y*y + c) mod pq
	steps := 0
	advance := func() {
		steps++
		bigTemp.Mul(bigY, bigY)
		bigTemp.Add(bigTemp, bigC)
		bigY.Mod(bigTemp, bigPQ)
	}

	const batch = 128
	g := uint64(1)
	r := uint64(1)
	var x, ys uint64

	for g == 1 && steps < maxRhoSteps {
		x = y
		for i := uint64(0); i < r; i++ {
			advance()
			y = bigY.Uint64()
		}
		k := uint64(0)
		for k < r && g == 1 {
			ys = y
			iterations := batch
			if r-k < batch {
				iterations = int(r - k)
			}
			for i := 0; i < iterations; i++ {
				advance()
				y = bigY.Uint64()
				var diff uint64
				if x >= y {
					diff = x - y
				} else {
					diff = y - x
				}
				bigDiff.SetUint64(diff)
				bigQ.Mul(bigQ, bigDiff)
				bigQ.Mod(bigQ, bigPQ)
			}
			g = new(big.Int).GCD(nil, nil, bigQ, bigPQ).Uint64()
			k += batch
		}
		r *= 2
	}

	// batching overshot the factor, walk again from the last checkpoint
	if g == pq {
		g = 1
		y = ys
		bigY.SetUint64(y)
		for g == 1 && steps < maxRhoSteps {
			advance()
			y = bigY.Uint64()
			var diff uint64
			if x >= y {
				diff = x - y
			} else {
				diff = y - x
			}
			bigDiff.SetUint64(diff)
			g = new(big.Int).GCD(nil, nil, bigDiff, bigPQ).Uint64()
		}
	}

	if g > 1 && g < pq {
		other := pq / g
		if g < other {
			return g, other
		}
		return other, g
	}
	return 0, 0
}

// pollardRho is the plain textbook cycle for values over 64 bits. Slower
// but the wire never carries anything that big. Returns nil, nil when the
// walk closes without a proper factor or runs out of budget.
func pollardRho(pq *big.Int) (p, q *big.Int) {
	one := big.NewInt(1)

	x := big.NewInt(2)
	y := big.NewInt(2)
	d := big.NewInt(1)

	step := func(v *big.Int) *big.Int {
		next := new(big.Int).Set(v)
		next.Mul(next, next)
		next.Add(next, one)
		next.Mod(next, pq)
		return next
	}

	for steps := 0; d.Cmp(one) == 0; steps++ {
		if steps >= maxRhoSteps {
			return nil, nil
		}

		x = step(x)
		y = step(step(y))

		diff := new(big.Int).Sub(x, y)
		diff.Abs(diff)
		d.GCD(nil, nil, diff, pq)
	}

	// the cycle closed on itself, pq is prime or the walk got unlucky
	if d.Cmp(pq) == 0 {
		return nil, nil
	}

	p = new(big.Int).Set(d)
	q = new(big.Int).Div(pq, d)
	return p, q
}
