package dhash

// isPrime reports whether n is prime, by trial division up to its square root.
func isPrime(n int) bool {
	if n < 2 {
		return false
	}
	if n < 4 {
		return true
	}
	if n%2 == 0 {
		return false
	}
	for i := 3; i <= n/i; i += 2 {
		if n%i == 0 {
			return false
		}
	}
	return true
}

// nextPrime returns the smallest prime >= n, or 2 for n <= 1.
func nextPrime(n int) int {
	if n <= 1 {
		return 2
	}
	for !isPrime(n) {
		n++
	}
	return n
}
