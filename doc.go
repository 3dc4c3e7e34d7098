/*
Package dhash provides an in-memory hash table mapping string keys to string
values, using open addressing with double hashing and prime-sized bucket arrays.

Table is designed to be a small, predictable associative container: every
operation runs to completion before returning, including any rebuild of the
bucket array that the operation triggers.

Basic usage:

	import "github.com/theflywheel/dhash"

	// Create a table at the minimum size
	t, err := dhash.New()
	if err != nil {
		log.Fatal(err)
	}
	defer t.Close()

	// Insert data
	if err := t.Insert("alpha", "1"); err != nil {
		log.Fatal(err)
	}

	// Retrieve data
	if v, ok := t.Search("alpha"); ok {
		fmt.Println("Value:", v)
	}

	// Remove data
	t.Delete("alpha")

Features:

  - Bucket counts are always prime, derived from a logical base size
  - Two polynomial string hashes (multipliers 151 and 163) combined by double hashing
  - Deleted slots are kept as tombstones so other keys' probe sequences stay intact
  - Automatic growth when the load factor exceeds 70% and shrinking below 10%
  - Locked and Sharded wrappers for callers that need concurrent access

Implementation Details:

Each slot of the bucket array is in one of three states: empty, occupied, or
tombstone. The probe sequence for a key is

	index(attempt) = (h1 + attempt*step) mod capacity

where h1 is the first hash modulo capacity and step is the second hash modulo
capacity-1, plus one. Since capacity is prime and step lies in [1, capacity-1],
attempts 0..capacity-1 visit every slot exactly once.

Growth doubles the base size and shrinking halves it; the bucket array is then
rebuilt at the smallest prime not below the new base size. Rebuilding drops all
tombstones. A Table is not safe for concurrent use; see Locked and Sharded.
*/
package dhash
