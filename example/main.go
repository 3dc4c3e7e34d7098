package main

import (
	"fmt"
	"log"
	"strconv"

	"go.uber.org/zap"

	"github.com/theflywheel/dhash"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	table, err := dhash.New(dhash.WithLogger(logger))
	if err != nil {
		log.Fatalf("Failed to create table: %v", err)
	}
	defer table.Close()

	fmt.Printf("Table created with %d buckets\n", table.Cap())

	// Insert "a".."z" => "0".."25"
	for i := 0; i < 26; i++ {
		if err := table.Insert(string(rune('a'+i)), strconv.Itoa(i)); err != nil {
			log.Fatalf("Failed to insert key %c: %v", 'a'+i, err)
		}
	}

	fmt.Printf("Inserted 26 key-value pairs, load factor %d%%, %d buckets\n",
		table.LoadFactor(), table.Cap())

	if v, found := table.Search("m"); found {
		fmt.Printf("Key m => Value %s\n", v)
	}

	table.Delete("m")
	if _, found := table.Search("m"); !found {
		fmt.Println("Key m not found after delete")
	}

	if err := table.Insert("m", "99"); err != nil {
		log.Fatalf("Failed to reinsert key m: %v", err)
	}
	if v, found := table.Search("m"); found {
		fmt.Printf("Reinserted key m => Value %s\n", v)
	}

	// Push past the grow threshold to see a resize logged
	for i := 0; i < 100; i++ {
		if err := table.Insert("extra-"+strconv.Itoa(i), strconv.Itoa(i)); err != nil {
			log.Fatalf("Failed to insert extra key %d: %v", i, err)
		}
	}

	st := table.Stats()
	fmt.Printf("Stats: count=%d capacity=%d base=%d tombstones=%d grows=%d\n",
		st.Count, st.Capacity, st.BaseSize, st.Tombstones, st.Grows)
	fmt.Println("Example completed successfully")
}
