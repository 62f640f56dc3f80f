// mine_icap.go generates key pairs until one yields a direct ICAP
// address (leading zero byte) and prints the key, address and ICAP.
// Usage: go run scripts/mine_icap.go [count]
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/expansejs/helpeth/internal/wallet"
)

func main() {
	count := 1
	if len(os.Args) > 1 {
		n, err := strconv.Atoi(os.Args[1])
		if err != nil || n < 1 {
			fmt.Fprintln(os.Stderr, "usage: mine_icap [count]")
			os.Exit(1)
		}
		count = n
	}

	for i := 0; i < count; i++ {
		w, err := wallet.GenerateDirectICAP()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Printf("%x %s %s\n", w.PrivateKeyBytes(), w.Address().Hex(), w.Address().ICAP())
	}
}
