// Command genhash prints a bcrypt hash and an INSERT statement for seeding an admin account.
//
//	go run scripts/genhash.go -email admin@vericv.local -name "Site Admin" -password 'secret'
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	email := flag.String("email", "", "admin email")
	name := flag.String("name", "Administrator", "admin full name")
	password := flag.String("password", "", "plain text password (min 8 chars)")
	flag.Parse()

	if *email == "" || len(*password) < 8 {
		fmt.Fprintln(os.Stderr, "usage: genhash -email <email> -password <password> [-name <name>]")
		os.Exit(2)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	quote := func(s string) string { return "'" + strings.ReplaceAll(s, "'", "''") + "'" }
	fmt.Printf("Hash: %s\n\n", hash)
	fmt.Printf("INSERT INTO users (email, full_name, password_hash, is_verified, roles)\nVALUES (%s, %s, %s, TRUE, '{ROLE_USER,ROLE_ADMIN}');\n",
		quote(strings.ToLower(*email)), quote(*name), quote(string(hash)))
}
