// One-off: go run scripts/genhash.go <company> <login_id> <password>
// Prints SQL that seeds a company with its leader.
package main

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	company, loginID, password := "FieldMate", "admin", "admin1234"
	if len(os.Args) > 3 {
		company, loginID, password = os.Args[1], os.Args[2], os.Args[3]
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	quote := func(s string) string { return "'" + strings.ReplaceAll(s, "'", "''") + "'" }
	fmt.Printf(`WITH c AS (INSERT INTO companies (name) VALUES (%s) RETURNING id)
INSERT INTO members (company_id, name, login_id, password_hash, role)
SELECT id, %s, %s, %s, 'LEADER' FROM c;
`, quote(company), quote(loginID), quote(loginID), quote(string(h)))
}
