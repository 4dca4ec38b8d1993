// Command token issues an access token for the API. Identity is managed
// outside this service, so operators and integration tests mint tokens here.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cmlabs-hris/hris-attendance-go/internal/config"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
)

func main() {
	userID := flag.String("user", "", "user id recorded as reviewer on approvals")
	employeeID := flag.String("employee", "", "employee id bound to the token")
	role := flag.String("role", string(jwt.RoleEmployee), "admin or employee")
	flag.Parse()

	if err := run(*userID, *employeeID, jwt.Role(*role)); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(userID, employeeID string, role jwt.Role) error {
	if userID == "" {
		return fmt.Errorf("-user is required")
	}
	if !role.IsValid() {
		return fmt.Errorf("unknown role %q", role)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	var employee *string
	if employeeID != "" {
		employee = &employeeID
	}

	token, expiresAt, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration).GenerateAccessToken(userID, employee, role)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "expires at %d\n", expiresAt)
	return nil
}
