// Command seed creates a portal user so operators can log in after a fresh
// deployment. There is no self-service signup.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"guestportal/config"
	"guestportal/internal/adapters/auth"
	"guestportal/internal/domain"
	"guestportal/internal/repository/postgres"
)

func main() {
	var (
		email    = flag.String("email", "", "user email (required)")
		password = flag.String("password", "", "user password (required, min 8 characters)")
		role     = flag.String("role", string(domain.RoleStaff), "user role: Admin or Staff")
	)
	flag.Parse()

	if err := run(*email, *password, *role); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(email, password, roleStr string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return fmt.Errorf("both -email and -password are required")
	}
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	role := domain.Role(roleStr)
	if !role.Valid() {
		return fmt.Errorf("role must be %s or %s", domain.RoleAdmin, domain.RoleStaff)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database unreachable: %w", err)
	}
	if err := postgres.ApplyMigrations(db); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
	hash, err := hasher.Hash(password)
	if err != nil {
		return err
	}

	user := &domain.User{Email: email, PasswordHash: hash, Role: role, CreatedAt: time.Now()}
	if err := postgres.NewUserRepository(db).Create(ctx, user); err != nil {
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "unique") {
			return fmt.Errorf("a user with email %s already exists", email)
		}
		return err
	}

	fmt.Printf("created %s user %s (id %d)\n", role, email, user.ID)
	return nil
}
