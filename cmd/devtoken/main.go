// Command devtoken prints a bearer token for local development, signed with the
// same JWT_SECRET and JWT_ISSUER the API verifies against.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"eventory/config"
	"eventory/internal/adapters/auth"
	"eventory/internal/domain"
)

func main() {
	subject := flag.String("sub", "dev-admin", "token subject")
	role := flag.String("role", string(domain.RoleAdmin), "role: admin or student")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	r := domain.Role(*role)
	if r != domain.RoleAdmin && r != domain.RoleStudent {
		log.Fatalf("unknown role %q", *role)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	token, err := auth.NewJWTIssuer(cfg.JWTSecret, cfg.JWTIssuer, *ttl).Issue(*subject, r)
	if err != nil {
		log.Fatalf("issue token: %v", err)
	}
	fmt.Println(token)
}
