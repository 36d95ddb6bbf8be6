package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Wang-tianhao/vibrant-userguard/jwtauth"
)

func main() {
	var (
		secret   = flag.String("secret", os.Getenv("JWT_SECRET"), "Secret key (minimum 32 bytes, defaults to $JWT_SECRET)")
		id       = flag.Int64("id", 1, "User id")
		username = flag.String("username", "admin1", "Username")
		role     = flag.String("role", jwtauth.RoleAdmin, "User role")
		hours    = flag.Int("hours", 1, "Token validity in hours (0 for no expiry)")
	)

	flag.Parse()

	now := time.Now()
	ttl := time.Duration(*hours) * time.Hour
	tokenString, err := generateToken([]byte(*secret), *id, *username, *role, ttl, now)
	if err != nil {
		log.Fatalf("Failed to generate token: %v", err)
	}

	fmt.Println("\n=== JWT Token Generated ===")
	fmt.Printf("\nToken: %s\n\n", tokenString)
	fmt.Println("Claims:")
	fmt.Printf("  ID:       %d\n", *id)
	fmt.Printf("  Username: %s\n", *username)
	fmt.Printf("  Role:     %s\n", *role)
	if ttl > 0 {
		fmt.Printf("  Expires:  %s\n\n", now.Add(ttl).Format(time.RFC3339))
	} else {
		fmt.Print("  Expires:  never\n\n")
	}
	fmt.Println("Usage:")
	fmt.Printf("  curl -H 'Authorization: Bearer %s' http://localhost:8080/users\n\n", tokenString)
}

// generateToken signs an HS256 identity token. A zero ttl omits exp.
func generateToken(secret []byte, id int64, username, role string, ttl time.Duration, now time.Time) (string, error) {
	if len(secret) < jwtauth.MinSecretLength {
		return "", fmt.Errorf("secret must be at least %d bytes", jwtauth.MinSecretLength)
	}
	if ttl < 0 {
		return "", fmt.Errorf("validity must be non-negative, got %v", ttl)
	}

	claims := jwt.MapClaims{
		"id":       id,
		"username": username,
		"role":     role,
		"iat":      now.Unix(),
	}
	if ttl > 0 {
		claims["exp"] = now.Add(ttl).Unix()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}
