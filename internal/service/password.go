// Package service implements the resource managers for groups, posts and comments.
package service

import (
	"golang.org/x/crypto/bcrypt"
)

// passwordHashCost is the bcrypt work factor for all stored secrets.
const passwordHashCost = bcrypt.DefaultCost

// hashPassword derives a one-way salted hash from the plaintext secret.
func hashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), passwordHashCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// verifyPassword reports whether plain matches the stored hash.
// A missing hash fails closed: no secret was ever set, so nothing can
// match it.
func verifyPassword(plain, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
