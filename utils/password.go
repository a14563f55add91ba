package utils

import "golang.org/x/crypto/bcrypt"

// passwordCost matches a salt generated with 10 rounds
const passwordCost = bcrypt.DefaultCost

// HashPassword returns a salted bcrypt hash of password
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword reports whether password matches hash
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
