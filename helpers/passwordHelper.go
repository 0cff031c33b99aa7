package helpers

import (
	"log"
	"math/rand"

	"golang.org/x/crypto/bcrypt"
)

func HashPassword(password string) string {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Panic(err)
	}
	return string(bytes)
}

func VerifyPassword(userPassword string, providedPassword string) (bool, string) {
	err := bcrypt.CompareHashAndPassword([]byte(providedPassword), []byte(userPassword))
	check := true
	msg := ""
	if err != nil {
		msg = "Password is incorrect"
		check = false
	}
	return check, msg
}

const (
	passwordUppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	passwordLowercase = "abcdefghijklmnopqrstuvwxyz"
	passwordNumbers   = "0123456789"
	passwordSymbols   = "!@#$%&*"
)

// GenerateRandomPassword builds a password for patients created without one.
// At least one character of each class is guaranteed.
func GenerateRandomPassword(length int) string {
	if length < 8 {
		length = 12
	}

	allChars := passwordUppercase + passwordLowercase + passwordNumbers + passwordSymbols

	b := make([]byte, 0, length)
	b = append(b, passwordUppercase[rand.Intn(len(passwordUppercase))])
	b = append(b, passwordLowercase[rand.Intn(len(passwordLowercase))])
	b = append(b, passwordNumbers[rand.Intn(len(passwordNumbers))])
	b = append(b, passwordSymbols[rand.Intn(len(passwordSymbols))])

	for i := len(b); i < length; i++ {
		b = append(b, allChars[rand.Intn(len(allChars))])
	}

	rand.Shuffle(len(b), func(i, j int) {
		b[i], b[j] = b[j], b[i]
	})

	return string(b)
}
