package services

import (
	"crypto/rand"
	"math/big"

	"github.com/sethvargo/go-password/password"
)

const (
	qrLength   = 20
	qrAlphabet = 62 // A-Z, a-z, 0-9
	qrDigits   = 10
)

// CodeGenerator produces the pick-up codes attached to a new order
type CodeGenerator interface {
	OTP() (string, error)
	QRPayload() (string, error)
}

type randomCodes struct{}

// RandomCodes draws codes from crypto/rand through go-password
func RandomCodes() CodeGenerator {
	return randomCodes{}
}

// OTP is six decimal digits; it is not checked for uniqueness
func (randomCodes) OTP() (string, error) {
	return password.Generate(6, 6, 0, true, true)
}

// QRPayload is twenty characters drawn uniformly from letters and digits.
// go-password fixes the digit count, so it is drawn first with the odds a
// uniform pick would give. Uniqueness is enforced by the orders table.
func (randomCodes) QRPayload() (string, error) {
	digits, err := digitCount(qrLength)
	if err != nil {
		return "", err
	}
	return password.Generate(qrLength, digits, 0, false, true)
}

func digitCount(length int) (int, error) {
	n := 0
	for i := 0; i < length; i++ {
		pick, err := rand.Int(rand.Reader, big.NewInt(qrAlphabet))
		if err != nil {
			return 0, err
		}
		if pick.Int64() < qrDigits {
			n++
		}
	}
	return n, nil
}
