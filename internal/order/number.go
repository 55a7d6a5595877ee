package order

import (
	"crypto/rand"
	"math/big"
	"regexp"
)

const (
	orderNoPrefix   = "ARX"
	orderNoAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	orderNoLength   = 6
)

var orderNoPattern = regexp.MustCompile(`^ARX[A-Z0-9]{6}$`)

// NewOrderNumber returns ARX followed by six random characters from [A-Z0-9].
func NewOrderNumber() (string, error) {
	buf := make([]byte, 0, len(orderNoPrefix)+orderNoLength)
	buf = append(buf, orderNoPrefix...)
	base := big.NewInt(int64(len(orderNoAlphabet)))
	for i := 0; i < orderNoLength; i++ {
		n, err := rand.Int(rand.Reader, base)
		if err != nil {
			return "", err
		}
		buf = append(buf, orderNoAlphabet[n.Int64()])
	}
	return string(buf), nil
}

func ValidOrderNo(s string) bool {
	return orderNoPattern.MatchString(s)
}
