package handlers

import "crypto/rand"

const productIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
const productIDLength = 8

// newProductID generates the short alphanumeric key products are addressed
// by in URLs and order lines, never the store's native _id.
func newProductID() (string, error) {
	buf := make([]byte, productIDLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i := range buf {
		buf[i] = productIDAlphabet[int(buf[i])%len(productIDAlphabet)]
	}
	return string(buf), nil
}
