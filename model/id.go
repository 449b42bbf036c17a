package model

import nanoid "github.com/matoous/go-nanoid/v2"

const (
	idAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	idLength   = 12
)

// NewID returns a short URL-safe identifier like "fld-x7Gq0bTn4Lwe".
func NewID(prefix string) (string, error) {
	id, err := nanoid.Generate(idAlphabet, idLength)
	if err != nil {
		return "", err
	}
	return prefix + "-" + id, nil
}
